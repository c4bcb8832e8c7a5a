package main

import (
	"fmt"
	"os"
	"strconv"

	"lifeos/internal/config"
	"lifeos/internal/database"
	"lifeos/internal/logger"
	"lifeos/internal/server"
)

// @title           LifeOS API
// @version         1.0
// @description     LifeOS keeps a user's tasks, finances, resources and weekly plan, and serves them to the LifeOS client.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

// run starts the server, or with "migrate" manages the schema.
func run(args []string) error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if len(args) > 0 {
		if args[0] != "migrate" {
			return fmt.Errorf("usage: lifeos-api [migrate [up|down [N]|version]]")
		}
		return migrateCommand(dbManager, args[1:])
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	router := server.NewRouter(dbManager.DB())

	log.Infof("Starting LifeOS server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

func migrateCommand(dbManager *database.Manager, args []string) error {
	log := logger.Get()

	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "up":
		return dbManager.Migrate()

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step count: %w", err)
			}
			steps = n
		}
		if err := dbManager.Rollback(steps); err != nil {
			return err
		}
		log.Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := dbManager.MigrationVersion()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		log.Infof("Version: %d, Dirty: %v", version, dirty)

	default:
		return fmt.Errorf("unknown migrate command: %s (use up, down, or version)", command)
	}
	return nil
}
