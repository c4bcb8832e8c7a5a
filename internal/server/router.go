// Package server assembles the LifeOS contract server: services, handlers,
// middleware and routes on one gin engine.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "lifeos/internal/docs" // swagger docs

	"lifeos/internal/handlers"
	"lifeos/internal/middleware"
	"lifeos/internal/services"
	"lifeos/internal/validator"
)

// APIPrefix is the path every API route lives under.
const APIPrefix = "/api"

// NewRouter builds the router over db. The schema must already be migrated.
func NewRouter(db *gorm.DB) *gin.Engine {
	validator.Register()

	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db)
	financeService := services.NewFinanceService(db)
	resourceService := services.NewResourceService(db)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	resourceHandler := handlers.NewResourceHandler(resourceService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())
	router.NoRoute(middleware.NotFound())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(APIPrefix)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	api.POST("/users", userHandler.CreateUser)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/auth/change-password", authHandler.ChangePassword)
	protected.DELETE("/auth/delete", authHandler.DeleteAccount)

	users := protected.Group("/users")
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser) // also serves PUT /users/setup

	tasks := protected.Group("/tasks")
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", taskHandler.GetUserTasks)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	finances := protected.Group("/finances")
	finances.POST("", financeHandler.CreateFinance)
	finances.GET("/:id", financeHandler.GetUserFinances)
	finances.DELETE("/:id", financeHandler.DeleteFinance)

	resources := protected.Group("/resources")
	resources.POST("", resourceHandler.CreateResource)
	resources.GET("/:id", resourceHandler.GetUserResources)
	resources.PUT("/:id", resourceHandler.UpdateResource)
	resources.DELETE("/:id", resourceHandler.DeleteResource)

	planner := protected.Group("/planner")
	planner.GET("/:id", resourceHandler.GetUserPlans)
	planner.PUT("/:id/:day", resourceHandler.UpsertPlan)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
