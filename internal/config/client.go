package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the base endpoint of a locally running contract server.
const DefaultAPIURL = "http://localhost:8000/api"

// ClientConfig holds all LifeOS client configuration values.
type ClientConfig struct {
	APIURL    string
	StatePath string // SQLite file holding the persisted session
	Env       string
}

// LoadClient reads client configuration from the environment and an optional
// .env file, and validates the API URL.
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{
		APIURL: strings.TrimRight(getEnv("LIFEOS_API_URL", DefaultAPIURL), "/"),
		Env:    getEnv("ENV", "development"),
	}

	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid LIFEOS_API_URL %q: must be an absolute http(s) URL", cfg.APIURL)
	}

	cfg.StatePath = os.Getenv("LIFEOS_STATE_PATH")
	if cfg.StatePath == "" {
		path, err := defaultStatePath()
		if err != nil {
			return nil, err
		}
		cfg.StatePath = path
	}

	return cfg, nil
}

func defaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".lifeos", "state.db"), nil
}
