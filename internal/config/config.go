package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is read from STUDENTBOARD_* environment variables.
type Config struct {
	Port           string   `envconfig:"PORT" default:"8001"`
	DataPath       string   `envconfig:"DATA_PATH" default:""`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:3001,http://127.0.0.1:3000"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("studentboard", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
