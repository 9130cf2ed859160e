package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	DatabaseURL string `yaml:"-"` // secret, env only
	JWKSURL     string `yaml:"jwks_url"`
	CORSOrigins string `yaml:"cors_origins"`
	TablePrefix string `yaml:"table_prefix"`
	Debug       bool   `yaml:"debug"`
}

// Load builds the configuration from the environment, with an optional YAML
// overlay file (CONFIG_FILE) for non-secret settings. Environment variables
// win over the file so deployments can override without editing it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        "8080",
		Environment: "dev",
		CORSOrigins: "http://localhost:3000",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.JWKSURL = getEnv("JWKS_URL", cfg.JWKSURL)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.TablePrefix = tablePrefix(cfg)
	cfg.Debug = getEnv("DEBUG", defaultDebug(cfg.Environment)) == "true"

	return cfg, nil
}

func defaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// tablePrefix returns the table prefix based on environment, with a manual
// override via TABLE_PREFIX or the config file.
func tablePrefix(cfg *Config) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	if cfg.TablePrefix != "" {
		return cfg.TablePrefix
	}

	switch cfg.Environment {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
