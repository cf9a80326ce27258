package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Web    WebConfig
	App    AppConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type WebConfig struct {
	TemplatesDir   string
	StaticDir      string
	AllowedOrigins []string
}

type AppConfig struct {
	Environment string
	Debug       bool
	ServiceName string
	Version     string
}

// Addr is the listen address, e.g. "0.0.0.0:5001".
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// IsProduction reports whether the server should run without debug behavior.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || !c.App.Debug
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	debug, err := getEnvAsBool("DEBUG", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "5001"),
		},
		Web: WebConfig{
			TemplatesDir:   getEnv("TEMPLATES_DIR", "templates"),
			StaticDir:      getEnv("STATIC_DIR", "static"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Debug:       debug,
			ServiceName: getEnv("SERVICE_NAME", "rps-camera"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil {
		return fmt.Errorf("PORT must be numeric: %w", err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT out of range: %d", port)
	}

	if c.Web.TemplatesDir == "" {
		return fmt.Errorf("TEMPLATES_DIR is required")
	}

	for _, o := range c.Web.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS: invalid origin %q", o)
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
	}

	return value, nil
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
