package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"plant-irrigation-api/db"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Listen          string        `yaml:"listen"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Config struct {
	Server   ServerConfig `yaml:"server"`
	Database db.Config    `yaml:"database"`
	LogLevel string       `yaml:"log_level"`
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:          ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: db.DefaultConfig(),
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, then the YAML file at path if
// one is given, then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Database = cfg.Database.ApplyEnv()
	if listen := os.Getenv("LISTEN_ADDR"); listen != "" {
		cfg.Server.Listen = listen
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("invalid database driver %q, must be one of: %s, %s", c.Database.Driver, db.DriverPostgres, db.DriverSQLite)
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}
	if c.Server.Listen == "" {
		return fmt.Errorf("server listen address is required")
	}
	return nil
}

func (c Config) FiberLogLevel() log.Level {
	return logLevels[c.LogLevel]
}
