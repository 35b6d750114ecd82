package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"

	DefaultQueryTimeout = 3 * time.Second
)

type Config struct {
	Driver       string        `yaml:"driver"`
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Database     string        `yaml:"database"`
	SSLMode      string        `yaml:"sslmode"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

func DefaultConfig() Config {
	return Config{
		Driver:       DriverPostgres,
		Host:         "localhost",
		Port:         "5432",
		User:         "postgres",
		Password:     "postgres",
		Database:     "irrigation",
		SSLMode:      "disable",
		QueryTimeout: DefaultQueryTimeout,
	}
}

// ApplyEnv overrides c with any DB_* variables set in the environment.
func (c Config) ApplyEnv() Config {
	c.Driver = getEnvWithDefault("DB_DRIVER", c.Driver)
	c.Host = getEnvWithDefault("DB_HOST", c.Host)
	c.Port = getEnvWithDefault("DB_PORT", c.Port)
	c.User = getEnvWithDefault("DB_USER", c.User)
	c.Password = getEnvWithDefault("DB_PASSWORD", c.Password)
	c.Database = getEnvWithDefault("DB_NAME", c.Database)
	c.SSLMode = getEnvWithDefault("DB_SSLMODE", c.SSLMode)
	if timeout, err := time.ParseDuration(os.Getenv("DB_QUERY_TIMEOUT")); err == nil && timeout > 0 {
		c.QueryTimeout = timeout
	}
	return c
}

func GetConfigFromEnv() Config {
	return DefaultConfig().ApplyEnv()
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c Config) dsn() string {
	if c.Driver == DriverSQLite {
		path := c.Database
		if path == "" || path == ":memory:" {
			path = ":memory:"
		}
		if !strings.HasPrefix(path, "file:") {
			path = "file:" + path
		}
		return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Store is the SQL-backed record store for boards, plants and watering
// events. It is safe for concurrent use.
type Store struct {
	db      *sql.DB
	driver  string
	timeout time.Duration
}

// Open connects to the configured database. The caller owns the returned
// Store and must Close it.
func Open(config Config) (*Store, error) {
	switch config.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	conn, err := sql.Open(config.Driver, config.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if config.Driver == DriverSQLite {
		// One connection: a private :memory: database lives per connection,
		// and sqlite serializes writers anyway.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
	}

	timeout := config.QueryTimeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	store := &Store{db: conn, driver: config.Driver, timeout: timeout}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Driver reports the database/sql driver name the store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return classify("ping", err)
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}
