// Package config reads settings from .env and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"taskboard/app/logging"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"
	StoreNeo4j    = "neo4j"
)

// Config holds every runtime setting.
type Config struct {
	Addr     string
	Store    string
	DataDir  string
	SQLDSN   string
	Neo4j    Neo4jConfig
	APIURL   string
	LogLevel logging.Level
}

// Neo4jConfig holds the neo4j connection settings.
type Neo4jConfig struct {
	URI      string
	User     string
	Password string
}

// Load reads the configuration and validates it.
func Load(envFiles ...string) (Config, error) {
	cfg, err := Read(envFiles...)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Read loads .env files (missing ones are skipped) and then the environment,
// without validating the result.
func Read(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Addr:    getenv("TASKBOARD_ADDR", ":8080"),
		Store:   strings.ToLower(getenv("TASKBOARD_STORE", StoreFile)),
		DataDir: getenv("TASKBOARD_DATA_DIR", "./data"),
		SQLDSN:  os.Getenv("TASKBOARD_SQL_DSN"),
		Neo4j: Neo4jConfig{
			URI:      getenv("NEO4J_URI", "neo4j://localhost:7687"),
			User:     getenv("NEO4J_USER", "neo4j"),
			Password: os.Getenv("NEO4J_PASSWORD"),
		},
		APIURL: os.Getenv("TASKBOARD_API_URL"),
	}
	level, err := logging.ParseLevel(os.Getenv("TASKBOARD_LOG_LEVEL"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level
	return cfg, nil
}

// Validate checks that the selected backend is known and has what it needs.
func (c Config) Validate() error {
	switch c.Store {
	case StoreFile:
		if c.DataDir == "" {
			return errors.New("TASKBOARD_DATA_DIR is empty")
		}
	case StoreMemory, StoreNeo4j:
	case StoreMySQL, StorePostgres:
		if c.SQLDSN == "" {
			return fmt.Errorf("TASKBOARD_SQL_DSN is required for the %s store", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
