package config

import (
	"fmt"
	"os"

	"task-manager/internal/repository/sqlite"
)

// CreateRepository opens the server database selected by the configured environment
func CreateRepository(config *Config) (sqlite.Repository, error) {
	switch config.Application.Environment {
	case Testing:
		return CreateTestRepository()
	case Development:
		return openRepository("tm.dev.db", config)
	default:
		if err := os.MkdirAll(config.Server.DBDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		return openRepository(config.GetDatabasePath(), config)
	}
}

func openRepository(dbPath string, config *Config) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithOptions(dbPath, sqlite.Options{
		QueryTimeout: config.Server.QueryTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
