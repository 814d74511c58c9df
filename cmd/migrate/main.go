// Command migrate applies pending SQL migrations and exits.
package main

import (
	"os"

	"finledger/internal/database"
	"finledger/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	dbConfig, err := database.NewConfig()
	if err != nil {
		logger.Get().Fatalf("failed to load database configuration: %v", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		logger.Get().Fatalf("failed to create database manager: %v", err)
	}

	if err := dbManager.Migrate(); err != nil {
		logger.Get().Fatalf("failed to run database migrations: %v", err)
	}
}
