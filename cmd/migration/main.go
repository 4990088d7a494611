package main

import (
	"os"

	"github.com/ardacaliskaan/RaporServisi/cmd/migration/initialize"
	"github.com/ardacaliskaan/RaporServisi/cmd/migration/seed"
	"github.com/ardacaliskaan/RaporServisi/config"
	"github.com/ardacaliskaan/RaporServisi/internal/database"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"
)

func main() {
	log := logger.New("migration")

	config, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := initialize.InitializeTables(db.SQL, config, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if config.Environment == "development" {
		if err := seed.Seed(db.SQL, config, log); err != nil {
			log.Er("failed to seed development data", err)
			os.Exit(1)
		}
	}

	log.Info("Migration complete")
}
