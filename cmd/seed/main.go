package main

import (
	"context"
	"os"

	"github.com/SAP-F-2025/career-assessment-service/internal/config"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/career-assessment-service/internal/seed"
	"github.com/SAP-F-2025/career-assessment-service/internal/utils"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
	"github.com/SAP-F-2025/career-assessment-service/pkg"
)

func main() {
	logger := utils.ToSlogLogger(utils.NewDevelopmentLogger())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	seeder := seed.NewSeeder(postgres.NewRepository(db), validator.New(scoring.DefaultConfig()), logger)
	if err := seeder.Run(context.Background()); err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	for _, account := range seed.DefaultAccounts {
		logger.Info("Default account", "roll_number", account.RollNumber, "password", account.Password, "role", account.Role)
	}
}
