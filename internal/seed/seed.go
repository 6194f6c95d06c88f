package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/career-assessment-service/internal/auth"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
	"gorm.io/gorm"
)

// Account is a default login created by the seeder.
type Account struct {
	RollNumber string
	Name       string
	Password   string
	Role       models.UserRole
}

// DefaultAccounts are upserted on every run.
var DefaultAccounts = []Account{
	{RollNumber: "ADMIN001", Name: "System Administrator", Password: "admin123", Role: models.RoleAdmin},
	{RollNumber: "MB001", Name: "Student Demo", Password: "student", Role: models.RoleStudent},
}

type Seeder struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewSeeder(repo repositories.Repository, validator *validator.Validator, logger *slog.Logger) *Seeder {
	return &Seeder{repo: repo, validator: validator, logger: logger}
}

// Run replaces the question bank and upserts the default accounts in one
// transaction. Existing results are left alone.
func (s *Seeder) Run(ctx context.Context) error {
	questions := Questions()
	if err := s.validator.Question().ValidateBatch(questions); err != nil {
		return fmt.Errorf("default question bank is invalid: %w", err)
	}

	accounts := make([]*models.Respondent, 0, len(DefaultAccounts))
	for _, a := range DefaultAccounts {
		hash, err := auth.HashPassword(a.Password)
		if err != nil {
			return err
		}
		accounts = append(accounts, &models.Respondent{
			RollNumber:   a.RollNumber,
			Name:         a.Name,
			PasswordHash: hash,
			Role:         a.Role,
		})
	}

	err := s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Question().DeleteAll(ctx, tx); err != nil {
			return fmt.Errorf("failed to clear questions: %w", err)
		}
		if err := s.repo.Question().CreateBatch(ctx, tx, questions); err != nil {
			return fmt.Errorf("failed to insert questions: %w", err)
		}
		for _, account := range accounts {
			if err := s.repo.Respondent().Upsert(ctx, tx, account); err != nil {
				return fmt.Errorf("failed to upsert %s: %w", account.RollNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	counts := map[string]int{}
	for _, q := range questions {
		counts[q.Test]++
	}
	s.logger.InfoContext(ctx, "Database seeded",
		"questions", len(questions),
		"per_test", counts,
		"accounts", len(accounts))
	return nil
}
