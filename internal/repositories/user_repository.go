package repositories

import (
	"context"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"gorm.io/gorm"
)

// RespondentRepository stores accounts.
type RespondentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, respondent *models.Respondent) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Respondent, error)
	GetByIDWithResults(ctx context.Context, tx *gorm.DB, id string) (*models.Respondent, error)
	GetByRollNumber(ctx context.Context, tx *gorm.DB, rollNumber string) (*models.Respondent, error)
	ExistsByRollNumber(ctx context.Context, tx *gorm.DB, rollNumber string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, filters RespondentFilters) ([]*models.Respondent, int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error

	// Upsert creates the account or overwrites name, hash and role of an
	// existing one with the same roll number.
	Upsert(ctx context.Context, tx *gorm.DB, respondent *models.Respondent) error

	UpdatePassword(ctx context.Context, tx *gorm.DB, id string, passwordHash string) error
	SetCompleted(ctx context.Context, tx *gorm.DB, id string, completed bool) error

	// LockByID takes a row lock on the respondent for the rest of tx.
	LockByID(ctx context.Context, tx *gorm.DB, id string) (*models.Respondent, error)
}
