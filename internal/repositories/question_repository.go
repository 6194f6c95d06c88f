package repositories

import (
	"context"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"gorm.io/gorm"
)

// QuestionRepository stores the question bank.
type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *models.Question) error
	CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *models.Question) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error

	// List returns questions ordered by question number.
	List(ctx context.Context, tx *gorm.DB, filters QuestionFilters) ([]*models.Question, error)
	GetByTest(ctx context.Context, tx *gorm.DB, test string) ([]*models.Question, error)

	// CountByTest aggregates the bank per test identifier.
	CountByTest(ctx context.Context, tx *gorm.DB) ([]models.TestSummary, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}
