package repositories

import (
	"context"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"gorm.io/gorm"
)

// ResultRepository is the append-only result history.
type ResultRepository interface {
	Append(ctx context.Context, tx *gorm.DB, result *models.TestResult) error
	ListByRespondent(ctx context.Context, tx *gorm.DB, respondentID string) ([]*models.TestResult, error)
	List(ctx context.Context, tx *gorm.DB, filters ResultFilters) ([]*models.TestResult, error)

	// DeleteByRespondent removes results for one test, or all when test is
	// nil, and returns how many remain.
	DeleteByRespondent(ctx context.Context, tx *gorm.DB, respondentID string, test *string) (int64, error)
}
