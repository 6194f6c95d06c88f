package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"gorm.io/gorm"
)

// Repository groups the stores used by the service layer.
type Repository interface {
	Question() QuestionRepository
	Respondent() RespondentRepository
	Result() ResultRepository

	// WithTransaction runs fn inside a database transaction. Repository
	// methods called with the tx handle join that transaction; passing a nil
	// tx uses the default connection.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Test   *string `json:"test"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

type RespondentFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"` // substring of name or roll number
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type ResultFilters struct {
	Test         *string `json:"test"`
	RespondentID *string `json:"respondent_id"`
}

// ===== ERRORS =====

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicateError(err error) bool {
	if errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
