package postgres

import (
	"context"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r *ResultPostgreSQL) Append(ctx context.Context, tx *gorm.DB, result *models.TestResult) error {
	return conn(ctx, r.db, tx).Create(result).Error
}

func (r *ResultPostgreSQL) ListByRespondent(ctx context.Context, tx *gorm.DB, respondentID string) ([]*models.TestResult, error) {
	return r.List(ctx, tx, repositories.ResultFilters{RespondentID: &respondentID})
}

func (r *ResultPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]*models.TestResult, error) {
	var results []*models.TestResult

	query := conn(ctx, r.db, tx).Model(&models.TestResult{})
	if filters.RespondentID != nil {
		query = query.Where("respondent_id = ?", *filters.RespondentID)
	}
	if filters.Test != nil && *filters.Test != "" {
		query = query.Where("test = ?", *filters.Test)
	}

	if err := query.Order("completed_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ResultPostgreSQL) DeleteByRespondent(ctx context.Context, tx *gorm.DB, respondentID string, test *string) (int64, error) {
	db := conn(ctx, r.db, tx)

	query := db.Where("respondent_id = ?", respondentID)
	if test != nil {
		query = query.Where("test = ?", *test)
	}
	if err := query.Delete(&models.TestResult{}).Error; err != nil {
		return 0, err
	}

	var remaining int64
	if err := db.Model(&models.TestResult{}).
		Where("respondent_id = ?", respondentID).
		Count(&remaining).Error; err != nil {
		return 0, err
	}
	return remaining, nil
}
