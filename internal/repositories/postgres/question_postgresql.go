package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q *QuestionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	return conn(ctx, q.db, tx).Create(question).Error
}

func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return conn(ctx, q.db, tx).CreateInBatches(questions, 100).Error
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Question, error) {
	var question models.Question
	if err := conn(ctx, q.db, tx).First(&question, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	result := conn(ctx, q.db, tx).Model(question).
		Select("question_number", "text", "test", "category", "options", "correct_answer").
		Updates(question)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (q *QuestionPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := conn(ctx, q.db, tx).Delete(&models.Question{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (q *QuestionPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionFilters) ([]*models.Question, error) {
	var questions []*models.Question

	query := conn(ctx, q.db, tx).Model(&models.Question{})
	if filters.Test != nil && *filters.Test != "" {
		query = query.Where("test = ?", *filters.Test)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("question_number ASC").Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) GetByTest(ctx context.Context, tx *gorm.DB, test string) ([]*models.Question, error) {
	return q.List(ctx, tx, repositories.QuestionFilters{Test: &test})
}

func (q *QuestionPostgreSQL) CountByTest(ctx context.Context, tx *gorm.DB) ([]models.TestSummary, error) {
	var summaries []models.TestSummary
	if err := conn(ctx, q.db, tx).Model(&models.Question{}).
		Select("test, COUNT(*) AS count").
		Group("test").
		Order("test ASC").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (q *QuestionPostgreSQL) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	return conn(ctx, q.db, tx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Question{}).Error
}
