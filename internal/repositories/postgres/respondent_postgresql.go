package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RespondentPostgreSQL struct {
	db *gorm.DB
}

func NewRespondentPostgreSQL(db *gorm.DB) repositories.RespondentRepository {
	return &RespondentPostgreSQL{db: db}
}

func (r *RespondentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, respondent *models.Respondent) error {
	if err := conn(ctx, r.db, tx).Create(respondent).Error; err != nil {
		if repositories.IsDuplicateError(err) {
			return repositories.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *RespondentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Respondent, error) {
	var respondent models.Respondent
	if err := conn(ctx, r.db, tx).First(&respondent, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &respondent, nil
}

func (r *RespondentPostgreSQL) GetByIDWithResults(ctx context.Context, tx *gorm.DB, id string) (*models.Respondent, error) {
	var respondent models.Respondent
	if err := conn(ctx, r.db, tx).
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("completed_at ASC")
		}).
		First(&respondent, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &respondent, nil
}

func (r *RespondentPostgreSQL) GetByRollNumber(ctx context.Context, tx *gorm.DB, rollNumber string) (*models.Respondent, error) {
	var respondent models.Respondent
	if err := conn(ctx, r.db, tx).First(&respondent, "roll_number = ?", rollNumber).Error; err != nil {
		return nil, notFound(err)
	}
	return &respondent, nil
}

func (r *RespondentPostgreSQL) ExistsByRollNumber(ctx context.Context, tx *gorm.DB, rollNumber string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db, tx).Model(&models.Respondent{}).
		Where("roll_number = ?", rollNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RespondentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.RespondentFilters) ([]*models.Respondent, int64, error) {
	var respondents []*models.Respondent
	var total int64

	query := conn(ctx, r.db, tx).Model(&models.Respondent{})
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if q := strings.TrimSpace(filters.Query); q != "" {
		pattern := containsPattern(strings.ToLower(q))
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(roll_number) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("completed_at ASC")
		}).
		Order("name ASC").
		Find(&respondents).Error; err != nil {
		return nil, 0, err
	}

	return respondents, total, nil
}

func (r *RespondentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := conn(ctx, r.db, tx).Select("Results").Delete(&models.Respondent{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *RespondentPostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, respondent *models.Respondent) error {
	return conn(ctx, r.db, tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "roll_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "role", "updated_at"}),
	}).Create(respondent).Error
}

func (r *RespondentPostgreSQL) UpdatePassword(ctx context.Context, tx *gorm.DB, id string, passwordHash string) error {
	return r.updateColumn(ctx, tx, id, "password_hash", passwordHash)
}

func (r *RespondentPostgreSQL) SetCompleted(ctx context.Context, tx *gorm.DB, id string, completed bool) error {
	return r.updateColumn(ctx, tx, id, "has_completed_test", completed)
}

func (r *RespondentPostgreSQL) LockByID(ctx context.Context, tx *gorm.DB, id string) (*models.Respondent, error) {
	var respondent models.Respondent
	if err := conn(ctx, r.db, tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&respondent, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &respondent, nil
}

func (r *RespondentPostgreSQL) updateColumn(ctx context.Context, tx *gorm.DB, id, column string, value interface{}) error {
	result := conn(ctx, r.db, tx).Model(&models.Respondent{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
