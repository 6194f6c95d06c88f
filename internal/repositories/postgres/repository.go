package postgres

import (
	"context"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db         *gorm.DB
	question   repositories.QuestionRepository
	respondent repositories.RespondentRepository
	result     repositories.ResultRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:         db,
		question:   NewQuestionPostgreSQL(db),
		respondent: NewRespondentPostgreSQL(db),
		result:     NewResultPostgreSQL(db),
	}
}

func (r *repository) Question() repositories.QuestionRepository     { return r.question }
func (r *repository) Respondent() repositories.RespondentRepository { return r.respondent }
func (r *repository) Result() repositories.ResultRepository         { return r.result }

func (r *repository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// AutoMigrate creates or updates the schema for all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Respondent{},
		&models.Question{},
		&models.TestResult{},
	)
}

// conn returns tx when set, otherwise the default connection bound to ctx.
func conn(ctx context.Context, db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
