package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/career-assessment-service/internal/auth"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.Respondent, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error
	Profile(ctx context.Context, userID string) (*models.Respondent, error)
	ParseToken(token string) (*auth.Claims, error)
}

type QuestionService interface {
	// List returns the bank ordered by question number, optionally for one test.
	List(ctx context.Context, test string) ([]*models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	Create(ctx context.Context, req *QuestionRequest, actorID string) (*models.Question, error)
	Update(ctx context.Context, id string, req *QuestionRequest, actorID string) (*models.Question, error)
	Delete(ctx context.Context, id string, actorID string) error

	// CreateBatch validates and inserts questions in one transaction.
	CreateBatch(ctx context.Context, questions []*models.Question, actorID string) error
}

type CatalogService interface {
	List(ctx context.Context) ([]TestInfo, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, respondentID string, req *SubmitRequest) (*SubmitResponse, error)
}

type StudentService interface {
	List(ctx context.Context, query string) ([]*models.Respondent, error)
	GetByID(ctx context.Context, id string) (*models.Respondent, error)
	Delete(ctx context.Context, id string, actorID string) error
	ResetAssessment(ctx context.Context, id string, req *ResetRequest, actorID string) (*ResetResponse, error)
}

type ImportExportService interface {
	ImportQuestions(ctx context.Context, reader io.Reader, filename string, actorID string) (*models.ImportSummary, error)
	ExportQuestions(ctx context.Context, test string) (*ExportFile, error)
	ExportResults(ctx context.Context, req *models.ExportRequest) (*ExportFile, error)
}
