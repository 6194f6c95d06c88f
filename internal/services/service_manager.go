package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/auth"
	"github.com/SAP-F-2025/career-assessment-service/internal/cache"
	"github.com/SAP-F-2025/career-assessment-service/internal/events"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
)

type ServiceManager interface {
	Auth() AuthService
	Question() QuestionService
	Catalog() CatalogService
	Submission() SubmissionService
	Student() StudentService
	ImportExport() ImportExportService
}

// Dependencies are the shared collaborators of all services.
type Dependencies struct {
	Repo      repositories.Repository
	Cache     cache.CacheService
	CacheTTL  time.Duration
	Engine    *scoring.Engine
	Publisher events.EventPublisher
	Validator *validator.Validator
	Tokens    *auth.TokenService
	Logger    *slog.Logger
	Debug     bool
}

type serviceManager struct {
	auth         AuthService
	question     QuestionService
	catalog      CatalogService
	submission   SubmissionService
	student      StudentService
	importExport ImportExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	if deps.Cache == nil {
		deps.Cache = cache.NewNoopCache()
	}

	componentLogger := func(component string) *ServiceLogger {
		return NewServiceLogger(deps.Logger, LogConfig{
			Service:     "career-assessment-service",
			Component:   component,
			EnableDebug: deps.Debug,
		})
	}

	question := NewQuestionService(deps.Repo, deps.Cache, deps.CacheTTL, deps.Validator, componentLogger("question"))

	return &serviceManager{
		auth:         NewAuthService(deps.Repo, deps.Tokens, deps.Validator, componentLogger("auth")),
		question:     question,
		catalog:      NewCatalogService(deps.Repo, deps.Engine, deps.Cache, deps.CacheTTL, componentLogger("catalog")),
		submission:   NewSubmissionService(deps.Repo, question, deps.Engine, deps.Publisher, deps.Validator, componentLogger("submission")),
		student:      NewStudentService(deps.Repo, deps.Publisher, deps.Validator, componentLogger("student")),
		importExport: NewImportExportService(deps.Repo, question, deps.Validator, componentLogger("import_export")),
	}
}

func (m *serviceManager) Auth() AuthService                 { return m.auth }
func (m *serviceManager) Question() QuestionService         { return m.question }
func (m *serviceManager) Catalog() CatalogService           { return m.catalog }
func (m *serviceManager) Submission() SubmissionService     { return m.submission }
func (m *serviceManager) Student() StudentService           { return m.student }
func (m *serviceManager) ImportExport() ImportExportService { return m.importExport }
