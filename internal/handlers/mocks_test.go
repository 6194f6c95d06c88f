package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/auth"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/services"
	"github.com/SAP-F-2025/career-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
	tokens *auth.TokenService
}

func (m *MockAuthService) Register(ctx context.Context, req *services.RegisterRequest) (*models.Respondent, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*models.Respondent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*services.LoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID string, req *services.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockAuthService) Profile(ctx context.Context, userID string) (*models.Respondent, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.(*models.Respondent), args.Error(1)
	}
	return nil, args.Error(1)
}

// ParseToken verifies with a real token service so tests can log in for real.
func (m *MockAuthService) ParseToken(token string) (*auth.Claims, error) {
	return m.tokens.Parse(token)
}

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) List(ctx context.Context, test string) ([]*models.Question, error) {
	args := m.Called(ctx, test)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionService) GetByID(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if q := args.Get(0); q != nil {
		return q.(*models.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionService) Create(ctx context.Context, req *services.QuestionRequest, actorID string) (*models.Question, error) {
	args := m.Called(ctx, req, actorID)
	if q := args.Get(0); q != nil {
		return q.(*models.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionService) Update(ctx context.Context, id string, req *services.QuestionRequest, actorID string) (*models.Question, error) {
	args := m.Called(ctx, id, req, actorID)
	if q := args.Get(0); q != nil {
		return q.(*models.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionService) Delete(ctx context.Context, id string, actorID string) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *MockQuestionService) CreateBatch(ctx context.Context, questions []*models.Question, actorID string) error {
	args := m.Called(ctx, questions, actorID)
	return args.Error(0)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context) ([]services.TestInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]services.TestInfo), args.Error(1)
}

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, respondentID string, req *services.SubmitRequest) (*services.SubmitResponse, error) {
	args := m.Called(ctx, respondentID, req)
	if r := args.Get(0); r != nil {
		return r.(*services.SubmitResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) List(ctx context.Context, query string) ([]*models.Respondent, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]*models.Respondent), args.Error(1)
}

func (m *MockStudentService) GetByID(ctx context.Context, id string) (*models.Respondent, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.Respondent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentService) Delete(ctx context.Context, id string, actorID string) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *MockStudentService) ResetAssessment(ctx context.Context, id string, req *services.ResetRequest, actorID string) (*services.ResetResponse, error) {
	args := m.Called(ctx, id, req, actorID)
	if r := args.Get(0); r != nil {
		return r.(*services.ResetResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockImportExportService struct {
	mock.Mock
}

func (m *MockImportExportService) ImportQuestions(ctx context.Context, reader io.Reader, filename string, actorID string) (*models.ImportSummary, error) {
	args := m.Called(ctx, reader, filename, actorID)
	if r := args.Get(0); r != nil {
		return r.(*models.ImportSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockImportExportService) ExportQuestions(ctx context.Context, test string) (*services.ExportFile, error) {
	args := m.Called(ctx, test)
	if r := args.Get(0); r != nil {
		return r.(*services.ExportFile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockImportExportService) ExportResults(ctx context.Context, req *models.ExportRequest) (*services.ExportFile, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*services.ExportFile), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockServiceManager struct {
	auth         *MockAuthService
	question     *MockQuestionService
	catalog      *MockCatalogService
	submission   *MockSubmissionService
	student      *MockStudentService
	importExport *MockImportExportService
}

func (m *mockServiceManager) Auth() services.AuthService                 { return m.auth }
func (m *mockServiceManager) Question() services.QuestionService         { return m.question }
func (m *mockServiceManager) Catalog() services.CatalogService           { return m.catalog }
func (m *mockServiceManager) Submission() services.SubmissionService     { return m.submission }
func (m *mockServiceManager) Student() services.StudentService           { return m.student }
func (m *mockServiceManager) ImportExport() services.ImportExportService { return m.importExport }

// ===== TEST SERVER =====

type testServer struct {
	router   *gin.Engine
	services *mockServiceManager
	tokens   *auth.TokenService
}

func newTestServer() *testServer {
	return newTestServerWithLogger(utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func newTestServerWithLogger(logger utils.Logger) *testServer {
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService("handler-secret", time.Hour)
	sm := &mockServiceManager{
		auth:         &MockAuthService{tokens: tokens},
		question:     &MockQuestionService{},
		catalog:      &MockCatalogService{},
		submission:   &MockSubmissionService{},
		student:      &MockStudentService{},
		importExport: &MockImportExportService{},
	}

	router := gin.New()
	router.Use(utils.ContextLogger(logger))
	NewHandlerManager(sm, logger).SetupRoutes(router)

	return &testServer{router: router, services: sm, tokens: tokens}
}

func (s *testServer) token(t *testing.T, id string, role models.UserRole) string {
	t.Helper()
	token, err := s.tokens.Issue(&models.Respondent{ID: id, RollNumber: "R-" + id, Role: role})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.serve(req)
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
