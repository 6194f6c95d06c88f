package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/auth"
	"github.com/SAP-F-2025/career-assessment-service/internal/cache"
	"github.com/SAP-F-2025/career-assessment-service/internal/events"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// ===== REPOSITORY MOCKS =====

type MockRepository struct {
	question   *MockQuestionRepository
	respondent *MockRespondentRepository
	result     *MockResultRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		question:   &MockQuestionRepository{},
		respondent: &MockRespondentRepository{},
		result:     &MockResultRepository{},
	}
}

func (m *MockRepository) Question() repositories.QuestionRepository     { return m.question }
func (m *MockRepository) Respondent() repositories.RespondentRepository { return m.respondent }
func (m *MockRepository) Result() repositories.ResultRepository         { return m.result }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *MockRepository) AssertExpectations(t mock.TestingT) {
	m.question.AssertExpectations(t)
	m.respondent.AssertExpectations(t)
	m.result.AssertExpectations(t)
}

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	args := m.Called(ctx, tx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, tx *gorm.DB, questions []*models.Question) error {
	args := m.Called(ctx, tx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Question, error) {
	args := m.Called(ctx, tx, id)
	if q := args.Get(0); q != nil {
		return q.(*models.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	args := m.Called(ctx, tx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.QuestionFilters) ([]*models.Question, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByTest(ctx context.Context, tx *gorm.DB, test string) ([]*models.Question, error) {
	args := m.Called(ctx, tx, test)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) CountByTest(ctx context.Context, tx *gorm.DB) ([]models.TestSummary, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).([]models.TestSummary), args.Error(1)
}

func (m *MockQuestionRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockRespondentRepository struct {
	mock.Mock
}

func (m *MockRespondentRepository) respondent(args mock.Arguments) (*models.Respondent, error) {
	if r := args.Get(0); r != nil {
		return r.(*models.Respondent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRespondentRepository) Create(ctx context.Context, tx *gorm.DB, respondent *models.Respondent) error {
	args := m.Called(ctx, tx, respondent)
	return args.Error(0)
}

func (m *MockRespondentRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Respondent, error) {
	return m.respondent(m.Called(ctx, tx, id))
}

func (m *MockRespondentRepository) GetByIDWithResults(ctx context.Context, tx *gorm.DB, id string) (*models.Respondent, error) {
	return m.respondent(m.Called(ctx, tx, id))
}

func (m *MockRespondentRepository) GetByRollNumber(ctx context.Context, tx *gorm.DB, rollNumber string) (*models.Respondent, error) {
	return m.respondent(m.Called(ctx, tx, rollNumber))
}

func (m *MockRespondentRepository) ExistsByRollNumber(ctx context.Context, tx *gorm.DB, rollNumber string) (bool, error) {
	args := m.Called(ctx, tx, rollNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockRespondentRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.RespondentFilters) ([]*models.Respondent, int64, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*models.Respondent), args.Get(1).(int64), args.Error(2)
}

func (m *MockRespondentRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockRespondentRepository) Upsert(ctx context.Context, tx *gorm.DB, respondent *models.Respondent) error {
	args := m.Called(ctx, tx, respondent)
	return args.Error(0)
}

func (m *MockRespondentRepository) UpdatePassword(ctx context.Context, tx *gorm.DB, id string, passwordHash string) error {
	args := m.Called(ctx, tx, id, passwordHash)
	return args.Error(0)
}

func (m *MockRespondentRepository) SetCompleted(ctx context.Context, tx *gorm.DB, id string, completed bool) error {
	args := m.Called(ctx, tx, id, completed)
	return args.Error(0)
}

func (m *MockRespondentRepository) LockByID(ctx context.Context, tx *gorm.DB, id string) (*models.Respondent, error) {
	return m.respondent(m.Called(ctx, tx, id))
}

type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Append(ctx context.Context, tx *gorm.DB, result *models.TestResult) error {
	args := m.Called(ctx, tx, result)
	return args.Error(0)
}

func (m *MockResultRepository) ListByRespondent(ctx context.Context, tx *gorm.DB, respondentID string) ([]*models.TestResult, error) {
	args := m.Called(ctx, tx, respondentID)
	return args.Get(0).([]*models.TestResult), args.Error(1)
}

func (m *MockResultRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]*models.TestResult, error) {
	args := m.Called(ctx, tx, filters)
	return args.Get(0).([]*models.TestResult), args.Error(1)
}

func (m *MockResultRepository) DeleteByRespondent(ctx context.Context, tx *gorm.DB, respondentID string, test *string) (int64, error) {
	args := m.Called(ctx, tx, respondentID, test)
	return args.Get(0).(int64), args.Error(1)
}

// ===== CACHE =====

// memoryCache is a map backed CacheService round-tripping values through JSON.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// ===== FIXTURES =====

type fixture struct {
	repo      *MockRepository
	cache     *memoryCache
	publisher *events.MockEventPublisher
	engine    *scoring.Engine
	validator *validator.Validator
	tokens    *auth.TokenService
	manager   ServiceManager
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := scoring.DefaultConfig()
	cfg.Now = func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) }
	engine, err := scoring.NewEngine(cfg)
	if err != nil {
		panic(err)
	}

	f := &fixture{
		repo:      newMockRepository(),
		cache:     newMemoryCache(),
		publisher: events.NewMockEventPublisher(logger),
		engine:    engine,
		validator: validator.New(cfg),
		tokens:    auth.NewTokenService("test-secret", time.Hour),
	}
	f.manager = NewServiceManager(Dependencies{
		Repo:      f.repo,
		Cache:     f.cache,
		CacheTTL:  time.Minute,
		Engine:    f.engine,
		Publisher: f.publisher,
		Validator: f.validator,
		Tokens:    f.tokens,
		Logger:    logger,
	})
	return f
}

func strPtr(s string) *string { return &s }

func riasecQuestion(id string, number int, category string) *models.Question {
	return &models.Question{ID: id, QuestionNumber: number, Text: "Q " + id, Test: scoring.TestRIASEC, Category: strPtr(category)}
}

func scaleQuestion(test, id string, number int) *models.Question {
	return &models.Question{ID: id, QuestionNumber: number, Text: "Q " + id, Test: test}
}
