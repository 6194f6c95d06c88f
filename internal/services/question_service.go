package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/cache"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type questionService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	cacheTTL  time.Duration
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewQuestionService(repo repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, validator *validator.Validator, logger *ServiceLogger) QuestionService {
	return &questionService{
		repo:      repo,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		validator: validator,
		logger:    logger,
	}
}

func (s *questionService) List(ctx context.Context, test string) ([]*models.Question, error) {
	test = strings.TrimSpace(test)
	key := cache.QuestionsKey(test)

	var questions []*models.Question
	err := s.cache.Get(ctx, key, &questions)
	if err == nil {
		return questions, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Logger().WarnContext(ctx, "Question cache read failed", "key", key, "error", err)
	}

	filters := repositories.QuestionFilters{}
	if test != "" {
		filters.Test = &test
	}
	questions, err = s.repo.Question().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	// Never cache an empty list; it would mask questions under the same key.
	if len(questions) == 0 {
		return []*models.Question{}, nil
	}

	if err := s.cache.Set(ctx, key, questions, s.cacheTTL); err != nil {
		s.logger.Logger().WarnContext(ctx, "Question cache write failed", "key", key, "error", err)
	}
	return questions, nil
}

func (s *questionService) GetByID(ctx context.Context, id string) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (s *questionService) Create(ctx context.Context, req *QuestionRequest, actorID string) (question *models.Question, err error) {
	start := time.Now()
	defer func() {
		id := ""
		if question != nil {
			id = question.ID
		}
		s.logger.LogOperation(ctx, "create_question", actorID, id, "question", time.Since(start), err)
	}()

	question, err = s.buildQuestion(req, &models.Question{})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Question().Create(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.invalidate(ctx)
	return question, nil
}

func (s *questionService) Update(ctx context.Context, id string, req *QuestionRequest, actorID string) (question *models.Question, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "update_question", actorID, id, "question", time.Since(start), err)
	}()

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	question, err = s.buildQuestion(req, existing)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Question().Update(ctx, nil, question); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	s.invalidate(ctx)
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id string, actorID string) (err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "delete_question", actorID, id, "question", time.Since(start), err)
	}()

	if err := s.repo.Question().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *questionService) CreateBatch(ctx context.Context, questions []*models.Question, actorID string) (err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "create_questions", actorID, "", "question", time.Since(start), err)
	}()

	for _, q := range questions {
		normalizeQuestion(q)
	}
	if err := s.validator.Question().ValidateBatch(questions); err != nil {
		return err
	}

	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		return s.repo.Question().CreateBatch(ctx, tx, questions)
	})
	if err != nil {
		return fmt.Errorf("failed to create questions: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

// buildQuestion applies req onto target and runs both validation layers.
func (s *questionService) buildQuestion(req *QuestionRequest, target *models.Question) (*models.Question, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	target.QuestionNumber = req.QuestionNumber
	target.Text = req.Text
	target.Test = req.Test
	target.Category = req.Category
	target.Options = datatypes.JSONSlice[string](req.Options)
	target.CorrectAnswer = req.CorrectAnswer
	normalizeQuestion(target)

	if err := s.validator.Question().ValidateQuestion(target); err != nil {
		return nil, err
	}
	return target, nil
}

// invalidate drops every cached question list and the catalog.
func (s *questionService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, cache.QuestionsPattern); err != nil {
		s.logger.Logger().WarnContext(ctx, "Question cache invalidation failed", "error", err)
	}
	if err := s.cache.Delete(ctx, cache.CatalogKey); err != nil {
		s.logger.Logger().WarnContext(ctx, "Catalog cache invalidation failed", "error", err)
	}
}

func normalizeQuestion(q *models.Question) {
	q.Text = strings.TrimSpace(q.Text)
	q.Test = strings.TrimSpace(q.Test)
	if q.Test == "" {
		q.Test = scoring.DefaultTest
	}
	if q.Category != nil {
		if c, ok := scoring.ParseCategory(*q.Category); ok {
			code := string(c)
			q.Category = &code
		} else if strings.TrimSpace(*q.Category) == "" {
			q.Category = nil
		}
	}
	if q.CorrectAnswer != nil && *q.CorrectAnswer == "" {
		q.CorrectAnswer = nil
	}
	if len(q.Options) == 0 {
		q.Options = nil
	}
}

// toScoringQuestions converts stored questions into the engine's view.
func toScoringQuestions(questions []*models.Question) []scoring.Question {
	out := make([]scoring.Question, 0, len(questions))
	for _, q := range questions {
		sq := scoring.Question{
			ID:      q.ID,
			Number:  q.QuestionNumber,
			Test:    q.Test,
			Options: []string(q.Options),
		}
		if q.Category != nil {
			sq.Category = scoring.Category(*q.Category)
		}
		if q.CorrectAnswer != nil {
			sq.CorrectAnswer = *q.CorrectAnswer
		}
		out = append(out, sq)
	}
	return out
}
