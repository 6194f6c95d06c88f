package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/events"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
	"gorm.io/gorm"
)

type submissionService struct {
	repo      repositories.Repository
	questions QuestionService
	engine    *scoring.Engine
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewSubmissionService(repo repositories.Repository, questions QuestionService, engine *scoring.Engine, publisher events.EventPublisher, validator *validator.Validator, logger *ServiceLogger) SubmissionService {
	return &submissionService{
		repo:      repo,
		questions: questions,
		engine:    engine,
		publisher: publisher,
		validator: validator,
		logger:    logger,
	}
}

// Submit scores one submission and appends it to the respondent's history.
func (s *submissionService) Submit(ctx context.Context, respondentID string, req *SubmitRequest) (resp *SubmitResponse, err error) {
	start := time.Now()
	test := strings.TrimSpace(req.Test)
	if test == "" {
		test = scoring.DefaultTest
	}
	defer func() {
		s.logger.LogOperation(ctx, "submit_test", respondentID, test, "test_result", time.Since(start), err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	// Unregistered tests are a configuration problem; fail before any I/O.
	if _, err := s.engine.Definition(test); err != nil {
		return nil, err
	}

	stored, err := s.questions.List(ctx, test)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("%w: %s", scoring.ErrNoQuestions, test)
	}

	result, err := s.engine.Score(test, toScoringQuestions(stored), scoring.Answers(req.Answers))
	if err != nil {
		return nil, err
	}

	record := newTestResult(respondentID, result)
	var respondent *models.Respondent

	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		respondent, err = s.repo.Respondent().LockByID(ctx, tx, respondentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to lock respondent: %w", err)
		}
		if err := s.repo.Result().Append(ctx, tx, record); err != nil {
			return fmt.Errorf("failed to store result: %w", err)
		}
		if err := s.repo.Respondent().SetCompleted(ctx, tx, respondentID, true); err != nil {
			return fmt.Errorf("failed to flag completion: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, respondent, record)
	return newSubmitResponse(record), nil
}

func (s *submissionService) publishCompleted(ctx context.Context, respondent *models.Respondent, record *models.TestResult) {
	event := events.NewAssessmentCompletedEvent(events.AssessmentCompletedEvent{
		ResultID:       record.ID,
		RespondentID:   record.RespondentID,
		RollNumber:     respondent.RollNumber,
		Test:           record.Test,
		Mode:           record.Mode,
		PrimaryCareer:  record.PrimaryCareer,
		TopThree:       record.TopThree,
		Score:          record.Score,
		Interpretation: record.Interpretation,
		Correct:        record.Correct,
		Total:          record.Total,
		CompletedAt:    record.CompletedAt,
	})
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Logger().ErrorContext(ctx, "Failed to publish assessment completed event",
			"result_id", record.ID,
			"error", err)
	}
}
