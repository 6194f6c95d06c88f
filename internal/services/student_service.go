package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/events"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
	"gorm.io/gorm"
)

type studentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewStudentService(repo repositories.Repository, publisher events.EventPublisher, validator *validator.Validator, logger *ServiceLogger) StudentService {
	return &studentService{
		repo:      repo,
		publisher: publisher,
		validator: validator,
		logger:    logger,
	}
}

// List returns students ordered by name. A non-empty query filters by a case
// insensitive substring of name or roll number.
func (s *studentService) List(ctx context.Context, query string) ([]*models.Respondent, error) {
	role := models.RoleStudent
	students, _, err := s.repo.Respondent().List(ctx, nil, repositories.RespondentFilters{
		Role:  &role,
		Query: strings.TrimSpace(query),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	if students == nil {
		students = []*models.Respondent{}
	}
	return students, nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*models.Respondent, error) {
	respondent, err := s.repo.Respondent().GetByIDWithResults(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if !isStudent(respondent) {
		return nil, ErrUserNotFound
	}
	return respondent, nil
}

func (s *studentService) Delete(ctx context.Context, id string, actorID string) (err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "delete_student", actorID, id, "respondent", time.Since(start), err)
	}()

	if id == actorID {
		return ErrCannotDeleteSelf
	}

	var respondent *models.Respondent
	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		respondent, err = s.repo.Respondent().LockByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !isStudent(respondent) {
			return ErrUserNotFound
		}
		if _, err := s.repo.Result().DeleteByRespondent(ctx, tx, id, nil); err != nil {
			return err
		}
		return s.repo.Respondent().Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}

	s.publish(ctx, events.NewRespondentDeletedEvent(events.RespondentDeletedEvent{
		RespondentID: respondent.ID,
		RollNumber:   respondent.RollNumber,
		DeletedBy:    actorID,
		DeletedAt:    time.Now().UTC(),
	}))
	return nil
}

// ResetAssessment removes results for one test, or all of them, and
// recomputes the completion flag from what remains.
func (s *studentService) ResetAssessment(ctx context.Context, id string, req *ResetRequest, actorID string) (resp *ResetResponse, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "reset_assessment", actorID, id, "respondent", time.Since(start), err)
	}()

	if req == nil {
		req = &ResetRequest{}
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	var test *string
	if req.Test != nil && strings.TrimSpace(*req.Test) != "" {
		t := strings.TrimSpace(*req.Test)
		test = &t
	}

	var remaining int64
	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		respondent, err := s.repo.Respondent().LockByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !isStudent(respondent) {
			return ErrUserNotFound
		}
		remaining, err = s.repo.Result().DeleteByRespondent(ctx, tx, id, test)
		if err != nil {
			return err
		}
		return s.repo.Respondent().SetCompleted(ctx, tx, id, remaining > 0)
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to reset assessment: %w", err)
	}

	respondent, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewAssessmentResetEvent(events.AssessmentResetEvent{
		RespondentID:     id,
		RollNumber:       respondent.RollNumber,
		Test:             test,
		RemainingResults: remaining,
		ResetBy:          actorID,
		ResetAt:          time.Now().UTC(),
	}))

	message := "All assessments reset successfully"
	if test != nil {
		message = fmt.Sprintf("Assessment for %s reset successfully", *test)
	}
	return &ResetResponse{Message: message, User: respondent}, nil
}

// isStudent limits the admin operations to student accounts; admins are
// reported as not found.
func isStudent(r *models.Respondent) bool {
	return r.Role == models.RoleStudent
}

func (s *studentService) publish(ctx context.Context, event *events.Event) {
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Logger().ErrorContext(ctx, "Failed to publish event",
			"event_type", event.Type,
			"error", err)
	}
}
