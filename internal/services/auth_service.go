package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/auth"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenService
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenService, validator *validator.Validator, logger *ServiceLogger) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		validator: validator,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (respondent *models.Respondent, err error) {
	start := time.Now()
	defer func() {
		id := ""
		if respondent != nil {
			id = respondent.ID
		}
		s.logger.LogOperation(ctx, "register", "", id, "respondent", time.Since(start), err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	if role == models.RoleAdmin {
		return nil, NewBusinessRuleError("self_registration", "administrator accounts cannot be self-registered", nil)
	}

	rollNumber := strings.TrimSpace(req.RollNumber)
	exists, err := s.repo.Respondent().ExistsByRollNumber(ctx, nil, rollNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check roll number: %w", err)
	}
	if exists {
		return nil, ErrRollNumberTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	respondent = &models.Respondent{
		RollNumber:   rollNumber,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         role,
		Year:         req.Year,
	}
	if err := s.repo.Respondent().Create(ctx, nil, respondent); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrRollNumberTaken
		}
		return nil, fmt.Errorf("failed to create respondent: %w", err)
	}

	return respondent, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (resp *LoginResponse, err error) {
	start := time.Now()
	defer func() {
		id := ""
		if resp != nil {
			id = resp.User.ID
		}
		s.logger.LogOperation(ctx, "login", id, id, "respondent", time.Since(start), err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	respondent, err := s.repo.Respondent().GetByRollNumber(ctx, nil, strings.TrimSpace(req.RollNumber))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load respondent: %w", err)
	}

	if err := auth.CheckPassword(respondent.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.tokens.Issue(respondent)
	if err != nil {
		return nil, err
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      NewUserSummary(respondent),
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) (err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "change_password", userID, userID, "respondent", time.Since(start), err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return validator.ToValidationErrors(err)
	}

	respondent, err := s.repo.Respondent().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load respondent: %w", err)
	}

	if err := auth.CheckPassword(respondent.PasswordHash, req.OldPassword); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return ErrInvalidOldPassword
		}
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.Respondent().UpdatePassword(ctx, nil, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*models.Respondent, error) {
	respondent, err := s.repo.Respondent().GetByIDWithResults(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return respondent, nil
}

func (s *authService) ParseToken(token string) (*auth.Claims, error) {
	return s.tokens.Parse(token)
}

// NewUserSummary strips an account down to its public fields.
func NewUserSummary(r *models.Respondent) UserSummary {
	return UserSummary{
		ID:               r.ID,
		RollNumber:       r.RollNumber,
		Name:             r.Name,
		Role:             r.Role,
		HasCompletedTest: r.HasCompletedTest,
	}
}
