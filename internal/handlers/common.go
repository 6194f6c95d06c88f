package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/career-assessment-service/internal/services"
	"github.com/SAP-F-2025/career-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error codes carried in ErrorResponse.Code
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeIncomplete   = "INCOMPLETE_SUBMISSION"
	CodeBusinessRule = "BUSINESS_RULE"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConfig       = "CONFIGURATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// log returns the request-scoped logger, which already carries the request
// id, method and path.
func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	if logger := utils.GetLoggerFromContext(c, nil); logger != nil {
		return logger
	}
	return h.logger.With(
		"request_id", c.GetHeader("X-Request-ID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"remote_addr", c.ClientIP(),
		"user_agent", c.Request.UserAgent(),
		"user_id", h.extractUserID(c),
		"timestamp", time.Now().Format(time.RFC3339),
	}
	fields = append(fields, additionalFields...)

	h.log(c).Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{"user_id", h.extractUserID(c)}, additionalFields...)
	h.log(c).LogError(err, message, fields...)
}

// LogInfo logs informational messages with context
func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{"user_id", h.extractUserID(c)}, additionalFields...)
	h.log(c).Info(message, fields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{"user_id", h.extractUserID(c)}, additionalFields...)
	h.log(c).Warn(message, fields...)
}

// Helper method to extract user ID from context
func (h *BaseHandler) extractUserID(c *gin.Context) interface{} {
	if userID, exists := c.Get("user_id"); exists {
		return userID
	}
	return nil
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, code, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
		Code:    code,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.JSON(statusCode, errorResp)
}

// handleServiceError maps service and scoring errors onto HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var incomplete *scoring.IncompleteSubmissionError
	if errors.As(err, &incomplete) {
		h.RespondWithError(c, http.StatusBadRequest, CodeIncomplete, "Incomplete submission", err, gin.H{
			"test":    incomplete.Test,
			"missing": incomplete.Missing,
		})
		return
	}

	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Validation failed", err, validationErrors)
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Validation failed", err, services.ValidationErrors{*validationError})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, CodeBusinessRule, businessRuleError.Message, err, gin.H{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	switch {
	case errors.Is(err, scoring.ErrUnknownTestType), errors.Is(err, scoring.ErrInvalidQuestion):
		h.RespondWithError(c, http.StatusInternalServerError, CodeConfig, "Assessment is misconfigured", err, err.Error())
	case errors.Is(err, services.ErrQuestionNotFound):
		h.RespondWithError(c, http.StatusNotFound, CodeNotFound, "Question not found", err)
	case errors.Is(err, services.ErrUserNotFound):
		h.RespondWithError(c, http.StatusNotFound, CodeNotFound, "User not found", err)
	case errors.Is(err, scoring.ErrNoQuestions):
		h.RespondWithError(c, http.StatusNotFound, CodeNotFound, "No questions found for this test", err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, CodeNotFound, "Resource not found", err)
	case errors.Is(err, services.ErrRollNumberTaken):
		h.RespondWithError(c, http.StatusConflict, CodeConflict, "Roll number already registered", err)
	case errors.Is(err, services.ErrCannotDeleteSelf):
		h.RespondWithError(c, http.StatusConflict, CodeConflict, "You cannot delete your own account", err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, CodeConflict, "Resource conflict", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid credentials", err)
	case errors.Is(err, services.ErrInvalidOldPassword):
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Old password is incorrect", err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request", err, err.Error())
	case errors.Is(err, services.ErrForbidden):
		h.RespondWithError(c, http.StatusForbidden, CodeForbidden, "Access denied", err)
	case services.IsUnauthorized(err):
		h.RespondWithError(c, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, CodeInternal, "Internal server error", err)
	}
}

// bindError responds to a payload that could not be decoded
func (h *BaseHandler) bindError(c *gin.Context, err error) {
	h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid request payload", err, err.Error())
}

// currentUserID returns the authenticated user id set by AuthMiddleware
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	return userID, userID != ""
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "career-assessment-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
