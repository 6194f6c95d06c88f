package services

import (
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
)

// ===== AUTH =====

type RegisterRequest struct {
	RollNumber string          `json:"roll_number" validate:"required,max=50"`
	Name       string          `json:"name" validate:"required,max=100"`
	Password   string          `json:"password" validate:"required,min=6,max=72"`
	Role       models.UserRole `json:"role" validate:"omitempty,user_role"`
	Year       *int            `json:"year" validate:"omitempty,min=1,max=10"`
}

type LoginRequest struct {
	RollNumber string `json:"roll_number" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type UserSummary struct {
	ID               string          `json:"id"`
	RollNumber       string          `json:"roll_number"`
	Name             string          `json:"name"`
	Role             models.UserRole `json:"role"`
	HasCompletedTest bool            `json:"has_completed_test"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// ===== QUESTIONS =====

type QuestionRequest struct {
	QuestionNumber int      `json:"question_number" validate:"min=0"`
	Text           string   `json:"text" validate:"required,max=1000"`
	Test           string   `json:"test" validate:"omitempty,test_id,max=50"`
	Category       *string  `json:"category" validate:"omitempty,riasec_category"`
	Options        []string `json:"options" validate:"omitempty,max=10,dive,required"`
	CorrectAnswer  *string  `json:"correct_answer" validate:"omitempty,max=500"`
}

// ===== CATALOG =====

type TestInfo struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Key           string       `json:"key"`
	Description   string       `json:"description"`
	Mode          scoring.Mode `json:"mode,omitempty"`
	QuestionCount int64        `json:"question_count"`
}

// ===== SUBMISSION =====

type SubmitRequest struct {
	Test    string         `json:"test" validate:"omitempty,test_id,max=50"`
	Answers map[string]any `json:"answers" validate:"required"`
}

// SubmitResponse flattens the interest fields next to the stored record.
type SubmitResponse struct {
	Scores             *models.CategoryScores `json:"scores,omitempty"`
	TopThree           []string               `json:"top_three,omitempty"`
	PrimaryCareer      string                 `json:"primary_career,omitempty"`
	RecommendedCareers []string               `json:"recommended_careers,omitempty"`
	FullResult         *models.TestResult     `json:"full_result"`
}

// ===== STUDENT ADMIN =====

type ResetRequest struct {
	Test *string `json:"test" validate:"omitempty,test_id"`
}

type ResetResponse struct {
	Message string             `json:"message"`
	User    *models.Respondent `json:"user"`
}

// ===== EXPORT =====

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)
