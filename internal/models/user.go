package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// Respondent is a student or administrator account. Results are kept as an
// append-only history in the test_results table.
type Respondent struct {
	ID           string   `json:"id" gorm:"primaryKey;size:36"`
	RollNumber   string   `json:"roll_number" gorm:"uniqueIndex;not null;size:50"`
	Name         string   `json:"name" gorm:"not null;size:100;index"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;default:student;size:20;index"`
	Year         *int     `json:"year,omitempty"`

	// HasCompletedTest is recomputed whenever the history length changes.
	HasCompletedTest bool `json:"has_completed_test" gorm:"default:false"`

	Results []TestResult `json:"test_results" gorm:"foreignKey:RespondentID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Respondent) TableName() string {
	return "respondents"
}

func (r *Respondent) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Role == "" {
		r.Role = RoleStudent
	}
	return nil
}

func (r *Respondent) IsAdmin() bool {
	return r.Role == RoleAdmin
}
