package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CategoryScores mirrors the six RIASEC counters.
type CategoryScores struct {
	R int `json:"R"`
	I int `json:"I"`
	A int `json:"A"`
	S int `json:"S"`
	E int `json:"E"`
	C int `json:"C"`
}

type RankedCategory struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Score    int    `json:"score"`
}

// TestResult is one completed submission. Rows are inserted once and never
// updated; they are removed only by an admin reset or account deletion.
type TestResult struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"`
	RespondentID string `json:"respondent_id" gorm:"not null;size:36;index:idx_results_respondent_test"`
	Test         string `json:"test" gorm:"not null;size:50;index:idx_results_respondent_test"`
	Mode         string `json:"mode" gorm:"not null;size:30"`

	// Interest inventory
	Scores             *datatypes.JSONType[CategoryScores] `json:"scores,omitempty" gorm:"type:jsonb"`
	Ranking            datatypes.JSONSlice[RankedCategory] `json:"ranking,omitempty" gorm:"type:jsonb"`
	TopThree           datatypes.JSONSlice[string]         `json:"top_three,omitempty" gorm:"type:jsonb"`
	PrimaryCareer      string                              `json:"primary_career,omitempty" gorm:"size:50"`
	RecommendedCareers datatypes.JSONSlice[string]         `json:"recommended_careers,omitempty" gorm:"type:jsonb"`

	// Single scale
	Score          *int   `json:"score,omitempty"`
	QuestionCount  int    `json:"question_count,omitempty"`
	Form           string `json:"form,omitempty" gorm:"size:10"`
	Interpretation string `json:"interpretation,omitempty" gorm:"size:100"`
	Feedback       string `json:"feedback,omitempty" gorm:"type:text"`

	// Multiple choice
	Correct *int `json:"correct,omitempty"`
	Total   int  `json:"total,omitempty"`

	CompletedAt time.Time `json:"completed_at" gorm:"not null;index"`
}

func (TestResult) TableName() string {
	return "test_results"
}

func (r *TestResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
