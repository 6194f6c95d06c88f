package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	QuestionNumber int    `json:"question_number" gorm:"not null;index"`
	Text           string `json:"text" gorm:"type:text;not null"`
	Test           string `json:"test" gorm:"not null;default:RIASEC;size:50;index"`

	// Category is a RIASEC code; empty for other tests.
	Category *string `json:"category,omitempty" gorm:"size:1"`

	Options       datatypes.JSONSlice[string] `json:"options,omitempty" gorm:"type:jsonb"`
	CorrectAnswer *string                     `json:"correct_answer,omitempty" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Test == "" {
		q.Test = "RIASEC"
	}
	return nil
}

// PublicQuestion is a question as shown to respondents, without the answer key.
type PublicQuestion struct {
	ID             string   `json:"id"`
	QuestionNumber int      `json:"question_number"`
	Text           string   `json:"text"`
	Test           string   `json:"test"`
	Category       *string  `json:"category,omitempty"`
	Options        []string `json:"options,omitempty"`
}

func (q *Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:             q.ID,
		QuestionNumber: q.QuestionNumber,
		Text:           q.Text,
		Test:           q.Test,
		Category:       q.Category,
		Options:        []string(q.Options),
	}
}

// TestSummary is a per-test aggregate over the question bank.
type TestSummary struct {
	Test  string `json:"test"`
	Count int64  `json:"count"`
}
