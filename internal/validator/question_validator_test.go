package validator

import (
	"testing"

	"github.com/SAP-F-2025/career-assessment-service/internal/errors"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestQuestionValidator_ValidateQuestion(t *testing.T) {
	v := New(scoring.DefaultConfig()).Question()

	tests := []struct {
		name     string
		question models.Question
		fields   []string
	}{
		{
			name:     "riasec with category",
			question: models.Question{Text: "I like to build things", Test: scoring.TestRIASEC, Category: strPtr("R")},
		},
		{
			name:     "riasec without category",
			question: models.Question{Text: "I like to build things", Test: scoring.TestRIASEC},
			fields:   []string{"category"},
		},
		{
			name:     "invalid category code",
			question: models.Question{Text: "I like puzzles", Test: scoring.TestRIASEC, Category: strPtr("X")},
			fields:   []string{"category"},
		},
		{
			name:     "wellbeing needs no category",
			question: models.Question{Text: "I've been feeling optimistic", Test: scoring.TestWellbeing},
		},
		{
			name: "aptitude valid",
			question: models.Question{
				Text: "2+2?", Test: scoring.TestAptitude,
				Options: []string{"3", "4"}, CorrectAnswer: strPtr("4"),
			},
		},
		{
			name: "aptitude correct answer not an option",
			question: models.Question{
				Text: "2+2?", Test: scoring.TestAptitude,
				Options: []string{"3", "5"}, CorrectAnswer: strPtr("4"),
			},
			fields: []string{"correct_answer"},
		},
		{
			name:     "aptitude single option without answer",
			question: models.Question{Text: "2+2?", Test: scoring.TestAptitude, Options: []string{"4"}},
			fields:   []string{"options", "correct_answer"},
		},
		{
			name:     "empty text and test",
			question: models.Question{},
			fields:   []string{"text", "test"},
		},
		{
			name:     "unregistered test only gets generic checks",
			question: models.Question{Text: "Free text", Test: "Custom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateQuestion(&tt.question)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verrs errors.ValidationErrors
			require.ErrorAs(t, err, &verrs)

			var fields []string
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestQuestionValidator_ValidateBatch(t *testing.T) {
	v := New(scoring.DefaultConfig()).Question()

	err := v.ValidateBatch(nil)
	assert.Error(t, err)

	err = v.ValidateBatch([]*models.Question{
		{Text: "ok", Test: scoring.TestRIASEC, Category: strPtr("I")},
		{Text: "missing category", Test: scoring.TestRIASEC},
	})
	require.Error(t, err)
	verrs := err.(errors.ValidationErrors)
	require.Len(t, verrs, 1)
	assert.Equal(t, "questions[1].category", verrs[0].Field)
}

func TestValidator_CustomTags(t *testing.T) {
	v := New(scoring.DefaultConfig())

	type payload struct {
		Category string `json:"category" validate:"riasec_category"`
		Role     string `json:"role" validate:"user_role"`
		Test     string `json:"test" validate:"test_id"`
		Format   string `json:"format" validate:"export_format"`
	}

	assert.NoError(t, v.ValidateStruct(payload{Category: "s", Role: "admin", Test: "RIASEC", Format: "csv"}))

	err := v.ValidateStruct(payload{Category: "Q", Role: "moderator", Test: " RIASEC", Format: "pdf"})
	verrs := ToValidationErrors(err)
	require.Len(t, verrs, 4)
	assert.Equal(t, "category", verrs[0].Field)
	assert.Equal(t, "riasec_category", verrs[0].Rule)
	assert.Equal(t, "role", verrs[1].Field)
	assert.Equal(t, "test", verrs[2].Field)
	assert.Equal(t, "format", verrs[3].Field)
}
