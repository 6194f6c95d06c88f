package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/career-assessment-service/internal/errors"
	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
)

const (
	maxOptions    = 10
	maxTextLength = 1000
)

// QuestionValidator checks a question against the scoring mode of its test.
// Tests without a registered mode only get the generic checks.
type QuestionValidator struct {
	tests map[string]scoring.TestDefinition
}

func NewQuestionValidator(cfg scoring.Config) *QuestionValidator {
	return &QuestionValidator{tests: cfg.Tests}
}

// Mode returns the registered scoring mode of a test, if any.
func (v *QuestionValidator) Mode(test string) (scoring.Mode, bool) {
	def, ok := v.tests[test]
	return def.Mode, ok
}

// ValidateQuestion returns nil or a non-empty ValidationErrors.
func (v *QuestionValidator) ValidateQuestion(q *models.Question) error {
	var errs errors.ValidationErrors

	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, *errors.NewValidationErrorWithRule("text", "is required", "required", q.Text))
	} else if len(q.Text) > maxTextLength {
		errs = append(errs, *errors.NewValidationErrorWithRule("text", fmt.Sprintf("must be at most %d characters", maxTextLength), "max", nil))
	}
	if q.QuestionNumber < 0 {
		errs = append(errs, *errors.NewValidationErrorWithRule("question_number", "must not be negative", "min", q.QuestionNumber))
	}
	if strings.TrimSpace(q.Test) == "" {
		errs = append(errs, *errors.NewValidationErrorWithRule("test", "is required", "required", q.Test))
	}

	if q.Category != nil && *q.Category != "" {
		if _, ok := scoring.ParseCategory(*q.Category); !ok {
			errs = append(errs, *errors.NewValidationErrorWithRule("category", "must be one of R, I, A, S, E, C", "riasec_category", *q.Category))
		}
	}

	mode, _ := v.Mode(q.Test)
	switch mode {
	case scoring.ModeInterest:
		if q.Category == nil || *q.Category == "" {
			errs = append(errs, *errors.NewValidationErrorWithRule("category", "is required for interest tests", "required", nil))
		}
	case scoring.ModeMultipleChoice:
		errs = append(errs, v.validateChoices(q)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateBatch validates each question and prefixes errors with its position.
func (v *QuestionValidator) ValidateBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return errors.ValidationErrors{*errors.NewValidationError("questions", "must not be empty", nil)}
	}

	var all errors.ValidationErrors
	for i, q := range questions {
		err := v.ValidateQuestion(q)
		if err == nil {
			continue
		}
		for _, e := range err.(errors.ValidationErrors) {
			e.Field = fmt.Sprintf("questions[%d].%s", i, e.Field)
			all = append(all, e)
		}
	}
	if len(all) > 0 {
		return all
	}
	return nil
}

func (v *QuestionValidator) validateChoices(q *models.Question) errors.ValidationErrors {
	var errs errors.ValidationErrors

	if len(q.Options) < 2 {
		errs = append(errs, *errors.NewValidationErrorWithRule("options", "must have at least 2 options", "min", len(q.Options)))
	}
	if len(q.Options) > maxOptions {
		errs = append(errs, *errors.NewValidationErrorWithRule("options", fmt.Sprintf("cannot have more than %d options", maxOptions), "max", len(q.Options)))
	}

	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, *errors.NewValidationErrorWithRule("options", "option text cannot be empty", "required", opt))
			continue
		}
		if seen[opt] {
			errs = append(errs, *errors.NewValidationErrorWithRule("options", "options must be unique", "unique", opt))
		}
		seen[opt] = true
	}

	if q.CorrectAnswer == nil || *q.CorrectAnswer == "" {
		errs = append(errs, *errors.NewValidationErrorWithRule("correct_answer", "is required for multiple choice tests", "required", nil))
	} else if !seen[*q.CorrectAnswer] {
		errs = append(errs, *errors.NewValidationErrorWithRule("correct_answer", "must be one of the options", "oneof", *q.CorrectAnswer))
	}

	return errs
}
