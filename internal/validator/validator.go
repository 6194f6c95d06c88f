package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct tag validation with question business rules.
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a validator whose question rules follow the scoring config.
func New(cfg scoring.Config) *Validator {
	structValidator := validator.New()

	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(cfg),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("riasec_category", validateCategory)
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("test_id", validateTestID)
	validate.RegisterValidation("export_format", validateExportFormat)

	// Report json field names in errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateCategory(fl validator.FieldLevel) bool {
	_, ok := scoring.ParseCategory(fl.Field().String())
	return ok
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.RoleStudent, models.RoleAdmin:
		return true
	}
	return false
}

func validateTestID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value != "" && strings.TrimSpace(value) == value
}

func validateExportFormat(fl validator.FieldLevel) bool {
	switch models.ExportFormat(fl.Field().String()) {
	case models.ExportXLSX, models.ExportCSV:
		return true
	}
	return false
}
