package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/quizwhiz/quiz-service/internal/models"
)

// Validator wraps struct-tag validation plus the manifest-entry checks
// the catalog needs.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{structValidator: structValidator}
}

// Validate validates struct tags
func (v *Validator) Validate(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateManifestEntry checks one catalog manifest entry: required
// shape, recognized role, spreadsheet extension, non-negative quota.
func (v *Validator) ValidateManifestEntry(entry models.QuizFileMetadata) error {
	if err := v.structValidator.Struct(entry); err != nil {
		return err
	}
	if !entry.HasSpreadsheetExt() {
		return fmt.Errorf("unsupported file extension: %s", entry.Path)
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("role_tag", validateRoleTag)
	validate.RegisterValidation("quiz_mode", validateQuizMode)

	// Report json field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateRoleTag(fl validator.FieldLevel) bool {
	return models.RoleTag(fl.Field().String()).IsValid()
}

func validateQuizMode(fl validator.FieldLevel) bool {
	return models.QuizMode(fl.Field().String()).IsValid()
}
