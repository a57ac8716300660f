package validator

import (
	"testing"

	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func validEntry() models.QuizFileMetadata {
	return models.QuizFileMetadata{
		Path:          "teller-basics.xlsx",
		Role:          models.RoleTeller,
		ExamQuestions: 10,
	}
}

func TestValidateManifestEntry(t *testing.T) {
	v := New()

	t.Run("valid entry", func(t *testing.T) {
		assert.NoError(t, v.ValidateManifestEntry(validEntry()))
	})

	t.Run("xls extension is accepted", func(t *testing.T) {
		entry := validEntry()
		entry.Path = "Legacy.XLS"
		assert.NoError(t, v.ValidateManifestEntry(entry))
	})

	t.Run("missing path", func(t *testing.T) {
		entry := validEntry()
		entry.Path = ""
		assert.Error(t, v.ValidateManifestEntry(entry))
	})

	t.Run("unknown role", func(t *testing.T) {
		entry := validEntry()
		entry.Role = "wizard"
		assert.Error(t, v.ValidateManifestEntry(entry))
	})

	t.Run("negative quota", func(t *testing.T) {
		entry := validEntry()
		entry.ExamQuestions = -1
		assert.Error(t, v.ValidateManifestEntry(entry))
	})

	t.Run("zero quota is allowed", func(t *testing.T) {
		entry := validEntry()
		entry.ExamQuestions = 0
		assert.NoError(t, v.ValidateManifestEntry(entry))
	})

	t.Run("non-spreadsheet extension", func(t *testing.T) {
		entry := validEntry()
		entry.Path = "questions.csv"
		assert.Error(t, v.ValidateManifestEntry(entry))
	})
}

func TestValidate_CustomTags(t *testing.T) {
	v := New()

	type request struct {
		Mode string `json:"mode" validate:"required,quiz_mode"`
		Role string `json:"role" validate:"omitempty,role_tag"`
	}

	assert.NoError(t, v.Validate(request{Mode: "learning"}))
	assert.NoError(t, v.Validate(request{Mode: "exam", Role: "credit"}))
	assert.Error(t, v.Validate(request{Mode: "speedrun"}))
	assert.Error(t, v.Validate(request{Mode: "exam", Role: "wizard"}))
	assert.Error(t, v.Validate(request{}))
}
