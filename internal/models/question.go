package models

import "strings"

// RoleTag restricts which quiz files are relevant to a user category.
// RoleCommon is a wildcard that matches every role.
type RoleTag string

const (
	RoleAccounting RoleTag = "accounting"
	RoleTeller     RoleTag = "teller"
	RoleCredit     RoleTag = "credit"
	RoleManagement RoleTag = "management"
	RoleCommon     RoleTag = "common"
)

// IsValid reports whether the tag belongs to the known role set.
func (r RoleTag) IsValid() bool {
	switch r {
	case RoleAccounting, RoleTeller, RoleCredit, RoleManagement, RoleCommon:
		return true
	}
	return false
}

// Matches reports whether a file tagged with r is relevant for the
// requested role. Common-knowledge files match every role.
func (r RoleTag) Matches(requested RoleTag) bool {
	return r == requested || r == RoleCommon
}

type QuizMode string

const (
	ModeLearning QuizMode = "learning"
	ModeTesting  QuizMode = "testing"
	ModeExam     QuizMode = "exam"
)

func (m QuizMode) IsValid() bool {
	switch m {
	case ModeLearning, ModeTesting, ModeExam:
		return true
	}
	return false
}

// Question is one validated multiple-choice question. Immutable once
// constructed: options always has exactly 4 entries and the option at
// CorrectAnswerIndex is non-blank.
type Question struct {
	ID                 int       `json:"id"`
	Question           string    `json:"question"`
	Options            [4]string `json:"options"`
	CorrectAnswerIndex int       `json:"correct_answer_index"` // 0-based
}

// QuizFileMetadata is one entry of the externally maintained catalog
// manifest.
type QuizFileMetadata struct {
	Path          string  `json:"path" validate:"required"`
	Role          RoleTag `json:"role" validate:"required,role_tag"`
	ExamQuestions int     `json:"exam_questions" validate:"min=0"`
}

// HasSpreadsheetExt reports whether the entry points at a supported
// spreadsheet file.
func (m QuizFileMetadata) HasSpreadsheetExt() bool {
	lower := strings.ToLower(m.Path)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls")
}

// ParseStats collects per-row diagnostics for one parse call. It is
// observability output only, never part of the functional contract.
type ParseStats struct {
	TotalRows         int `json:"total_rows"`
	EmptyRows         int `json:"empty_rows"`
	MalformedRows     int `json:"malformed_rows"`
	InvalidIDRows     int `json:"invalid_id_rows"`
	EmptyQuestionRows int `json:"empty_question_rows"`
	InvalidAnswerRows int `json:"invalid_answer_rows"`
	DuplicateIDs      int `json:"duplicate_ids"`
	ValidQuestions    int `json:"valid_questions"`
	HiddenSheets      int `json:"hidden_sheets"`
}
