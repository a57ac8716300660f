package events

import (
	"time"

	"github.com/quizwhiz/quiz-service/internal/models"
)

// EventType represents different types of quiz lifecycle events
type EventType string

const (
	// Session events
	EventQuizStarted   EventType = "quiz.started"
	EventQuizCompleted EventType = "quiz.completed"
)

// QuizEvent is the base event structure for all quiz events
type QuizEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// QuizStartedEvent is published when a session leaves setup.
type QuizStartedEvent struct {
	SessionID     string          `json:"session_id"`
	Mode          models.QuizMode `json:"mode"`
	QuestionCount int             `json:"question_count"`
}

// QuizCompletedEvent delivers the final answers aligned to the active
// question sequence, plus the computed summary.
type QuizCompletedEvent struct {
	SessionID     string               `json:"session_id"`
	Mode          models.QuizMode      `json:"mode"`
	QuestionCount int                  `json:"question_count"`
	Answers       []int                `json:"answers"`
	Score         *models.ScoreSummary `json:"score,omitempty"`
	AutoSubmitted bool                 `json:"auto_submitted"`
}
