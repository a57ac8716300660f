package models

import "time"

type SessionState string

const (
	SessionSetup   SessionState = "setup"
	SessionActive  SessionState = "active"
	SessionResults SessionState = "results"
)

// Unanswered marks a question slot with no recorded answer.
const Unanswered = -1

// SessionSnapshot is a read-only view of one quiz session, safe to
// hand to the HTTP layer while the session keeps ticking.
type SessionSnapshot struct {
	ID            string       `json:"id"`
	State         SessionState `json:"state"`
	Mode          QuizMode     `json:"mode"`
	Questions     []Question   `json:"questions"`
	Answers       []int        `json:"answers"` // Unanswered where no answer recorded
	CurrentIndex  int          `json:"current_index"`
	TimeRemaining int          `json:"time_remaining,omitempty"` // seconds, exam mode only
	StartedAt     time.Time    `json:"started_at"`
}

// AnsweredCount returns how many questions have a recorded answer.
func (s SessionSnapshot) AnsweredCount() int {
	n := 0
	for _, a := range s.Answers {
		if a != Unanswered {
			n++
		}
	}
	return n
}

// ScoreSummary is derived from a session's questions and answers.
// It has no lifecycle of its own and is recomputed on demand.
type ScoreSummary struct {
	CorrectCount           int    `json:"correct_count"`
	WrongCount             int    `json:"wrong_count"`
	Percentage             int    `json:"percentage"`
	PerQuestionCorrectness []bool `json:"per_question_correctness"`
}
