package services

import (
	"fmt"
	"math"

	"github.com/quizwhiz/quiz-service/internal/models"
)

// Score compares recorded answers against the question sequence. Pure
// function: a question is correct iff its slot holds an answer equal
// to the correct index. Unanswered slots count as wrong.
//
// Empty questions or a length mismatch is a caller bug and fails with
// ErrInvalidInput.
func Score(questions []models.Question, answers []int) (*models.ScoreSummary, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions to score", ErrInvalidInput)
	}
	if len(answers) != len(questions) {
		return nil, fmt.Errorf("%w: %d answers for %d questions", ErrInvalidInput, len(answers), len(questions))
	}

	summary := &models.ScoreSummary{
		PerQuestionCorrectness: make([]bool, len(questions)),
	}

	for i, q := range questions {
		correct := answers[i] != models.Unanswered && answers[i] == q.CorrectAnswerIndex
		summary.PerQuestionCorrectness[i] = correct
		if correct {
			summary.CorrectCount++
		} else {
			summary.WrongCount++
		}
	}

	summary.Percentage = int(math.Round(100 * float64(summary.CorrectCount) / float64(len(questions))))
	return summary, nil
}
