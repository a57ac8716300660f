package services

import (
	"math/rand"

	"github.com/quizwhiz/quiz-service/internal/models"
)

// sampleWithoutReplacement draws up to n questions from the pool with
// equal selection probability, leaving the pool untouched. When n
// covers the whole pool the result is a plain shuffle of it.
func sampleWithoutReplacement(pool []models.Question, n int) []models.Question {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}

	shuffled := make([]models.Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n:n]
}

// shuffleQuestions randomizes order in place.
func shuffleQuestions(questions []models.Question) {
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}
