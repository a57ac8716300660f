package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/quizwhiz/quiz-service/internal/utils"
)

// ExamService composes a proportioned, multi-source exam set. Each
// file contributes at most its manifest quota, drawn by uniform
// sampling, and the merged set is reshuffled so questions from
// different sources interleave.
type ExamService interface {
	ComposeExam(ctx context.Context, role models.RoleTag) ([]models.Question, error)
}

type examService struct {
	catalog CatalogService
	quiz    QuizService
	logger  utils.Logger
}

func NewExamService(catalog CatalogService, quiz QuizService, logger utils.Logger) ExamService {
	return &examService{
		catalog: catalog,
		quiz:    quiz,
		logger:  logger,
	}
}

func (s *examService) ComposeExam(ctx context.Context, role models.RoleTag) ([]models.Question, error) {
	files := s.catalog.ListFiles(ctx, role)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFilesForRole, role)
	}

	// Each load owns its slot; nothing is shared until the join.
	type loadResult struct {
		questions []models.Question
		err       error
	}
	results := make([]loadResult, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			questions, _, err := s.quiz.LoadQuestions(ctx, path)
			results[i] = loadResult{questions: questions, err: err}
		}(i, file.Path)
	}
	wg.Wait()

	exam := make([]models.Question, 0)
	for i, file := range files {
		if results[i].err != nil {
			// One bad file must not sink the whole exam.
			s.logger.Warn("Skipping quiz file during exam composition",
				"path", file.Path, "error", results[i].err)
			continue
		}

		sample := sampleWithoutReplacement(results[i].questions, file.ExamQuestions)
		s.logger.Debug("Drew exam questions",
			"path", file.Path,
			"quota", file.ExamQuestions,
			"available", len(results[i].questions),
			"drawn", len(sample))
		exam = append(exam, sample...)
	}

	if len(exam) == 0 {
		return nil, fmt.Errorf("%w: role %s", ErrNoValidQuestions, role)
	}

	// Final shuffle so answer order gives away no source-file
	// boundaries.
	shuffleQuestions(exam)

	s.logger.Info("Composed exam",
		"role", role,
		"files", len(files),
		"questions", len(exam))

	return exam, nil
}
