package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quizwhiz/quiz-service/internal/cache"
	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/quizwhiz/quiz-service/internal/repositories"
	"github.com/quizwhiz/quiz-service/internal/utils"
)

// QuizService loads one quiz file's question pool and draws quizzes
// from it for learning/testing starts.
type QuizService interface {
	// LoadQuestions fetches, parses and caches one quiz file. Fails
	// with ErrSourceUnreadable when the bytes cannot be obtained and
	// with ErrNoUsableData when a non-empty sheet yields zero valid
	// questions.
	LoadQuestions(ctx context.Context, path string) ([]models.Question, *models.ParseStats, error)

	// BuildQuiz draws a count-sized uniform random subset from the
	// file's pool. Counts above the pool size are capped.
	BuildQuiz(ctx context.Context, path string, count int) ([]models.Question, error)
}

// cachedPool is the cache representation of one parsed quiz file.
type cachedPool struct {
	Questions []models.Question `json:"questions"`
	Stats     models.ParseStats `json:"stats"`
}

type quizService struct {
	store    repositories.QuizFileStore
	parser   QuestionParser
	cache    cache.CacheService
	logger   utils.Logger
	cacheTTL time.Duration
}

func NewQuizService(store repositories.QuizFileStore, parser QuestionParser, cacheService cache.CacheService, logger utils.Logger, cacheTTL time.Duration) QuizService {
	return &quizService{
		store:    store,
		parser:   parser,
		cache:    cacheService,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

func (s *quizService) LoadQuestions(ctx context.Context, path string) ([]models.Question, *models.ParseStats, error) {
	cacheKey := questionCacheKey(path)

	var cached cachedPool
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		s.logger.Debug("Question cache hit", "path", path, "questions", len(cached.Questions))
		stats := cached.Stats
		return cached.Questions, &stats, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Question cache lookup failed", "path", path, "error", err)
	}

	f, err := s.store.OpenQuizFile(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	questions, stats, err := s.parser.ParseWorkbook(f, path)
	if err != nil {
		return nil, nil, err
	}

	if len(questions) == 0 {
		// The sheet held data but nothing survived validation. The
		// caller decides whether that is a hard error or an
		// empty-result state.
		return nil, stats, fmt.Errorf("%w: %s", ErrNoUsableData, path)
	}

	if err := s.cache.Set(ctx, cacheKey, cachedPool{Questions: questions, Stats: *stats}, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache parsed questions", "path", path, "error", err)
	}

	s.logger.Info("Loaded quiz file",
		"path", path,
		"questions", len(questions),
		"total_rows", stats.TotalRows)

	return questions, stats, nil
}

func (s *quizService) BuildQuiz(ctx context.Context, path string, count int) ([]models.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be positive", ErrInvalidInput)
	}

	pool, _, err := s.LoadQuestions(ctx, path)
	if err != nil {
		return nil, err
	}

	return sampleWithoutReplacement(pool, count), nil
}

func questionCacheKey(path string) string {
	return "quiz:questions:" + path
}
