package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quizwhiz/quiz-service/internal/cache"
	"github.com/quizwhiz/quiz-service/internal/events"
	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/quizwhiz/quiz-service/internal/repositories"
	"github.com/quizwhiz/quiz-service/internal/utils"
	"github.com/quizwhiz/quiz-service/internal/validator"
)

// ServiceManager bundles the quiz pipeline for the handler layer.
type ServiceManager interface {
	Catalog() CatalogService
	Quiz() QuizService
	Exam() ExamService
	Sessions() SessionManager
}

type serviceManager struct {
	catalog  CatalogService
	quiz     QuizService
	exam     ExamService
	sessions SessionManager
}

// ManagerConfig carries the tunables the services need.
type ManagerConfig struct {
	CacheTTL     time.Duration
	ExamDuration time.Duration
}

func NewServiceManager(
	store repositories.QuizFileStore,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger utils.Logger,
	v *validator.Validator,
	cfg ManagerConfig,
) ServiceManager {
	parser := NewQuestionParser(logger)
	catalog := NewCatalogService(store, logger, v)
	quiz := NewQuizService(store, parser, cacheService, logger, cfg.CacheTTL)
	exam := NewExamService(catalog, quiz, logger)

	onStarted := func(snap models.SessionSnapshot) {
		err := publisher.PublishQuizEvent(context.Background(), events.EventQuizStarted, events.QuizStartedEvent{
			SessionID:     snap.ID,
			Mode:          snap.Mode,
			QuestionCount: len(snap.Questions),
		})
		if err != nil {
			logger.Warn("Failed to publish quiz started event", "session_id", snap.ID, "error", err)
		}
	}

	onCompleted := func(snap models.SessionSnapshot, score *models.ScoreSummary, auto bool) {
		logger.Info("Quiz session completed",
			"session_id", snap.ID,
			"mode", snap.Mode,
			"answered", snap.AnsweredCount(),
			"correct", score.CorrectCount,
			"percentage", score.Percentage,
			"auto_submitted", auto)

		err := publisher.PublishQuizEvent(context.Background(), events.EventQuizCompleted, events.QuizCompletedEvent{
			SessionID:     snap.ID,
			Mode:          snap.Mode,
			QuestionCount: len(snap.Questions),
			Answers:       snap.Answers,
			Score:         score,
			AutoSubmitted: auto,
		})
		if err != nil {
			logger.Warn("Failed to publish quiz completed event", "session_id", snap.ID, "error", err)
		}
	}

	sessions := NewSessionManager(cfg.ExamDuration, logger, uuid.NewString, onStarted, onCompleted)

	return &serviceManager{
		catalog:  catalog,
		quiz:     quiz,
		exam:     exam,
		sessions: sessions,
	}
}

func (m *serviceManager) Catalog() CatalogService  { return m.catalog }
func (m *serviceManager) Quiz() QuizService        { return m.quiz }
func (m *serviceManager) Exam() ExamService        { return m.exam }
func (m *serviceManager) Sessions() SessionManager { return m.sessions }
