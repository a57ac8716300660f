package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/quizwhiz/quiz-service/internal/services"
	"github.com/quizwhiz/quiz-service/internal/utils"
	"github.com/quizwhiz/quiz-service/internal/validator"
)

type HandlerManager struct {
	quizFileHandler *QuizFileHandler
	sessionHandler  *SessionHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizFileHandler: NewQuizFileHandler(serviceManager.Catalog(), serviceManager.Quiz(), logger),
		sessionHandler:  NewSessionHandler(serviceManager.Quiz(), serviceManager.Exam(), serviceManager.Sessions(), validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "quiz-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Quiz file catalog routes
		quizFiles := v1.Group("/quiz-files")
		{
			quizFiles.GET("", hm.quizFileHandler.ListQuizFiles)
			quizFiles.GET("/questions", hm.quizFileHandler.GetQuizFileQuestions)
		}

		// Session routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/answer", hm.sessionHandler.SelectAnswer)
			sessions.POST("/:id/next", hm.sessionHandler.NextQuestion)
			sessions.POST("/:id/previous", hm.sessionHandler.PreviousQuestion)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitSession)
			sessions.POST("/:id/retake", hm.sessionHandler.RetakeSession)
			sessions.GET("/:id/results", hm.sessionHandler.GetResults)
		}
	}
}
