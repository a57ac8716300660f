package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/quizwhiz/quiz-service/internal/services"
	"github.com/quizwhiz/quiz-service/internal/utils"
)

// QuizFileHandler exposes the catalog and single-file loading.
type QuizFileHandler struct {
	BaseHandler
	catalogService services.CatalogService
	quizService    services.QuizService
}

func NewQuizFileHandler(
	catalogService services.CatalogService,
	quizService services.QuizService,
	logger utils.Logger,
) *QuizFileHandler {
	return &QuizFileHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
		quizService:    quizService,
	}
}

// ListQuizFiles returns the catalog, optionally filtered by role. An
// unavailable manifest is an empty listing, not an error.
func (h *QuizFileHandler) ListQuizFiles(c *gin.Context) {
	h.LogRequest(c, "Listing quiz files")

	role := models.RoleTag(c.Query("role"))
	if role != "" && !role.IsValid() {
		h.RespondWithError(c, http.StatusBadRequest, "Unknown role", nil)
		return
	}

	files := h.catalogService.ListFiles(c.Request.Context(), role)
	if files == nil {
		files = []models.QuizFileMetadata{}
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz files listed", files)
}

// GetQuizFileQuestions loads and parses one quiz file.
func (h *QuizFileHandler) GetQuizFileQuestions(c *gin.Context) {
	path := c.Query("path")
	h.LogRequest(c, "Loading quiz file", "file_path", path)

	if path == "" {
		h.RespondWithError(c, http.StatusBadRequest, "Query parameter 'path' is required", nil)
		return
	}

	questions, stats, err := h.quizService.LoadQuestions(c.Request.Context(), path)
	if err != nil {
		h.RespondWithServiceError(c, err, "Could not load quiz file")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Quiz file loaded", gin.H{
		"questions": questions,
		"stats":     stats,
	})
}
