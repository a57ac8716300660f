package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/quizwhiz/quiz-service/internal/services"
	"github.com/quizwhiz/quiz-service/internal/utils"
	"github.com/quizwhiz/quiz-service/internal/validator"
)

// StartQuizRequest starts one quiz session. Learning/testing starts
// draw question_count questions from one file; exam starts compose
// the set from the role's per-file quotas and ignore question_count.
type StartQuizRequest struct {
	Mode          string `json:"mode" validate:"required,quiz_mode"`
	Path          string `json:"path" validate:"required_unless=Mode exam"`
	Role          string `json:"role" validate:"omitempty,role_tag"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=1"`
}

// SelectAnswerRequest records an answer for the current question.
type SelectAnswerRequest struct {
	OptionIndex *int `json:"option_index" validate:"required,min=0,max=3"`
}

// SessionHandler drives quiz sessions over HTTP.
type SessionHandler struct {
	BaseHandler
	quizService services.QuizService
	examService services.ExamService
	sessions    services.SessionManager
	validator   *validator.Validator
}

func NewSessionHandler(
	quizService services.QuizService,
	examService services.ExamService,
	sessions services.SessionManager,
	validator *validator.Validator,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
		examService: examService,
		sessions:    sessions,
		validator:   validator,
	}
}

// StartSession creates a session and starts it with a freshly drawn
// question set.
func (h *SessionHandler) StartSession(c *gin.Context) {
	h.LogRequest(c, "Starting quiz session")

	var req StartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err)
		return
	}

	mode := models.QuizMode(req.Mode)

	var (
		questions []models.Question
		err       error
	)
	if mode == models.ModeExam {
		if req.Role == "" {
			h.RespondWithError(c, http.StatusBadRequest, "Exam mode requires a role", nil)
			return
		}
		questions, err = h.examService.ComposeExam(c.Request.Context(), models.RoleTag(req.Role))
	} else {
		if req.QuestionCount <= 0 {
			h.RespondWithError(c, http.StatusBadRequest, "question_count must be positive", nil)
			return
		}
		questions, err = h.quizService.BuildQuiz(c.Request.Context(), req.Path, req.QuestionCount)
	}
	if err != nil {
		h.RespondWithServiceError(c, err, "Could not start quiz")
		return
	}

	session := h.sessions.Create()
	if err := session.Start(questions, mode); err != nil {
		h.sessions.Remove(session.ID())
		h.RespondWithServiceError(c, err, "Could not start quiz")
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Quiz session started", session.Snapshot())
}

// GetSession returns the current session snapshot.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Session", session.Snapshot())
}

// SelectAnswer records (or overwrites) the current question's answer.
func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}

	var req SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err)
		return
	}

	if err := session.SelectAnswer(*req.OptionIndex); err != nil {
		h.RespondWithServiceError(c, err, "Could not record answer")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Answer recorded", session.Snapshot())
}

// NextQuestion advances the session cursor.
func (h *SessionHandler) NextQuestion(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	if err := session.Next(); err != nil {
		h.RespondWithServiceError(c, err, "Could not advance")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Advanced", session.Snapshot())
}

// PreviousQuestion moves the session cursor back.
func (h *SessionHandler) PreviousQuestion(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	if err := session.Previous(); err != nil {
		h.RespondWithServiceError(c, err, "Could not go back")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Moved back", session.Snapshot())
}

// SubmitSession freezes the answers and moves to results.
func (h *SessionHandler) SubmitSession(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	if err := session.Submit(); err != nil {
		h.RespondWithServiceError(c, err, "Could not submit")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz submitted", session.Snapshot())
}

// RetakeSession discards the attempt and returns to setup.
func (h *SessionHandler) RetakeSession(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	if err := session.Retake(); err != nil {
		h.RespondWithServiceError(c, err, "Could not retake")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Session reset", session.Snapshot())
}

// GetResults returns the score summary of a submitted session.
func (h *SessionHandler) GetResults(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}
	score, err := session.Results()
	if err != nil {
		h.RespondWithServiceError(c, err, "Results not available")
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Results", gin.H{
		"session": session.Snapshot(),
		"score":   score,
	})
}

func (h *SessionHandler) lookupSession(c *gin.Context) (*services.Session, bool) {
	id := c.Param("id")
	session, err := h.sessions.Get(id)
	if err != nil {
		h.RespondWithServiceError(c, err, "Session not found")
		return nil, false
	}
	return session, true
}
