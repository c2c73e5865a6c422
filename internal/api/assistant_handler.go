package api

import (
	"errors"
	"net/http"

	"DrishtiGPT-Learning-Backend/internal/client"
	"DrishtiGPT-Learning-Backend/internal/quiz"
	"DrishtiGPT-Learning-Backend/internal/repository"
	"DrishtiGPT-Learning-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

type VideoRequest struct {
	VideoID string `json:"video_id" binding:"required"`
	Query   string `json:"query"`
}

type SelectAnswerRequest struct {
	// empty string clears the selection
	Option *string `json:"option" binding:"required"`
}

type AssistantHandler struct {
	assistant *service.AssistantService
	sessions  *repository.SessionRepository
	log       *logrus.Entry
}

func NewAssistantHandler(assistant *service.AssistantService, sessions *repository.SessionRepository, logger *logrus.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		sessions:  sessions,
		log:       logger.WithField("component", "api"),
	}
}

func (h *AssistantHandler) handleError(c *gin.Context, err error) {
	var apiErr *client.APIError
	var transportErr *client.TransportError
	switch {
	case errors.As(err, &apiErr), errors.As(err, &transportErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, quiz.ErrEmpty):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": quiz.ErrEmpty.Error()})
	case errors.Is(err, quiz.ErrInvalidTransition), errors.Is(err, quiz.ErrFetchInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrVideoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, quiz.ErrIndexOutOfRange), errors.Is(err, quiz.ErrUnknownOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.WithError(err).Errorf("[API] %s %s failed", c.Request.Method, c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
	}
}

func (h *AssistantHandler) ListVideosHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"videos": h.assistant.Videos()})
}

func (h *AssistantHandler) SummaryHandler(c *gin.Context) {
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	summary, err := h.assistant.Summary(c.Request.Context(), currentSession(c), req.VideoID, req.Query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video_id": req.VideoID, "summary": summary})
}

func (h *AssistantHandler) StartQuizHandler(c *gin.Context) {
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	load, err := h.assistant.StartQuiz(c.Request.Context(), currentSession(c), req.VideoID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, load)
}

func (h *AssistantHandler) GetQuizHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.assistant.QuizView(currentSession(c)))
}

func (h *AssistantHandler) SelectAnswerHandler(c *gin.Context) {
	index, err := cast.ToIntE(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question index must be a number"})
		return
	}
	var req SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	view, err := h.assistant.SelectAnswer(currentSession(c), index, *req.Option)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AssistantHandler) SubmitQuizHandler(c *gin.Context) {
	score, err := h.assistant.SubmitQuiz(currentSession(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"score":           score,
		"percentage_text": score.PercentageText(),
	})
}

func (h *AssistantHandler) ResetQuizHandler(c *gin.Context) {
	view, err := h.assistant.ResetQuiz(currentSession(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AssistantHandler) AskDoubtHandler(c *gin.Context) {
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	res, err := h.assistant.AskDoubt(c.Request.Context(), currentSession(c), req.VideoID, req.Query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AssistantHandler) EndSessionHandler(c *gin.Context) {
	sc := currentSession(c)
	h.sessions.Delete(sc.ID)
	clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}
