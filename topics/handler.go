package topics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"studymate-backend/apierr"
	"studymate-backend/logger"
	"studymate-backend/login"
)

type generateRequest struct {
	Topic      string `json:"topic" validate:"required"`
	Difficulty string `json:"difficulty"`
}

type submitQuizRequest struct {
	TopicID string   `json:"topic_id" validate:"required"`
	Answers []string `json:"answers" validate:"required"`
}

type Handler struct {
	svc             *Service
	log             *logger.Logger
	generateTimeout time.Duration
}

func NewHandler(svc *Service, generateTimeout time.Duration, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if generateTimeout <= 0 {
		generateTimeout = 90 * time.Second
	}
	return &Handler{svc: svc, log: log.With("component", "topics_http"), generateTimeout: generateTimeout}
}

// RegisterRoutes mounts the topic routes behind auth.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/topics", auth)
	g.POST("/generate", h.generate)
	g.POST("/submit-quiz", h.submitQuiz)
	g.GET("/history", h.history)
	g.GET("/progress", h.progress)
	g.GET("/:topic_id", h.get)
}

func (h *Handler) generate(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	var req generateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.generateTimeout)
	defer cancel()

	t, err := h.svc.Generate(ctx, user.ID, req.Topic, req.Difficulty)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			h.log.Warn("generation timed out", "user_id", user.ID, "timeout", h.generateTimeout)
			apierr.Respond(c, apierr.Timeout("Content generation timed out", err))
			return
		}
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) submitQuiz(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	var req submitQuizRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.SubmitQuiz(c.Request.Context(), user.ID, req.TopicID, req.Answers)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) history(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	list, err := h.svc.History(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("history", "user_id", user.ID, "error", err)
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) progress(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	p, err := h.svc.Progress(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("progress", "user_id", user.ID, "error", err)
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) get(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), user.ID, c.Param("topic_id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) user(c *gin.Context) (login.User, bool) {
	u, ok := login.CurrentUser(c)
	if !ok {
		apierr.Respond(c, apierr.Unauthorized("Not authenticated"))
	}
	return u, ok
}

var validate = validator.New()

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apierr.Respond(c, apierr.Validation("Invalid request body"))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		apierr.Respond(c, apierr.Validation("Please add all fields"))
		return false
	}
	return true
}
