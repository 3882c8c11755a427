package login

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"studymate-backend/apierr"
	"studymate-backend/logger"
)

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type Handler struct {
	users  UserStore
	issuer *Issuer
	log    *logger.Logger
	now    func() time.Time
}

func NewHandler(users UserStore, issuer *Issuer, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		users:  users,
		issuer: issuer,
		log:    log.With("component", "login"),
		now:    time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.GET("/me", h.RequireAuth(), h.me)
	auth.DELETE("/delete-account", h.RequireAuth(), h.deleteAccount)
}

func (h *Handler) register(c *gin.Context) {
	creds, ok := bindCredentials(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	exists, err := h.users.EmailExists(ctx, creds.Email)
	if err != nil {
		h.log.Error("check email", "error", err)
		apierr.Respond(c, err)
		return
	}
	if exists {
		apierr.Respond(c, apierr.Validation("Email already registered"))
		return
	}

	hashed, err := hashPassword(creds.Password)
	if errors.Is(err, ErrPasswordTooLong) {
		apierr.Respond(c, apierr.Validation("Password must be at most 72 bytes"))
		return
	}
	if err != nil {
		h.log.Error("hash password", "error", err)
		apierr.Respond(c, err)
		return
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        creds.Email,
		PasswordHash: hashed,
		CreatedAt:    h.now().UTC(),
	}
	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			apierr.Respond(c, apierr.Validation("Email already registered"))
			return
		}
		h.log.Error("create user", "error", err)
		apierr.Respond(c, err)
		return
	}
	h.log.Info("user registered", "user_id", user.ID)
	h.respondWithToken(c, user)
}

func (h *Handler) login(c *gin.Context) {
	creds, ok := bindCredentials(c)
	if !ok {
		return
	}
	user, err := h.users.ByEmail(c.Request.Context(), creds.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		h.log.Error("load user by email", "error", err)
		apierr.Respond(c, err)
		return
	}
	if err != nil || !verifyPassword(creds.Password, user.PasswordHash) {
		apierr.Respond(c, apierr.Unauthorized("Invalid email or password"))
		return
	}
	h.respondWithToken(c, user)
}

func (h *Handler) me(c *gin.Context) {
	user, _ := CurrentUser(c)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteAccount(c *gin.Context) {
	user, _ := CurrentUser(c)
	if err := h.users.Delete(c.Request.Context(), user.ID); err != nil {
		h.log.Error("delete account", "user_id", user.ID, "error", err)
		apierr.Respond(c, err)
		return
	}
	h.log.Info("account deleted", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

func (h *Handler) respondWithToken(c *gin.Context, user User) {
	token, err := h.issuer.Issue(user)
	if err != nil {
		h.log.Error("issue token", "user_id", user.ID, "error", err)
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

// bindCredentials normalizes the email before validating so " A@B.com " is accepted.
func bindCredentials(c *gin.Context) (Credentials, bool) {
	var raw struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierr.Respond(c, apierr.Validation("Invalid request body"))
		return Credentials{}, false
	}
	creds := Credentials{
		Email:    strings.ToLower(strings.TrimSpace(raw.Email)),
		Password: raw.Password,
	}
	if err := validate.Struct(creds); err != nil {
		apierr.Respond(c, apierr.Validation(credentialsMessage(err)))
		return Credentials{}, false
	}
	return creds, true
}

var validate = validator.New()

func credentialsMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return "Please add all fields"
			}
		}
		return "Invalid email address"
	}
	return "Invalid request body"
}
