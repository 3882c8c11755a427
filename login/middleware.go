package login

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"studymate-backend/apierr"
)

const currentUserKey = "current_user"

// RequireAuth resolves the bearer token to a stored user before the handler runs.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			apierr.Respond(c, apierr.Unauthorized("Not authenticated"))
			return
		}
		claims, err := h.issuer.Parse(token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				apierr.Respond(c, apierr.Unauthorized("Token has expired"))
				return
			}
			h.log.Debug("rejected token", "error", err)
			apierr.Respond(c, apierr.Unauthorized("Could not validate credentials"))
			return
		}
		user, err := h.users.ByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				apierr.Respond(c, apierr.Unauthorized("User not found"))
				return
			}
			h.log.Error("load user for token", "user_id", claims.UserID, "error", err)
			apierr.Respond(c, err)
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by RequireAuth.
func CurrentUser(c *gin.Context) (User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	return u, ok
}

// WithUser attaches a fixed user the way RequireAuth does. It lets route groups that take an
// auth handler, such as topics.Handler.RegisterRoutes, be mounted behind another
// authenticator that has already resolved the caller.
func WithUser(u User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(currentUserKey, u)
		c.Next()
	}
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
