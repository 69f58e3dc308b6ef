package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	"github.com/BrianKimathi/event-booking-api/pkg/response"
)

// RequireRole loads the authenticated user and rejects the request
// unless it carries the named role. Must run after Auth.
func RequireRole(users repository.UserRepository, name entity.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64(CtxUserIDKey)
		if uid == 0 {
			response.AbortError(c, http.StatusUnauthorized, "missing access token")
			return
		}
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "account not found")
			return
		}
		if !u.HasRole(name) {
			response.AbortError(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}
