package v1

import (
	"errors"
	"log"
	"net/http"

	"github.com/gfdmit/kanban/internal/auth"
	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// RequireUser resolves the session cookie and stores the caller's id in the
// request context. Requests without a valid session never reach the handlers.
func RequireUser(ident auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := ident.CurrentUserID(c.Request.Context(), c.Request)
		if err != nil {
			if !errors.Is(err, auth.ErrNoSession) {
				log.Printf("[AUTH ERROR]: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
