package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/internal/utils"
)

// ActorHeader carries the caller's user id, set by the gateway in front of this service.
const ActorHeader = "X-User-Id"

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// Actor stores the asserted caller id as "user_id" in the gin context and rejects
// requests without one.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(ActorHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "missing " + ActorHeader + " header",
			})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}
