package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Context keys shared with the handlers.
const (
	UserIDKey    = "user_id"
	RequestIDKey = "request_id"
	// ReasonKey holds the utils.Reason of a rejected lifecycle or content mutation.
	ReasonKey = "outcome_reason"
)

// pathIDs are the route params worth a log field of their own.
var pathIDs = []string{"session_id", "template_id", "item_id"}

// RequestLogger writes one entry per request. The caller id set by Actor, the session
// or template the route addresses and the rejection reason of a refused mutation are
// attached when present.
func RequestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-Id", reqID)
		c.Set(RequestIDKey, reqID)

		c.Next()

		status := c.Writer.Status()
		entry := l.WithFields(requestFields(c, reqID, status, time.Since(start)))

		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

func requestFields(c *gin.Context, reqID string, status int, lat time.Duration) logrus.Fields {
	f := logrus.Fields{
		"request_id": reqID,
		"method":     c.Request.Method,
		"path":       c.FullPath(),
		"status":     status,
		"latency_ms": lat.Milliseconds(),
		"ip":         c.ClientIP(),
	}
	if userID := c.GetString(UserIDKey); userID != "" {
		f["user_id"] = userID
	}
	for _, p := range pathIDs {
		if v := c.Param(p); v != "" {
			f[p] = v
		}
	}
	if r, ok := c.Get(ReasonKey); ok {
		f["reason"] = r
	}
	return f
}
