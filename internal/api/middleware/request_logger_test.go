package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerRecordsActorAndSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, hook := logtest.NewNullLogger()

	r := gin.New()
	r.Use(RequestLogger(l), Actor())
	r.POST("/sessions/:session_id/start", func(c *gin.Context) {
		c.Set(ReasonKey, "INVALID_STATE")
		c.Status(http.StatusConflict)
	})

	req := httptest.NewRequest(http.MethodPost, "/sessions/s-42/start", nil)
	req.Header.Set(ActorHeader, "mentor-1")
	req.Header.Set("X-Request-Id", "req-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "mentor-1", entry.Data["user_id"])
	assert.Equal(t, "s-42", entry.Data["session_id"])
	assert.Equal(t, "INVALID_STATE", entry.Data["reason"])
	assert.Equal(t, "req-7", entry.Data["request_id"])
	assert.Equal(t, "/sessions/:session_id/start", entry.Data["path"])
}

func TestRequestLoggerWithoutActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, hook := logtest.NewNullLogger()

	r := gin.New()
	r.Use(RequestLogger(l), Actor())
	r.GET("/templates", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/templates", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, http.StatusUnauthorized, entry.Data["status"])
	assert.NotContains(t, entry.Data, "user_id")
	assert.NotContains(t, entry.Data, "session_id")
	assert.NotContains(t, entry.Data, "reason")
}
