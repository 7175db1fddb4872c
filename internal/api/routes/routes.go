package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/internal/api/handlers"
	"github.com/yoockh/mentorship/internal/api/middleware"
)

type Deps struct {
	Session        *handlers.SessionHandler
	Content        *handlers.ContentHandler
	Template       *handlers.TemplateHandler
	Recording      *handlers.RecordingHandler
	Profile        *handlers.ProfileHandler
	Recommendation *handlers.RecommendationHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Every route below needs a caller id from the gateway.
	api := r.Group("/")
	api.Use(middleware.Actor())

	api.POST("/sessions", d.Session.Create)
	api.GET("/sessions", d.Session.List)
	api.GET("/sessions/:session_id", d.Session.Get)
	api.GET("/sessions/:session_id/analytics", d.Session.Analytics)
	api.POST("/sessions/:session_id/confirm", d.Session.Confirm)
	api.POST("/sessions/:session_id/start", d.Session.Start)
	api.POST("/sessions/:session_id/end", d.Session.End)
	api.POST("/sessions/:session_id/cancel", d.Session.Cancel)
	api.POST("/sessions/:session_id/no-show", d.Session.NoShow)

	api.POST("/sessions/:session_id/agenda", d.Content.AddAgendaItem)
	api.POST("/sessions/:session_id/notes", d.Content.AddNote)
	api.POST("/sessions/:session_id/action-items", d.Content.AddActionItem)
	api.POST("/sessions/:session_id/action-items/:item_id/complete", d.Content.CompleteActionItem)
	api.POST("/sessions/:session_id/resources", d.Content.AddResource)
	api.PUT("/sessions/:session_id/whiteboard", d.Content.UpdateWhiteboard)
	api.POST("/sessions/:session_id/chat", d.Content.AddChatMessage)
	api.POST("/sessions/:session_id/feedback", d.Content.SubmitFeedback)
	api.POST("/sessions/:session_id/template", d.Template.Apply)

	if d.Recording != nil {
		api.POST("/sessions/:session_id/recordings", d.Recording.Upload)
		api.GET("/sessions/:session_id/recordings", d.Recording.List)
	}

	api.POST("/templates", d.Template.Create)
	api.GET("/templates", d.Template.List)
	api.GET("/templates/:template_id", d.Template.Get)

	api.GET("/profile/me", d.Profile.Me)
	api.PATCH("/profile/me", d.Profile.Update)
	api.DELETE("/profile/me", d.Profile.Delete)

	api.GET("/me/recommendations", d.Recommendation.Recommendations)
	api.GET("/me/learning-path", d.Recommendation.LearningPath)
	api.GET("/me/insights", d.Recommendation.Insights)
}
