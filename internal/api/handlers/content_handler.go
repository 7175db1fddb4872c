package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/internal/api/middleware"
	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/services"
)

// ContentHandler exposes the in-session content endpoints. Only participants may write.
type ContentHandler struct {
	sessions services.SessionService
	svc      services.ContentService
}

func NewContentHandler(sessions services.SessionService, svc services.ContentService) *ContentHandler {
	return &ContentHandler{sessions: sessions, svc: svc}
}

type AgendaItemRequest struct {
	Item string `json:"item" binding:"required"`
}

type NoteRequest struct {
	Text string `json:"text" binding:"required"`
}

type ActionItemRequest struct {
	Description string     `json:"description" binding:"required"`
	AssignedTo  string     `json:"assigned_to" binding:"required,oneof=mentor mentee both"`
	DueDate     *time.Time `json:"due_date"`
}

type ResourceRequest struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required,url"`
	Type  string `json:"type" binding:"required,oneof=link document video article"`
}

type WhiteboardRequest struct {
	Content string `json:"content"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type FeedbackRequest struct {
	Rating          *float64 `json:"rating" binding:"omitempty,gte=0,lte=10"`
	Review          string   `json:"review"`
	MenteeProgress  string   `json:"mentee_progress"`
	Recommendations string   `json:"recommendations"`
	SessionValue    string   `json:"session_value"`
	Suggestions     string   `json:"suggestions"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

func (h *ContentHandler) AddAgendaItem(c *gin.Context) {
	const op = "ContentHandler.AddAgendaItem"

	sess, ok := loadParticipantSession(c, h.sessions, op)
	if !ok {
		return
	}
	var req AgendaItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}
	writeOutcome(c, op, h.svc.AddAgendaItem(c.Request.Context(), sess.SessionID, req.Item))
}

func (h *ContentHandler) AddNote(c *gin.Context) {
	const op = "ContentHandler.AddNote"

	sess, ok := loadParticipantSession(c, h.sessions, op)
	if !ok {
		return
	}
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}
	writeOutcome(c, op, h.svc.AddNote(c.Request.Context(), sess.SessionID, req.Text, c.GetString(middleware.UserIDKey)))
}

func (h *ContentHandler) AddActionItem(c *gin.Context) {
	const op = "ContentHandler.AddActionItem"

	sess, ok := loadParticipantSession(c, h.sessions, op)
	if !ok {
		return
	}
	var req ActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}

	id, out := h.svc.AddActionItem(c.Request.Context(), sess.SessionID, req.Description, models.Assignee(req.AssignedTo), req.DueDate)
	if !out.OK {
		writeOutcome(c, op, out)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

func (h *ContentHandler) CompleteActionItem(c *gin.Context) {
	const op = "ContentHandler.CompleteActionItem"

	sess, ok := loadParticipantSession(c, h.sessions, op)
	if !ok {
		return
	}
	writeOutcome(c, op, h.svc.CompleteActionItem(c.Request.Context(), sess.SessionID, c.Param("item_id")))
}

func (h *ContentHandler) AddResource(c *gin.Context) {
	const op = "ContentHandler.AddResource"

	sess, ok := loadParticipantSession(c, h.sessions, op)
	if !ok {
		return
	}
	var req ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}

	id, out := h.svc.AddResource(c.Request.Context(), sess.SessionID, req.Title, req.URL, models.ResourceType(req.Type))
	if !out.OK {
		writeOutcome(c, op, out)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

func (h *ContentHandler) UpdateWhiteboard(c *gin.Context) {
	const op = "ContentHandler.UpdateWhiteboard"

	sess, ok := loadParticipantSession(c, h.sessions, op)
	if !ok {
		return
	}
	var req WhiteboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}
	writeOutcome(c, op, h.svc.UpdateWhiteboard(c.Request.Context(), sess.SessionID, req.Content))
}

func (h *ContentHandler) AddChatMessage(c *gin.Context) {
	const op = "ContentHandler.AddChatMessage"

	sess, ok := loadParticipantSession(c, h.sessions, op)
	if !ok {
		return
	}
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}
	writeOutcome(c, op, h.svc.AddChatMessage(c.Request.Context(), sess.SessionID, c.GetString(middleware.UserIDKey), req.Message))
}

func (h *ContentHandler) SubmitFeedback(c *gin.Context) {
	const op = "ContentHandler.SubmitFeedback"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}

	role, out := h.svc.SubmitFeedback(c.Request.Context(), c.Param("session_id"), userID, services.FeedbackInput{
		Rating:          req.Rating,
		Review:          req.Review,
		MenteeProgress:  req.MenteeProgress,
		Recommendations: req.Recommendations,
		SessionValue:    req.SessionValue,
		Suggestions:     req.Suggestions,
	})
	if !out.OK {
		writeOutcome(c, op, out)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "role": role})
}

