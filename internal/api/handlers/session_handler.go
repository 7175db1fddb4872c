package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/internal/api/middleware"
	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/services"
	"github.com/yoockh/mentorship/internal/utils"
)

type SessionHandler struct {
	svc services.SessionService
}

func NewSessionHandler(svc services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type CreateSessionRequest struct {
	MentorID        string     `json:"mentor_id" binding:"required"`
	MenteeID        string     `json:"mentee_id" binding:"required"`
	Type            string     `json:"type"`
	PlannedDuration int        `json:"planned_duration" binding:"gte=0"` // minutes
	ScheduledAt     *time.Time `json:"scheduled_at"`
	MeetingPlatform string     `json:"meeting_platform"`
	MeetingID       string     `json:"meeting_id"`
	Agenda          []string   `json:"agenda"`
}

type CancelSessionRequest struct {
	Reason string `json:"reason"`
}

func (h *SessionHandler) Create(c *gin.Context) {
	const op = "SessionHandler.Create"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}
	if userID != req.MentorID && userID != req.MenteeID {
		writeError(c, utils.E(utils.CodeForbidden, op, "caller must be a participant", nil))
		return
	}

	sess, err := h.svc.Register(c.Request.Context(), services.NewSession{
		MentorID:        req.MentorID,
		MenteeID:        req.MenteeID,
		Type:            req.Type,
		PlannedDuration: req.PlannedDuration,
		ScheduledAt:     req.ScheduledAt,
		MeetingPlatform: req.MeetingPlatform,
		MeetingID:       req.MeetingID,
		Agenda:          req.Agenda,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sess)
}

func (h *SessionHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := loadParticipantSession(c, h.svc, "SessionHandler.Get")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *SessionHandler) Analytics(c *gin.Context) {
	sess, ok := loadParticipantSession(c, h.svc, "SessionHandler.Analytics")
	if !ok {
		return
	}

	a, err := h.svc.Analytics(c.Request.Context(), sess.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *SessionHandler) Confirm(c *gin.Context) {
	h.transition(c, "SessionHandler.Confirm", h.svc.Confirm)
}

func (h *SessionHandler) Start(c *gin.Context) {
	h.transition(c, "SessionHandler.Start", h.svc.Start)
}

func (h *SessionHandler) End(c *gin.Context) {
	h.transition(c, "SessionHandler.End", h.svc.End)
}

func (h *SessionHandler) NoShow(c *gin.Context) {
	h.transition(c, "SessionHandler.NoShow", h.svc.MarkNoShow)
}

func (h *SessionHandler) Cancel(c *gin.Context) {
	const op = "SessionHandler.Cancel"

	sess, ok := loadParticipantSession(c, h.svc, op)
	if !ok {
		return
	}

	var req CancelSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, op, err)
			return
		}
	}

	userID := c.GetString(middleware.UserIDKey)
	writeOutcome(c, op, h.svc.Cancel(c.Request.Context(), sess.SessionID, userID, req.Reason))
}

func (h *SessionHandler) transition(c *gin.Context, op string, fn func(ctx context.Context, sessionID, actorID string) utils.Outcome) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	writeOutcome(c, op, fn(c.Request.Context(), c.Param("session_id"), userID))
}

// loadParticipantSession fetches the path session and checks the caller takes part in it.
func loadParticipantSession(c *gin.Context, svc services.SessionService, op string) (*models.Session, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return nil, false
	}

	sess, err := svc.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if !sess.IsParticipant(userID) {
		writeError(c, utils.E(utils.CodeForbidden, op, "forbidden", nil))
		return nil, false
	}
	return sess, true
}
