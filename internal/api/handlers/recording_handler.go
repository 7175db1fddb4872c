package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/internal/services"
	"github.com/yoockh/mentorship/internal/utils"
)

type RecordingHandler struct {
	sessions services.SessionService
	svc      services.RecordingService
	maxBytes int64
}

func NewRecordingHandler(sessions services.SessionService, svc services.RecordingService, maxBytes int64) *RecordingHandler {
	return &RecordingHandler{sessions: sessions, svc: svc, maxBytes: maxBytes}
}

// Upload accepts a multipart form with the recording in the "file" field.
func (h *RecordingHandler) Upload(c *gin.Context) {
	const op = "RecordingHandler.Upload"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file is required", err))
		return
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to read file", err))
		return
	}
	defer f.Close()

	rec, err := h.svc.Upload(c.Request.Context(), services.UploadRecording{
		SessionID:   c.Param("session_id"),
		ActorID:     userID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *RecordingHandler) List(c *gin.Context) {
	sess, ok := loadParticipantSession(c, h.sessions, "RecordingHandler.List")
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), sess.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
