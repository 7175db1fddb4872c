package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/storage"
	"github.com/yoockh/mentorship/internal/store"
	"github.com/yoockh/mentorship/internal/utils"
)

type UploadRecording struct {
	SessionID   string
	ActorID     string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type RecordingService interface {
	Upload(ctx context.Context, in UploadRecording) (*models.Recording, error)
	List(ctx context.Context, sessionID string) ([]models.Recording, error)
}

const signedURLTTL = 15 * time.Minute

type recordingService struct {
	store    *store.Store
	uploader storage.Uploader
	signer   storage.Signer
	log      *logrus.Logger
	now      Clock
}

// NewRecordingService wires uploads to uploader. With a non-nil signer, listed
// recordings carry short-lived signed URLs instead of the stored object URL.
func NewRecordingService(st *store.Store, uploader storage.Uploader, signer storage.Signer, log *logrus.Logger, now Clock) RecordingService {
	if log == nil {
		log = logrus.New()
	}
	return &recordingService{store: st, uploader: uploader, signer: signer, log: log, now: clockOrDefault(now)}
}

// Upload stores the file and links it to the session. When the session can no longer
// take the recording the uploaded object is removed again.
func (s *recordingService) Upload(ctx context.Context, in UploadRecording) (*models.Recording, error) {
	const op = "RecordingService.Upload"

	if in.SessionID == "" || in.Body == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id and file are required", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "recording storage is not configured", nil)
	}

	sess, ok := s.store.Session(in.SessionID)
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", utils.ErrNotFound)
	}
	if !sess.IsParticipant(in.ActorID) {
		return nil, utils.E(utils.CodeForbidden, op, "only participants may upload recordings", nil)
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := s.now()
	rec := models.Recording{
		RecordingID: uuid.NewString(),
		SessionID:   in.SessionID,
		UploadedBy:  in.ActorID,
		FileName:    path.Base(in.FileName),
		MimeType:    contentType,
		SizeBytes:   in.Size,
		UploadedAt:  now,
	}
	rec.ObjectName = fmt.Sprintf("recordings/%s/%s%s", in.SessionID, rec.RecordingID, path.Ext(rec.FileName))

	url, err := s.uploader.Upload(ctx, rec.ObjectName, contentType, in.Body)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload recording", err)
	}
	rec.URL = url

	out := s.store.Update(ctx, func(tx *store.Tx) utils.Reason {
		sess, ok := tx.Session(in.SessionID)
		if !ok {
			return utils.ReasonNotFound
		}
		sess.TechnicalDetails.RecordingURL = url
		sess.UpdatedAt = now
		tx.AddRecording(rec)
		return utils.ReasonNone
	})
	if !out.OK {
		s.cleanup(rec.ObjectName)
		return nil, out.AsError(op)
	}

	s.log.WithFields(logrus.Fields{
		"session_id":   rec.SessionID,
		"recording_id": rec.RecordingID,
		"size_bytes":   rec.SizeBytes,
	}).Info("recording uploaded")
	return &rec, nil
}

func (s *recordingService) List(ctx context.Context, sessionID string) ([]models.Recording, error) {
	const op = "RecordingService.List"

	if _, ok := s.store.Session(sessionID); !ok {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", utils.ErrNotFound)
	}
	list := s.store.Recordings(sessionID)
	if s.signer == nil {
		return list, nil
	}
	for i := range list {
		url, err := s.signer.SignedGetURL(ctx, list[i].ObjectName, signedURLTTL)
		if err != nil {
			return nil, utils.E(utils.CodeUnavailable, op, "failed to sign recording url", err)
		}
		list[i].URL = url
	}
	return list, nil
}

func (s *recordingService) cleanup(objectName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.uploader.Delete(ctx, objectName); err != nil {
		s.log.WithError(err).WithField("object", objectName).Warn("failed to remove orphaned recording")
	}
}
