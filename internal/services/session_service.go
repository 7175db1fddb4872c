package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mentorship/internal/analysis/analytics"
	"github.com/yoockh/mentorship/internal/events"
	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/store"
	"github.com/yoockh/mentorship/internal/utils"
)

// NewSession is what the session-authoring surface hands over. Sessions always enter
// the lifecycle as scheduled.
type NewSession struct {
	MentorID        string
	MenteeID        string
	Type            string
	PlannedDuration int
	ScheduledAt     *time.Time
	MeetingPlatform string
	MeetingID       string
	Agenda          []string
}

// SessionService owns the session state machine:
//
//	scheduled -> confirmed -> in_progress -> completed
//	scheduled|confirmed -> in_progress
//	scheduled|confirmed -> no_show
//	scheduled|confirmed|in_progress -> cancelled
//
// Transitions report precondition failures through utils.Outcome.
type SessionService interface {
	Register(ctx context.Context, in NewSession) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	ListForUser(ctx context.Context, userID string) ([]models.Session, error)
	Analytics(ctx context.Context, sessionID string) (*models.SessionAnalytics, error)

	Confirm(ctx context.Context, sessionID, actorID string) utils.Outcome
	Start(ctx context.Context, sessionID, actorID string) utils.Outcome
	End(ctx context.Context, sessionID, actorID string) utils.Outcome
	Cancel(ctx context.Context, sessionID, actorID, reason string) utils.Outcome
	MarkNoShow(ctx context.Context, sessionID, actorID string) utils.Outcome
}

type sessionService struct {
	store     *store.Store
	analytics *analytics.Generator
	events    events.Publisher
	log       *logrus.Logger
	now       Clock
}

func NewSessionService(st *store.Store, gen *analytics.Generator, pub events.Publisher, log *logrus.Logger, now Clock) SessionService {
	if gen == nil {
		gen = analytics.NewGenerator(nil)
	}
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = logrus.New()
	}
	return &sessionService{store: st, analytics: gen, events: pub, log: log, now: clockOrDefault(now)}
}

func (s *sessionService) Register(ctx context.Context, in NewSession) (*models.Session, error) {
	const op = "SessionService.Register"

	if in.MentorID == "" || in.MenteeID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "mentor_id and mentee_id are required", nil)
	}
	if in.MentorID == in.MenteeID {
		return nil, utils.E(utils.CodeInvalidArgument, op, "mentor and mentee must differ", nil)
	}

	now := s.now()
	sess := models.Session{
		SessionID:       uuid.NewString(),
		Status:          models.StatusScheduled,
		Type:            in.Type,
		ScheduledAt:     in.ScheduledAt,
		PlannedDuration: in.PlannedDuration,
		Participants:    models.Participants{MentorID: in.MentorID, MenteeID: in.MenteeID},
		SessionData: models.SessionData{
			Agenda:      append([]string{}, in.Agenda...),
			Notes:       []string{},
			ActionItems: []models.ActionItem{},
			Resources:   []models.Resource{},
		},
		TechnicalDetails: models.TechnicalDetails{
			MeetingPlatform: in.MeetingPlatform,
			MeetingID:       in.MeetingID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	out := s.store.Update(ctx, func(tx *store.Tx) utils.Reason {
		return tx.InsertSession(sess)
	})
	if !out.OK {
		return nil, out.AsError(op)
	}

	s.log.WithFields(logrus.Fields{
		"session_id": sess.SessionID,
		"mentor_id":  in.MentorID,
		"mentee_id":  in.MenteeID,
	}).Info("session registered")
	return &sess, nil
}

func (s *sessionService) Get(_ context.Context, sessionID string) (*models.Session, error) {
	const op = "SessionService.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	sess, ok := s.store.Session(sessionID)
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", utils.ErrNotFound)
	}
	return &sess, nil
}

func (s *sessionService) ListForUser(_ context.Context, userID string) ([]models.Session, error) {
	const op = "SessionService.ListForUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	return s.store.SessionsForUser(userID), nil
}

func (s *sessionService) Analytics(_ context.Context, sessionID string) (*models.SessionAnalytics, error) {
	const op = "SessionService.Analytics"

	if _, ok := s.store.Session(sessionID); !ok {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", utils.ErrNotFound)
	}
	a, ok := s.store.Analytics(sessionID)
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "analytics not generated yet", utils.ErrNotFound)
	}
	return &a, nil
}

func (s *sessionService) Confirm(ctx context.Context, sessionID, actorID string) utils.Outcome {
	return s.transition(ctx, "SessionService.Confirm", sessionID, actorID, func(sess *models.Session, _ *store.Tx, _ time.Time) utils.Reason {
		if !sess.IsParticipant(actorID) {
			return utils.ReasonActorMismatch
		}
		if sess.Status != models.StatusScheduled {
			return utils.ReasonInvalidState
		}
		sess.Status = models.StatusConfirmed
		return utils.ReasonNone
	})
}

func (s *sessionService) Start(ctx context.Context, sessionID, actorID string) utils.Outcome {
	return s.transition(ctx, "SessionService.Start", sessionID, actorID, func(sess *models.Session, _ *store.Tx, now time.Time) utils.Reason {
		if actorID != sess.Participants.MentorID {
			return utils.ReasonActorMismatch
		}
		if sess.Status != models.StatusScheduled && sess.Status != models.StatusConfirmed {
			return utils.ReasonInvalidState
		}
		sess.Status = models.StatusInProgress
		sess.StartTime = &now
		return utils.ReasonNone
	})
}

// End completes an in-progress session and generates its analytics in the same
// transaction, so the record exists exactly once.
func (s *sessionService) End(ctx context.Context, sessionID, actorID string) utils.Outcome {
	return s.transition(ctx, "SessionService.End", sessionID, actorID, func(sess *models.Session, tx *store.Tx, now time.Time) utils.Reason {
		if actorID != sess.Participants.MentorID {
			return utils.ReasonActorMismatch
		}
		if sess.Status != models.StatusInProgress || tx.HasAnalytics(sess.SessionID) {
			return utils.ReasonInvalidState
		}

		sess.Status = models.StatusCompleted
		sess.EndTime = &now
		sess.Duration = durationMinutes(sess.StartTime, now)

		a := s.analytics.Generate(*sess, now)
		summary := analytics.Summarize(a)
		sess.Analytics = &summary
		return tx.PutAnalytics(a)
	})
}

func (s *sessionService) Cancel(ctx context.Context, sessionID, actorID, reason string) utils.Outcome {
	return s.transition(ctx, "SessionService.Cancel", sessionID, actorID, func(sess *models.Session, _ *store.Tx, _ time.Time) utils.Reason {
		if sess.Status.Terminal() {
			return utils.ReasonInvalidState
		}
		if reason == "" {
			reason = "no reason provided"
		}
		sess.Status = models.StatusCancelled
		sess.SessionData.Notes = append(sess.SessionData.Notes, fmt.Sprintf("cancelled by %s: %s", actorID, reason))
		return utils.ReasonNone
	})
}

func (s *sessionService) MarkNoShow(ctx context.Context, sessionID, actorID string) utils.Outcome {
	return s.transition(ctx, "SessionService.MarkNoShow", sessionID, actorID, func(sess *models.Session, _ *store.Tx, _ time.Time) utils.Reason {
		if actorID != sess.Participants.MentorID {
			return utils.ReasonActorMismatch
		}
		if sess.Status != models.StatusScheduled && sess.Status != models.StatusConfirmed {
			return utils.ReasonInvalidState
		}
		sess.Status = models.StatusNoShow
		return utils.ReasonNone
	})
}

type transitionFunc func(sess *models.Session, tx *store.Tx, now time.Time) utils.Reason

// transition applies fn to the session under the store lock. The state check inside fn
// and the write it guards are one atomic step, so racing callers cannot both succeed.
func (s *sessionService) transition(ctx context.Context, op, sessionID, actorID string, fn transitionFunc) utils.Outcome {
	now := s.now()

	var (
		from  models.SessionStatus
		after models.Session
	)
	out := s.store.Update(ctx, func(tx *store.Tx) utils.Reason {
		sess, ok := tx.Session(sessionID)
		if !ok {
			return utils.ReasonNotFound
		}
		from = sess.Status
		if r := fn(sess, tx, now); r != utils.ReasonNone {
			return r
		}
		sess.UpdatedAt = now
		after = sess.Clone()
		return utils.ReasonNone
	})

	entry := s.log.WithFields(logrus.Fields{
		"op":         op,
		"session_id": sessionID,
		"actor_id":   actorID,
	})
	if !out.OK {
		if out.Reason == utils.ReasonStorage {
			entry.WithError(out.Err).Error("session transition not persisted")
		} else {
			entry.WithField("reason", out.Reason).Debug("session transition rejected")
		}
		return out
	}

	entry.WithFields(logrus.Fields{"from": from, "to": after.Status}).Info("session transition")
	s.publish(ctx, after, now)
	return out
}

func (s *sessionService) publish(ctx context.Context, sess models.Session, at time.Time) {
	err := s.events.Publish(ctx, events.Event{
		Type:      events.TypeFor(sess.Status),
		SessionID: sess.SessionID,
		MentorID:  sess.Participants.MentorID,
		MenteeID:  sess.Participants.MenteeID,
		Status:    sess.Status,
		At:        at,
	})
	if err != nil {
		s.log.WithError(err).WithField("session_id", sess.SessionID).Warn("failed to publish session event")
	}
}

// durationMinutes rounds the elapsed time to whole minutes.
func durationMinutes(start *time.Time, end time.Time) int {
	if start == nil {
		return 0
	}
	ms := end.Sub(*start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(math.Round(float64(ms) / 60000))
}
