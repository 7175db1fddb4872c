package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/store"
	"github.com/yoockh/mentorship/internal/utils"
)

// FeedbackRole names which side of the session a feedback submission belongs to.
type FeedbackRole string

const (
	FeedbackMentor FeedbackRole = "mentor"
	FeedbackMentee FeedbackRole = "mentee"
)

// ContentService records what happens inside a session. Content is accepted in any
// session state; only the session's existence is checked.
type ContentService interface {
	AddAgendaItem(ctx context.Context, sessionID, item string) utils.Outcome
	AddNote(ctx context.Context, sessionID, text, author string) utils.Outcome
	AddActionItem(ctx context.Context, sessionID, description string, assignedTo models.Assignee, dueDate *time.Time) (string, utils.Outcome)
	CompleteActionItem(ctx context.Context, sessionID, actionItemID string) utils.Outcome
	AddResource(ctx context.Context, sessionID, title, url string, typ models.ResourceType) (string, utils.Outcome)
	UpdateWhiteboard(ctx context.Context, sessionID, content string) utils.Outcome
	AddChatMessage(ctx context.Context, sessionID, sender, message string) utils.Outcome

	// SubmitFeedback stores the actor's feedback. The actor's participant role picks
	// the mentor or mentee block; non-participants get ActorMismatch.
	SubmitFeedback(ctx context.Context, sessionID, actorID string, fb FeedbackInput) (FeedbackRole, utils.Outcome)
}

// FeedbackInput carries both sides' fields; only the ones for the actor's role are used.
type FeedbackInput struct {
	Rating          *float64
	Review          string
	MenteeProgress  string
	Recommendations string
	SessionValue    string
	Suggestions     string
}

type contentService struct {
	store *store.Store
	log   *logrus.Logger
	now   Clock
}

func NewContentService(st *store.Store, log *logrus.Logger, now Clock) ContentService {
	if log == nil {
		log = logrus.New()
	}
	return &contentService{store: st, log: log, now: clockOrDefault(now)}
}

func (s *contentService) AddAgendaItem(ctx context.Context, sessionID, item string) utils.Outcome {
	return s.mutate(ctx, "ContentService.AddAgendaItem", sessionID, func(sess *models.Session, _ time.Time) utils.Reason {
		sess.SessionData.Agenda = append(sess.SessionData.Agenda, item)
		return utils.ReasonNone
	})
}

func (s *contentService) AddNote(ctx context.Context, sessionID, text, author string) utils.Outcome {
	return s.mutate(ctx, "ContentService.AddNote", sessionID, func(sess *models.Session, now time.Time) utils.Reason {
		sess.SessionData.Notes = append(sess.SessionData.Notes, models.FormatNote(now, author, text))
		return utils.ReasonNone
	})
}

func (s *contentService) AddActionItem(ctx context.Context, sessionID, description string, assignedTo models.Assignee, dueDate *time.Time) (string, utils.Outcome) {
	id := uuid.NewString()
	out := s.mutate(ctx, "ContentService.AddActionItem", sessionID, func(sess *models.Session, _ time.Time) utils.Reason {
		item := models.ActionItem{
			ID:          id,
			Description: description,
			AssignedTo:  assignedTo,
		}
		if dueDate != nil {
			d := *dueDate
			item.DueDate = &d
		}
		sess.SessionData.ActionItems = append(sess.SessionData.ActionItems, item)
		return utils.ReasonNone
	})
	if !out.OK {
		return "", out
	}
	return id, out
}

// CompleteActionItem marks the item done. Completing an already completed item succeeds
// without writing anything.
func (s *contentService) CompleteActionItem(ctx context.Context, sessionID, actionItemID string) utils.Outcome {
	const op = "ContentService.CompleteActionItem"

	now := s.now()
	out := s.store.Update(ctx, func(tx *store.Tx) utils.Reason {
		cur, ok := tx.Peek(sessionID)
		if !ok {
			return utils.ReasonNotFound
		}
		idx := actionItemIndex(cur.SessionData.ActionItems, actionItemID)
		if idx < 0 {
			return utils.ReasonNotFound
		}
		if cur.SessionData.ActionItems[idx].Completed {
			return utils.ReasonNone
		}

		sess, _ := tx.Session(sessionID)
		sess.SessionData.ActionItems[idx].Completed = true
		sess.UpdatedAt = now
		return utils.ReasonNone
	})
	s.logOutcome(op, sessionID, out)
	return out
}

func (s *contentService) AddResource(ctx context.Context, sessionID, title, url string, typ models.ResourceType) (string, utils.Outcome) {
	id := uuid.NewString()
	out := s.mutate(ctx, "ContentService.AddResource", sessionID, func(sess *models.Session, _ time.Time) utils.Reason {
		sess.SessionData.Resources = append(sess.SessionData.Resources, models.Resource{
			ID:    id,
			Title: title,
			URL:   url,
			Type:  typ,
		})
		return utils.ReasonNone
	})
	if !out.OK {
		return "", out
	}
	return id, out
}

func (s *contentService) UpdateWhiteboard(ctx context.Context, sessionID, content string) utils.Outcome {
	return s.mutate(ctx, "ContentService.UpdateWhiteboard", sessionID, func(sess *models.Session, now time.Time) utils.Reason {
		sess.SessionData.Whiteboard = &models.Whiteboard{Content: content, LastModified: now}
		return utils.ReasonNone
	})
}

func (s *contentService) AddChatMessage(ctx context.Context, sessionID, sender, message string) utils.Outcome {
	return s.mutate(ctx, "ContentService.AddChatMessage", sessionID, func(sess *models.Session, now time.Time) utils.Reason {
		sess.TechnicalDetails.ChatLog = append(sess.TechnicalDetails.ChatLog, models.ChatMessage{
			Timestamp: now,
			Sender:    sender,
			Message:   message,
		})
		return utils.ReasonNone
	})
}

func (s *contentService) SubmitFeedback(ctx context.Context, sessionID, actorID string, fb FeedbackInput) (FeedbackRole, utils.Outcome) {
	var role FeedbackRole
	out := s.mutate(ctx, "ContentService.SubmitFeedback", sessionID, func(sess *models.Session, _ time.Time) utils.Reason {
		rating := fb.Rating
		if rating != nil {
			r := *rating
			rating = &r
		}
		switch actorID {
		case sess.Participants.MentorID:
			role = FeedbackMentor
			sess.Feedback.Mentor = models.MentorFeedback{
				Rating:          rating,
				Review:          fb.Review,
				MenteeProgress:  fb.MenteeProgress,
				Recommendations: fb.Recommendations,
			}
		case sess.Participants.MenteeID:
			role = FeedbackMentee
			sess.Feedback.Mentee = models.MenteeFeedback{
				Rating:       rating,
				Review:       fb.Review,
				SessionValue: fb.SessionValue,
				Suggestions:  fb.Suggestions,
			}
		default:
			return utils.ReasonActorMismatch
		}
		return utils.ReasonNone
	})
	if !out.OK {
		return "", out
	}
	return role, out
}

func (s *contentService) mutate(ctx context.Context, op, sessionID string, fn func(sess *models.Session, now time.Time) utils.Reason) utils.Outcome {
	now := s.now()
	out := s.store.Update(ctx, func(tx *store.Tx) utils.Reason {
		sess, ok := tx.Session(sessionID)
		if !ok {
			return utils.ReasonNotFound
		}
		if r := fn(sess, now); r != utils.ReasonNone {
			return r
		}
		sess.UpdatedAt = now
		return utils.ReasonNone
	})
	s.logOutcome(op, sessionID, out)
	return out
}

func (s *contentService) logOutcome(op, sessionID string, out utils.Outcome) {
	entry := s.log.WithFields(logrus.Fields{"op": op, "session_id": sessionID})
	switch {
	case out.OK:
		entry.Debug("session content updated")
	case out.Reason == utils.ReasonStorage:
		entry.WithError(out.Err).Error("session content not persisted")
	default:
		entry.WithField("reason", out.Reason).Debug("session content update rejected")
	}
}

func actionItemIndex(items []models.ActionItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
