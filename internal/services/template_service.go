package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/store"
	"github.com/yoockh/mentorship/internal/utils"
)

type NewTemplate struct {
	Name        string
	Description string
	Duration    int
	Agenda      []string
	Preparation models.TemplatePreparation
	Resources   []models.TemplateResource
	Category    models.TemplateCategory
	Difficulty  models.Difficulty
	Tags        []string
	CreatedBy   string
	IsPublic    bool
}

// TemplateFilter narrows List; empty fields match everything.
type TemplateFilter struct {
	Category   models.TemplateCategory
	Difficulty models.Difficulty
}

type TemplateService interface {
	Create(ctx context.Context, in NewTemplate) (*models.SessionTemplate, error)
	Get(ctx context.Context, templateID string) (*models.SessionTemplate, error)
	List(ctx context.Context, f TemplateFilter) ([]models.SessionTemplate, error)
	// Use replaces the session agenda with the template's, copies its resources under
	// fresh ids and counts one use of the template.
	Use(ctx context.Context, sessionID, templateID string) utils.Outcome
}

type templateService struct {
	store *store.Store
	log   *logrus.Logger
	now   Clock
}

func NewTemplateService(st *store.Store, log *logrus.Logger, now Clock) TemplateService {
	if log == nil {
		log = logrus.New()
	}
	return &templateService{store: st, log: log, now: clockOrDefault(now)}
}

func (s *templateService) Create(ctx context.Context, in NewTemplate) (*models.SessionTemplate, error) {
	const op = "TemplateService.Create"

	if in.Name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	if in.Category == "" {
		in.Category = models.CategoryGeneral
	}
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyBeginner
	}

	now := s.now()
	t := models.SessionTemplate{
		TemplateID:  uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
		Agenda:      in.Agenda,
		Preparation: in.Preparation,
		Resources:   in.Resources,
		Category:    in.Category,
		Difficulty:  in.Difficulty,
		Tags:        in.Tags,
		CreatedBy:   in.CreatedBy,
		IsPublic:    in.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t = t.Clone()

	out := s.store.Update(ctx, func(tx *store.Tx) utils.Reason {
		return tx.InsertTemplate(t)
	})
	if !out.OK {
		return nil, out.AsError(op)
	}

	s.log.WithFields(logrus.Fields{"template_id": t.TemplateID, "category": t.Category}).Info("template created")
	return &t, nil
}

func (s *templateService) Get(_ context.Context, templateID string) (*models.SessionTemplate, error) {
	const op = "TemplateService.Get"

	t, ok := s.store.Template(templateID)
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "template not found", utils.ErrNotFound)
	}
	return &t, nil
}

func (s *templateService) List(_ context.Context, f TemplateFilter) ([]models.SessionTemplate, error) {
	all := s.store.Templates()
	out := make([]models.SessionTemplate, 0, len(all))
	for _, t := range all {
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && t.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UsageCount > out[j].UsageCount })
	return out, nil
}

func (s *templateService) Use(ctx context.Context, sessionID, templateID string) utils.Outcome {
	const op = "TemplateService.Use"

	now := s.now()
	out := s.store.Update(ctx, func(tx *store.Tx) utils.Reason {
		sess, ok := tx.Session(sessionID)
		if !ok {
			return utils.ReasonNotFound
		}
		tmpl, ok := tx.Template(templateID)
		if !ok {
			return utils.ReasonNotFound
		}

		sess.SessionData.Agenda = append([]string{}, tmpl.Agenda...)
		for _, r := range tmpl.Resources {
			sess.SessionData.Resources = append(sess.SessionData.Resources, models.Resource{
				ID:    uuid.NewString(),
				Title: r.Title,
				URL:   r.URL,
				Type:  r.Type,
			})
		}
		sess.UpdatedAt = now

		tmpl.UsageCount++
		tmpl.UpdatedAt = now
		return utils.ReasonNone
	})

	entry := s.log.WithFields(logrus.Fields{"op": op, "session_id": sessionID, "template_id": templateID})
	switch {
	case out.OK:
		entry.Info("template applied")
	case out.Reason == utils.ReasonStorage:
		entry.WithError(out.Err).Error("template use not persisted")
	default:
		entry.WithField("reason", out.Reason).Debug("template use rejected")
	}
	return out
}
