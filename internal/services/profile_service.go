package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/mentorship/internal/cache"
	"github.com/yoockh/mentorship/internal/models"
	pgrepo "github.com/yoockh/mentorship/internal/repositories/postgres"
	"github.com/yoockh/mentorship/internal/utils"
)

// ProfilePatch is a shallow update: every non-nil field replaces the stored value whole.
type ProfilePatch struct {
	AgeBracket          *string
	Interests           *[]string
	Goals               *[]string
	ExperienceLevel     *string
	Skills              *[]string
	LearningPreferences *models.LearningPreferences
	CareerPreferences   *models.CareerPreferences
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, p *models.UserProfile) error
	Merge(ctx context.Context, userID string, patch ProfilePatch) (*models.UserProfile, error)
	Delete(ctx context.Context, userID string) error
}

type profileService struct {
	profiles pgrepo.ProfileRepository
	cache    cache.Cache
	log      *logrus.Logger
	now      Clock
}

func NewProfileService(profiles pgrepo.ProfileRepository, c cache.Cache, log *logrus.Logger, now Clock) ProfileService {
	if log == nil {
		log = logrus.New()
	}
	return &profileService{profiles: profiles, cache: c, log: log, now: clockOrDefault(now)}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	const op = "ProfileService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, p *models.UserProfile) error {
	const op = "ProfileService.Upsert"

	if p == nil || p.UserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "profile.user_id is required", nil)
	}
	p.UpdatedAt = s.now()
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}
	s.invalidate(ctx, p.UserID)
	return nil
}

// Merge applies patch to the stored profile, creating an empty one first if the user
// has none yet.
func (s *profileService) Merge(ctx context.Context, userID string, patch ProfilePatch) (*models.UserProfile, error) {
	const op = "ProfileService.Merge"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, utils.ErrNotFound):
		p = &models.UserProfile{UserID: userID}
	case err != nil:
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	applyPatch(p, patch)
	if err := s.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) Delete(ctx context.Context, userID string) error {
	const op = "ProfileService.Delete"

	if err := s.profiles.Delete(ctx, userID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete profile", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *profileService) invalidate(ctx context.Context, userID string) {
	if err := cache.InvalidateUser(ctx, s.cache, userID); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to invalidate cached personalization")
	}
}

func applyPatch(p *models.UserProfile, patch ProfilePatch) {
	if patch.AgeBracket != nil {
		p.AgeBracket = *patch.AgeBracket
	}
	if patch.Interests != nil {
		p.Interests = append([]string{}, (*patch.Interests)...)
	}
	if patch.Goals != nil {
		p.Goals = append([]string{}, (*patch.Goals)...)
	}
	if patch.ExperienceLevel != nil {
		p.ExperienceLevel = *patch.ExperienceLevel
	}
	if patch.Skills != nil {
		p.Skills = append([]string{}, (*patch.Skills)...)
	}
	if patch.LearningPreferences != nil {
		lp := *patch.LearningPreferences
		p.LearningPreferences = &lp
	}
	if patch.CareerPreferences != nil {
		cp := *patch.CareerPreferences
		p.CareerPreferences = &cp
	}
}
