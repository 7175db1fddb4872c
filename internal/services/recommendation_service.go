package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/mentorship/internal/cache"
	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/personalization"
	"github.com/yoockh/mentorship/internal/utils"
)

const defaultRecommendationTTL = 30 * time.Minute

// RecommendationService feeds profile snapshots from the profile store into the
// personalization engine. A user without a stored profile gets the default list.
type RecommendationService interface {
	Recommendations(ctx context.Context, userID string) ([]models.PersonalizedRecommendation, error)
	LearningPath(ctx context.Context, userID, goal string) (*models.LearningPath, error)
	Insights(ctx context.Context, userID string) ([]models.CareerInsight, error)
	Invalidate(ctx context.Context, userID string) error
}

type recommendationService struct {
	profiles ProfileService
	engine   *personalization.Engine
	cache    cache.Cache
	ttl      time.Duration
	log      *logrus.Logger
}

func NewRecommendationService(profiles ProfileService, engine *personalization.Engine, c cache.Cache, ttl time.Duration, log *logrus.Logger) RecommendationService {
	if engine == nil {
		engine = personalization.NewEngine()
	}
	if ttl <= 0 {
		ttl = defaultRecommendationTTL
	}
	if log == nil {
		log = logrus.New()
	}
	return &recommendationService{profiles: profiles, engine: engine, cache: c, ttl: ttl, log: log}
}

func (s *recommendationService) Recommendations(ctx context.Context, userID string) ([]models.PersonalizedRecommendation, error) {
	const op = "RecommendationService.Recommendations"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	key := cache.RecommendationsKey(userID)
	var cached []models.PersonalizedRecommendation
	if s.getCached(ctx, key, &cached) {
		return cached, nil
	}

	p, err := s.snapshot(ctx, op, userID)
	if err != nil {
		return nil, err
	}
	recs := s.engine.Recommend(p)
	s.setCached(ctx, key, recs)
	return recs, nil
}

func (s *recommendationService) LearningPath(ctx context.Context, userID, goal string) (*models.LearningPath, error) {
	const op = "RecommendationService.LearningPath"

	if userID == "" || goal == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and goal are required", nil)
	}

	p, err := s.snapshot(ctx, op, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &models.UserProfile{UserID: userID}
	}
	path := s.engine.LearningPath(*p, goal)
	return &path, nil
}

func (s *recommendationService) Insights(ctx context.Context, userID string) ([]models.CareerInsight, error) {
	const op = "RecommendationService.Insights"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	key := cache.InsightsKey(userID)
	var cached []models.CareerInsight
	if s.getCached(ctx, key, &cached) {
		return cached, nil
	}

	p, err := s.snapshot(ctx, op, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return []models.CareerInsight{}, nil
	}
	out := s.engine.Insights(*p)
	s.setCached(ctx, key, out)
	return out, nil
}

func (s *recommendationService) Invalidate(ctx context.Context, userID string) error {
	const op = "RecommendationService.Invalidate"

	if err := cache.InvalidateUser(ctx, s.cache, userID); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to invalidate cache", err)
	}
	return nil
}

// snapshot returns the stored profile, or nil when the user has none.
func (s *recommendationService) snapshot(ctx context.Context, op, userID string) (*models.UserProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			return nil, nil
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}
	return p, nil
}

func (s *recommendationService) getCached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dst)
	switch {
	case errors.Is(err, cache.ErrCorruptEntry):
		s.log.WithError(err).WithField("key", key).Warn("evicted corrupt cache entry")
		return false
	case err != nil:
		s.log.WithError(err).WithField("key", key).Warn("cache read failed")
		return false
	}
	return hit
}

func (s *recommendationService) setCached(ctx context.Context, key string, val any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, val, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}
