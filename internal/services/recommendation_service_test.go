package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/mentorship/internal/cache"
	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/utils"
)

func newRecommendationFixture() (RecommendationService, *memProfiles, *memCache) {
	repo := newMemProfiles()
	c := newMemCache()
	log := quietLogger()
	profiles := NewProfileService(repo, c, log, nil)
	return NewRecommendationService(profiles, nil, c, 0, log), repo, c
}

func TestRecommendationsWithoutProfileUseDefaults(t *testing.T) {
	svc, _, _ := newRecommendationFixture()

	recs, err := svc.Recommendations(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
}

func TestRecommendationsAreCached(t *testing.T) {
	svc, repo, c := newRecommendationFixture()
	ctx := context.Background()
	repo.byID["u1"] = models.UserProfile{
		UserID: "u1",
		Skills: []string{"React"},
		Goals:  []string{"web development"},
	}

	first, err := svc.Recommendations(ctx, "u1")
	require.NoError(t, err)
	for _, r := range first {
		if r.Type == models.RecommendationSkill {
			assert.NotContains(t, r.Title, "React")
		}
	}
	assert.True(t, c.has(cache.RecommendationsKey("u1")))

	second, err := svc.Recommendations(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.reads)

	require.NoError(t, svc.Invalidate(ctx, "u1"))
	_, err = svc.Recommendations(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.reads)
}

func TestRecommendationsRecomputeAfterCorruptEntry(t *testing.T) {
	svc, repo, c := newRecommendationFixture()
	ctx := context.Background()
	repo.byID["u1"] = models.UserProfile{UserID: "u1", Goals: []string{"web development"}}
	key := cache.RecommendationsKey("u1")
	c.data[key] = []byte(`{"not":"a list"}`)

	recs, err := svc.Recommendations(ctx, "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
	assert.Equal(t, 1, repo.reads)

	again, err := svc.Recommendations(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, recs, again)
	assert.Equal(t, 1, repo.reads)
}

func TestRecommendationsProfileStoreDown(t *testing.T) {
	svc, repo, _ := newRecommendationFixture()
	repo.err = errors.New("timeout")

	_, err := svc.Recommendations(context.Background(), "u1")
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
}

func TestLearningPathAndInsights(t *testing.T) {
	svc, repo, _ := newRecommendationFixture()
	ctx := context.Background()
	repo.byID["u1"] = models.UserProfile{
		UserID: "u1",
		Skills: []string{"JavaScript", "React", "Git", "SQL", "Docker"},
		Goals:  []string{"data science"},
	}

	path, err := svc.LearningPath(ctx, "u1", "data science")
	require.NoError(t, err)
	assert.NotEmpty(t, path.Milestones)

	insights, err := svc.Insights(ctx, "u1")
	require.NoError(t, err)
	var types []models.InsightType
	for _, in := range insights {
		types = append(types, in.Type)
	}
	assert.Equal(t, []models.InsightType{models.InsightOpportunity, models.InsightWarning, models.InsightAchievement}, types)

	none, err := svc.Insights(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.LearningPath(ctx, "u1", "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
