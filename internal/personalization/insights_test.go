package personalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/mentorship/internal/models"
)

func TestInsightsAllFire(t *testing.T) {
	got := NewEngine().Insights(models.UserProfile{
		Goals:  []string{"Become a Data Science lead"},
		Skills: []string{"javascript", "SQL", "Excel", "Tableau", "Statistics"},
	})

	require.Len(t, got, 3)
	assert.Equal(t, models.InsightOpportunity, got[0].Type)
	assert.Equal(t, models.InsightWarning, got[1].Type)
	assert.Equal(t, models.InsightAchievement, got[2].Type)
}

func TestInsightsNone(t *testing.T) {
	got := NewEngine().Insights(models.UserProfile{
		Goals:  []string{"data science"},
		Skills: []string{"Python 3"},
	})
	assert.Empty(t, got)
}

func TestInsightsReactOnly(t *testing.T) {
	got := NewEngine().Insights(models.UserProfile{Skills: []string{"React"}})

	require.Len(t, got, 1)
	assert.Equal(t, "insight-frontend-demand", got[0].ID)
}
