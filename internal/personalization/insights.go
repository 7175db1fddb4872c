package personalization

import (
	"strings"

	"github.com/yoockh/mentorship/internal/models"
)

const specializationSkillCount = 5

// Insights evaluates fixed predicates over the profile in a fixed order. Any number of
// them may fire.
func (e *Engine) Insights(p models.UserProfile) []models.CareerInsight {
	out := make([]models.CareerInsight, 0, 3)

	if containsFold(p.Skills, "JavaScript") || containsFold(p.Skills, "React") {
		out = append(out, models.CareerInsight{
			ID:          "insight-frontend-demand",
			Type:        models.InsightOpportunity,
			Title:       "Frontend skills are in high demand",
			Description: "Companies are actively hiring JavaScript and React developers.",
			Actionable:  true,
			Suggestions: []string{"Add TypeScript to your toolkit", "Showcase a React project in your portfolio"},
		})
	}

	if mentionsAny(p.Goals, "data science") && !mentionsAny(p.Skills, "python") {
		out = append(out, models.CareerInsight{
			ID:          "insight-missing-python",
			Type:        models.InsightWarning,
			Title:       "Python is missing for your data science goal",
			Description: "Python is the core language of most data science work.",
			Actionable:  true,
			Suggestions: []string{"Start a Python fundamentals course", "Practice with pandas on a public dataset"},
		})
	}

	if len(p.Skills) >= specializationSkillCount {
		out = append(out, models.CareerInsight{
			ID:          "insight-specialization",
			Type:        models.InsightAchievement,
			Title:       "You have a broad skill set",
			Description: "With this many skills, specializing can set you apart.",
			Actionable:  true,
			Suggestions: []string{"Choose one area to go deep in", "Discuss a specialization plan with your mentor"},
		})
	}
	return out
}

func mentionsAny(list []string, phrase string) bool {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), phrase) {
			return true
		}
	}
	return false
}
