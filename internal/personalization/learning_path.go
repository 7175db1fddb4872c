package personalization

import (
	"fmt"
	"strings"

	"github.com/yoockh/mentorship/internal/models"
)

// LearningPath builds one milestone per skill the goal requires and the profile lacks.
func (e *Engine) LearningPath(p models.UserProfile, goal string) models.LearningPath {
	missing := missingSkills([]string{goal}, p.Skills)

	milestones := make([]models.Milestone, 0, len(missing))
	total := 0
	for i, skill := range missing {
		est := estimateFor(skillDifficulty(skill), skill)
		total += est.max
		milestones = append(milestones, models.Milestone{
			ID:       fmt.Sprintf("milestone-%d", i+1),
			Title:    "Master " + skill,
			Skill:    skill,
			Duration: est.String(),
			Weeks:    est.max,
			Project:  fmt.Sprintf("Build a small %s project that supports your %s goal", skill, goal),
		})
	}

	return models.LearningPath{
		ID:            "path-" + slug(goal),
		Goal:          goal,
		Title:         "Path to " + goal,
		Description:   fmt.Sprintf("%d skills between you and %s.", len(missing), goal),
		Skills:        missing,
		Milestones:    milestones,
		TotalWeeks:    total,
		TotalDuration: formatWeeks(total),
		Difficulty:    pathDifficulty(p.ExperienceLevel, len(missing)),
	}
}

// formatWeeks buckets a week count: under 4 stays in weeks, under 12 is weeks/4 months,
// and longer paths are weeks/12 months. Both divisions round up.
func formatWeeks(weeks int) string {
	switch {
	case weeks < 4:
		return plural(weeks, "week")
	case weeks < 12:
		return plural(ceilDiv(weeks, 4), "month")
	default:
		return plural(ceilDiv(weeks, 12), "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func pathDifficulty(level string, missing int) models.Difficulty {
	level = strings.ToLower(strings.TrimSpace(level))
	switch {
	case level == string(models.DifficultyBeginner) || missing <= 2:
		return models.DifficultyBeginner
	case level == string(models.DifficultyAdvanced) || missing >= 5:
		return models.DifficultyAdvanced
	default:
		return models.DifficultyIntermediate
	}
}
