package personalization

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yoockh/mentorship/internal/models"
)

// MaxRecommendations caps the merged result of Recommend.
const MaxRecommendations = 10

// Engine scores a profile snapshot into recommendations, learning paths and career
// insights. It holds no state and is safe for concurrent use.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Recommend runs the five generators and merges their output: urgent items first, then
// by descending relevance, ties keeping generator order. A nil or empty profile yields
// the fixed default list.
func (e *Engine) Recommend(p *models.UserProfile) []models.PersonalizedRecommendation {
	if p.IsEmpty() {
		return defaultRecommendations()
	}

	var all []models.PersonalizedRecommendation
	all = append(all, skillRecommendations(p)...)
	all = append(all, careerRecommendations(p)...)
	all = append(all, learningRecommendations(p)...)
	all = append(all, projectRecommendations(p)...)
	all = append(all, networkingRecommendations()...)

	sort.SliceStable(all, func(i, j int) bool {
		ui, uj := all[i].Priority == models.PriorityUrgent, all[j].Priority == models.PriorityUrgent
		if ui != uj {
			return ui
		}
		return all[i].RelevanceScore > all[j].RelevanceScore
	})

	if len(all) > MaxRecommendations {
		all = all[:MaxRecommendations]
	}
	return all
}

func skillRecommendations(p *models.UserProfile) []models.PersonalizedRecommendation {
	gaps := missingSkills(p.Goals, p.Skills)
	out := make([]models.PersonalizedRecommendation, 0, len(gaps))

	for _, skill := range gaps {
		goalMatch := mentionedIn(p.Goals, skill)
		interestMatch := mentionedIn(p.Interests, skill)
		highDemand := containsFold(highDemandSkills, skill)

		score := 0
		factors := []string{"Required for your stated goals"}
		if goalMatch {
			score += 3
			factors = append(factors, "Named in your goals")
		}
		if interestMatch {
			score += 2
			factors = append(factors, "Matches your interests")
		}
		if highDemand {
			score++
			factors = append(factors, "High demand in the job market")
		}

		relevance := 20
		if goalMatch {
			relevance += 40
		}
		if interestMatch {
			relevance += 30
		}
		if relevance > 100 {
			relevance = 100
		}

		diff := skillDifficulty(skill)
		out = append(out, models.PersonalizedRecommendation{
			ID:                     "skill-" + slug(skill),
			Type:                   models.RecommendationSkill,
			Title:                  "Learn " + skill,
			Description:            fmt.Sprintf("%s is a gap between your current skills and your goals.", skill),
			Priority:               priorityFor(score),
			EstimatedTime:          estimateFor(diff, skill).String(),
			Difficulty:             diff,
			RelevanceScore:         relevance,
			PersonalizationFactors: factors,
			ActionItems: []string{
				fmt.Sprintf("Complete an introductory %s course", skill),
				fmt.Sprintf("Practice %s with small daily exercises", skill),
				fmt.Sprintf("Ask your mentor to review your %s work", skill),
			},
			Resources: []string{
				skill + " official documentation",
				skill + " beginner tutorial",
			},
		})
	}
	return out
}

func priorityFor(score int) models.Priority {
	switch {
	case score >= 4:
		return models.PriorityUrgent
	case score >= 3:
		return models.PriorityHigh
	case score >= 2:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func careerRecommendations(p *models.UserProfile) []models.PersonalizedRecommendation {
	var out []models.PersonalizedRecommendation

	if strings.EqualFold(p.ExperienceLevel, string(models.DifficultyBeginner)) {
		out = append(out, models.PersonalizedRecommendation{
			ID:                     "career-internships",
			Type:                   models.RecommendationCareer,
			Title:                  "Apply for internships",
			Description:            "Internships turn early skills into real experience and references.",
			Priority:               models.PriorityHigh,
			EstimatedTime:          "1-3 months",
			Difficulty:             models.DifficultyBeginner,
			RelevanceScore:         90,
			PersonalizationFactors: []string{"Beginner experience level"},
			ActionItems: []string{
				"Polish your resume with your mentor",
				"Apply to five internships this month",
			},
			Resources: []string{"Internship job boards", "Resume review checklist"},
		})
	}

	if p.CareerPreferences != nil {
		for _, industry := range p.CareerPreferences.Industries {
			if strings.TrimSpace(industry) == "" {
				continue
			}
			out = append(out, models.PersonalizedRecommendation{
				ID:                     "career-industry-" + slug(industry),
				Type:                   models.RecommendationCareer,
				Title:                  "Explore " + industry,
				Description:            fmt.Sprintf("Learn how teams in %s work and what they hire for.", industry),
				Priority:               models.PriorityMedium,
				EstimatedTime:          "2-4 weeks",
				Difficulty:             models.DifficultyIntermediate,
				RelevanceScore:         80,
				PersonalizationFactors: []string{"Preferred industry: " + industry},
				ActionItems: []string{
					fmt.Sprintf("Research three companies in %s", industry),
					fmt.Sprintf("Talk to someone working in %s", industry),
				},
				Resources: []string{industry + " industry reports"},
			})
		}
	}
	return out
}

func learningRecommendations(p *models.UserProfile) []models.PersonalizedRecommendation {
	var out []models.PersonalizedRecommendation

	if p.LearningPreferences != nil {
		for _, format := range p.LearningPreferences.Formats {
			if strings.TrimSpace(format) == "" {
				continue
			}
			out = append(out, models.PersonalizedRecommendation{
				ID:                     "learning-format-" + slug(format),
				Type:                   models.RecommendationLearning,
				Title:                  fmt.Sprintf("Find %s content for your goals", format),
				Description:            fmt.Sprintf("You learn best through %s; build your plan around it.", format),
				Priority:               models.PriorityMedium,
				EstimatedTime:          "Ongoing",
				Difficulty:             models.DifficultyBeginner,
				RelevanceScore:         75,
				PersonalizationFactors: []string{"Preferred learning format: " + format},
				ActionItems:            []string{fmt.Sprintf("Pick one %s resource per week", format)},
			})
		}
	}

	for _, interest := range p.Interests {
		if strings.TrimSpace(interest) == "" {
			continue
		}
		out = append(out, models.PersonalizedRecommendation{
			ID:                     "learning-interest-" + slug(interest),
			Type:                   models.RecommendationLearning,
			Title:                  "Deepen your knowledge of " + interest,
			Description:            fmt.Sprintf("Build on your interest in %s with structured study.", interest),
			Priority:               models.PriorityMedium,
			EstimatedTime:          "2-4 weeks",
			Difficulty:             models.DifficultyIntermediate,
			RelevanceScore:         85,
			PersonalizationFactors: []string{"Interest: " + interest},
			ActionItems: []string{
				fmt.Sprintf("Follow a course on %s", interest),
				fmt.Sprintf("Discuss %s in your next mentorship session", interest),
			},
		})
	}
	return out
}

func projectRecommendations(p *models.UserProfile) []models.PersonalizedRecommendation {
	var out []models.PersonalizedRecommendation
	for _, skill := range p.Skills {
		if strings.TrimSpace(skill) == "" {
			continue
		}
		out = append(out, models.PersonalizedRecommendation{
			ID:                     "project-" + slug(skill),
			Type:                   models.RecommendationProject,
			Title:                  "Build a project with " + skill,
			Description:            fmt.Sprintf("A portfolio project shows what you can do with %s.", skill),
			Priority:               models.PriorityHigh,
			EstimatedTime:          "2-4 weeks",
			Difficulty:             models.DifficultyIntermediate,
			RelevanceScore:         90,
			PersonalizationFactors: []string{"Existing skill: " + skill},
			ActionItems: []string{
				"Pick a small real-world problem",
				"Publish the code and a short write-up",
			},
		})
	}
	return out
}

func networkingRecommendations() []models.PersonalizedRecommendation {
	return []models.PersonalizedRecommendation{{
		ID:                     "networking-communities",
		Type:                   models.RecommendationNetworking,
		Title:                  "Join professional communities",
		Description:            "Communities surface opportunities, feedback and peers to learn with.",
		Priority:               models.PriorityMedium,
		EstimatedTime:          "Ongoing",
		Difficulty:             models.DifficultyBeginner,
		RelevanceScore:         80,
		PersonalizationFactors: []string{"Networking accelerates every career stage"},
		ActionItems: []string{
			"Join one online community in your field",
			"Attend a local meetup this month",
		},
	}}
}

// defaultRecommendations is what a user without a usable profile sees.
func defaultRecommendations() []models.PersonalizedRecommendation {
	return []models.PersonalizedRecommendation{
		{
			ID:                     "default-complete-profile",
			Type:                   models.RecommendationLearning,
			Title:                  "Complete your profile",
			Description:            "Add your goals, interests and skills to get personalized suggestions.",
			Priority:               models.PriorityHigh,
			EstimatedTime:          "10 minutes",
			Difficulty:             models.DifficultyBeginner,
			RelevanceScore:         100,
			PersonalizationFactors: []string{"Profile is incomplete"},
			ActionItems:            []string{"Add at least one goal", "List the skills you already have"},
		},
		{
			ID:                     "default-book-session",
			Type:                   models.RecommendationCareer,
			Title:                  "Book your first mentorship session",
			Description:            "A mentor can help you shape goals and a learning plan.",
			Priority:               models.PriorityMedium,
			EstimatedTime:          "1 hour",
			Difficulty:             models.DifficultyBeginner,
			RelevanceScore:         80,
			PersonalizationFactors: []string{"New to the platform"},
			ActionItems:            []string{"Browse mentors", "Schedule an introductory session"},
		},
		networkingRecommendations()[0],
	}
}
