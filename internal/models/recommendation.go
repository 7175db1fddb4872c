package models

type RecommendationType string

const (
	RecommendationSkill      RecommendationType = "skill"
	RecommendationCareer     RecommendationType = "career"
	RecommendationLearning   RecommendationType = "learning"
	RecommendationProject    RecommendationType = "project"
	RecommendationNetworking RecommendationType = "networking"
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PersonalizedRecommendation is computed per request and never persisted.
type PersonalizedRecommendation struct {
	ID                     string             `json:"id"`
	Type                   RecommendationType `json:"type"`
	Title                  string             `json:"title"`
	Description            string             `json:"description"`
	Priority               Priority           `json:"priority"`
	EstimatedTime          string             `json:"estimated_time"`
	Difficulty             Difficulty         `json:"difficulty"`
	RelevanceScore         int                `json:"relevance_score"`
	PersonalizationFactors []string           `json:"personalization_factors"`
	ActionItems            []string           `json:"action_items"`
	Resources              []string           `json:"resources"`
}

type LearningPath struct {
	ID            string      `json:"id"`
	Goal          string      `json:"goal"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Skills        []string    `json:"skills"`
	Milestones    []Milestone `json:"milestones"`
	TotalWeeks    int         `json:"total_weeks"`
	TotalDuration string      `json:"total_duration"`
	Difficulty    Difficulty  `json:"difficulty"`
}

type Milestone struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Skill    string `json:"skill"`
	Duration string `json:"duration"`
	Weeks    int    `json:"weeks"`
	Project  string `json:"project"`
}

type InsightType string

const (
	InsightOpportunity InsightType = "opportunity"
	InsightWarning     InsightType = "warning"
	InsightAchievement InsightType = "achievement"
)

type CareerInsight struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Actionable  bool        `json:"actionable"`
	Suggestions []string    `json:"suggestions,omitempty"`
}
