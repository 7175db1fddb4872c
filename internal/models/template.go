package models

import "time"

type TemplateCategory string

const (
	CategoryCareer    TemplateCategory = "career"
	CategoryTechnical TemplateCategory = "technical"
	CategorySoftSkill TemplateCategory = "soft_skills"
	CategoryPlanning  TemplateCategory = "goal_setting"
	CategoryReview    TemplateCategory = "code_review"
	CategoryGeneral   TemplateCategory = "general"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type SessionTemplate struct {
	TemplateID  string              `bson:"template_id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description" json:"description"`
	Duration    int                 `bson:"duration" json:"duration"`
	Agenda      []string            `bson:"agenda" json:"agenda"`
	Preparation TemplatePreparation `bson:"preparation" json:"preparation"`
	Resources   []TemplateResource  `bson:"resources" json:"resources"`
	Category    TemplateCategory    `bson:"category" json:"category"`
	Difficulty  Difficulty          `bson:"difficulty" json:"difficulty"`
	Tags        []string            `bson:"tags" json:"tags"`
	CreatedBy   string              `bson:"created_by" json:"created_by"`
	IsPublic    bool                `bson:"is_public" json:"is_public"`
	UsageCount  int                 `bson:"usage_count" json:"usage_count"`
	Rating      float64             `bson:"rating" json:"rating"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}

type TemplatePreparation struct {
	Mentee []string `bson:"mentee" json:"mentee"`
	Mentor []string `bson:"mentor" json:"mentor"`
}

// TemplateResource has no id; one is minted each time the template is applied.
type TemplateResource struct {
	Title string       `bson:"title" json:"title"`
	URL   string       `bson:"url" json:"url"`
	Type  ResourceType `bson:"type" json:"type"`
}

func (t SessionTemplate) Clone() SessionTemplate {
	out := t
	out.Agenda = append([]string(nil), t.Agenda...)
	out.Preparation.Mentee = append([]string(nil), t.Preparation.Mentee...)
	out.Preparation.Mentor = append([]string(nil), t.Preparation.Mentor...)
	out.Resources = append([]TemplateResource(nil), t.Resources...)
	out.Tags = append([]string(nil), t.Tags...)
	return out
}
