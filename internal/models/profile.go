package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// UserProfile is the snapshot the personalization engine reads. It is owned by the
// profile store; the engine never fetches or caches it.
type UserProfile struct {
	UserID          string   `json:"user_id"`
	AgeBracket      string   `json:"age_bracket,omitempty"`
	Interests       []string `json:"interests"`
	Goals           []string `json:"goals"`
	ExperienceLevel string   `json:"experience_level"`
	Skills          []string `json:"skills"`

	LearningPreferences *LearningPreferences `json:"learning_preferences,omitempty"`
	CareerPreferences   *CareerPreferences   `json:"career_preferences,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

type LearningPreferences struct {
	Pace      string   `json:"pace,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	TimeOfDay string   `json:"time_of_day,omitempty"`
	Duration  string   `json:"duration,omitempty"`
}

type CareerPreferences struct {
	Industries         []string `json:"industries,omitempty"`
	CompanySize        string   `json:"company_size,omitempty"`
	WorkEnvironment    string   `json:"work_environment,omitempty"`
	SalaryExpectations string   `json:"salary_expectations,omitempty"`
	WorkLifeBalance    string   `json:"work_life_balance,omitempty"`
}

// IsEmpty is true when the profile carries nothing the engine can score against: no
// goals, interests, skills, experience level, preferred industries or learning formats.
func (p *UserProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	if len(p.Goals) > 0 || len(p.Interests) > 0 || len(p.Skills) > 0 {
		return false
	}
	if strings.TrimSpace(p.ExperienceLevel) != "" {
		return false
	}
	if p.CareerPreferences != nil && len(p.CareerPreferences.Industries) > 0 {
		return false
	}
	if p.LearningPreferences != nil && len(p.LearningPreferences.Formats) > 0 {
		return false
	}
	return true
}

// ProfileRecord is the postgres row behind UserProfile.
type ProfileRecord struct {
	UserID          string         `gorm:"column:user_id;type:text;primaryKey"`
	AgeBracket      string         `gorm:"column:age_bracket;type:text"`
	Interests       pq.StringArray `gorm:"column:interests;type:text[]"`
	Goals           pq.StringArray `gorm:"column:goals;type:text[]"`
	ExperienceLevel string         `gorm:"column:experience_level;type:text"`
	Skills          pq.StringArray `gorm:"column:skills;type:text[]"`

	LearningPreferences datatypes.JSONType[*LearningPreferences] `gorm:"column:learning_preferences;type:jsonb"`
	CareerPreferences   datatypes.JSONType[*CareerPreferences]   `gorm:"column:career_preferences;type:jsonb"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz"`
}

func (ProfileRecord) TableName() string { return "profiles" }

func (r ProfileRecord) ToProfile() *UserProfile {
	return &UserProfile{
		UserID:              r.UserID,
		AgeBracket:          r.AgeBracket,
		Interests:           []string(r.Interests),
		Goals:               []string(r.Goals),
		ExperienceLevel:     r.ExperienceLevel,
		Skills:              []string(r.Skills),
		LearningPreferences: r.LearningPreferences.Data(),
		CareerPreferences:   r.CareerPreferences.Data(),
		UpdatedAt:           r.UpdatedAt,
	}
}

func NewProfileRecord(p *UserProfile) ProfileRecord {
	return ProfileRecord{
		UserID:              p.UserID,
		AgeBracket:          p.AgeBracket,
		Interests:           pq.StringArray(p.Interests),
		Goals:               pq.StringArray(p.Goals),
		ExperienceLevel:     p.ExperienceLevel,
		Skills:              pq.StringArray(p.Skills),
		LearningPreferences: datatypes.NewJSONType(p.LearningPreferences),
		CareerPreferences:   datatypes.NewJSONType(p.CareerPreferences),
		UpdatedAt:           p.UpdatedAt,
	}
}
