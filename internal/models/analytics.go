package models

import "time"

type ConnectionQuality string

const (
	ConnectionExcellent ConnectionQuality = "excellent"
	ConnectionGood      ConnectionQuality = "good"
	ConnectionFair      ConnectionQuality = "fair"
	ConnectionPoor      ConnectionQuality = "poor"
)

// SessionAnalytics is the detailed post-completion record. One per session.
type SessionAnalytics struct {
	SessionID string `bson:"session_id" json:"session_id"`

	MenteeParticipation float64 `bson:"mentee_participation" json:"mentee_participation"`
	MentorParticipation float64 `bson:"mentor_participation" json:"mentor_participation"`
	InteractionCount    int     `bson:"interaction_count" json:"interaction_count"`
	QuestionCount       int     `bson:"question_count" json:"question_count"`

	TopicsCovered     []string `bson:"topics_covered" json:"topics_covered"`
	KeyInsights       []string `bson:"key_insights" json:"key_insights"`
	GoalsAchieved     []string `bson:"goals_achieved" json:"goals_achieved"`
	NextSteps         []string `bson:"next_steps" json:"next_steps"`
	FollowUpScheduled bool     `bson:"follow_up_scheduled" json:"follow_up_scheduled"`

	SatisfactionScore float64           `bson:"satisfaction_score" json:"satisfaction_score"`
	ConnectionQuality ConnectionQuality `bson:"connection_quality" json:"connection_quality"`

	GeneratedAt time.Time `bson:"generated_at" json:"generated_at"`
}

func (a SessionAnalytics) Clone() SessionAnalytics {
	out := a
	out.TopicsCovered = append([]string(nil), a.TopicsCovered...)
	out.KeyInsights = append([]string(nil), a.KeyInsights...)
	out.GoalsAchieved = append([]string(nil), a.GoalsAchieved...)
	out.NextSteps = append([]string(nil), a.NextSteps...)
	return out
}
