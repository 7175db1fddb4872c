package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/mentorship/internal/models"
)

var at = time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)

func rating(v float64) *float64 { return &v }

func baseSession() models.Session {
	return models.Session{
		SessionID:    "s1",
		Status:       models.StatusCompleted,
		Participants: models.Participants{MentorID: "mentor-1", MenteeID: "mentee-1"},
	}
}

func chat(sender string, msgs ...string) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, models.ChatMessage{Timestamp: at, Sender: sender, Message: m})
	}
	return out
}

func TestGenerateEmptySessionDefaults(t *testing.T) {
	a := NewGenerator(nil).Generate(baseSession(), at)

	assert.Equal(t, 50.0, a.MenteeParticipation)
	assert.Equal(t, 50.0, a.MentorParticipation)
	assert.Zero(t, a.InteractionCount)
	assert.Zero(t, a.QuestionCount)
	assert.Zero(t, a.SatisfactionScore)
	assert.Empty(t, a.TopicsCovered)
	assert.Empty(t, a.KeyInsights)
	assert.Empty(t, a.GoalsAchieved)
	assert.Empty(t, a.NextSteps)
	assert.False(t, a.FollowUpScheduled)
	assert.Equal(t, models.ConnectionExcellent, a.ConnectionQuality)
	assert.Equal(t, at, a.GeneratedAt)
}

func TestGenerateParticipationAndQuestions(t *testing.T) {
	s := baseSession()
	s.TechnicalDetails.ChatLog = append(chat("mentee-1", "how do I start?", "ok", "and then?"), chat("mentor-1", "read the docs")...)

	a := NewGenerator(nil).Generate(s, at)

	assert.Equal(t, 75.0, a.MenteeParticipation)
	assert.Equal(t, 25.0, a.MentorParticipation)
	assert.Equal(t, 4, a.InteractionCount)
	assert.Equal(t, 2, a.QuestionCount)
}

func TestGenerateRoleNamesCountAsSenders(t *testing.T) {
	s := baseSession()
	s.TechnicalDetails.ChatLog = append(chat("Mentee", "hi"), chat("mentor", "hello")...)

	a := NewGenerator(nil).Generate(s, at)

	assert.Equal(t, 50.0, a.MenteeParticipation)
	assert.Equal(t, 50.0, a.MentorParticipation)
}

func TestConnectionQualityThresholds(t *testing.T) {
	tests := []struct {
		issues int
		want   models.ConnectionQuality
	}{
		{0, models.ConnectionExcellent},
		{1, models.ConnectionGood},
		{2, models.ConnectionGood},
		{3, models.ConnectionFair},
		{4, models.ConnectionFair},
		{5, models.ConnectionPoor},
		{9, models.ConnectionPoor},
	}

	keywords := []string{"my connection dropped", "no AUDIO", "video froze", "lots of lag"}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d issues", tc.issues), func(t *testing.T) {
			s := baseSession()
			for i := 0; i < tc.issues; i++ {
				s.TechnicalDetails.ChatLog = append(s.TechnicalDetails.ChatLog, chat("mentee-1", keywords[i%len(keywords)])...)
			}
			s.TechnicalDetails.ChatLog = append(s.TechnicalDetails.ChatLog, chat("mentor-1", "all good here")...)

			a := NewGenerator(nil).Generate(s, at)
			assert.Equal(t, tc.want, a.ConnectionQuality)
		})
	}
}

func TestSatisfactionScore(t *testing.T) {
	tests := []struct {
		name   string
		mentor *float64
		mentee *float64
		want   float64
	}{
		{"both", rating(8), rating(6), 7.0},
		{"mentor only", rating(9), nil, 9},
		{"mentee only", nil, rating(4), 4},
		{"none", nil, nil, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := baseSession()
			s.Feedback.Mentor.Rating = tc.mentor
			s.Feedback.Mentee.Rating = tc.mentee

			a := NewGenerator(nil).Generate(s, at)
			assert.Equal(t, tc.want, a.SatisfactionScore)
		})
	}
}

func TestNotesHeuristics(t *testing.T) {
	s := baseSession()
	s.SessionData.Agenda = []string{"Career goals"}
	s.SessionData.Notes = []string{
		"Key INSIGHT: pair programming helps",
		"Mentee learned about testing",
		"We discovered a gap in SQL",
		"Achieved the first milestone",
		"Schedule a follow-up next week",
	}
	s.SessionData.ActionItems = []models.ActionItem{
		{ID: "a1", Description: "Write tests", Completed: false},
		{ID: "a2", Description: "Read chapter 3", Completed: true},
	}

	a := NewGenerator(nil).Generate(s, at)

	assert.Equal(t, []string{
		"Key INSIGHT: pair programming helps",
		"Mentee learned about testing",
		"We discovered a gap in SQL",
	}, a.KeyInsights)
	assert.Equal(t, []string{"Achieved the first milestone"}, a.GoalsAchieved)
	assert.Equal(t, []string{"Write tests"}, a.NextSteps)
	assert.True(t, a.FollowUpScheduled)
	require.NotEmpty(t, a.TopicsCovered)
	assert.Equal(t, "Career goals", a.TopicsCovered[0])
	assert.LessOrEqual(t, len(a.TopicsCovered), 11)
}

func TestInsightsCappedAtFive(t *testing.T) {
	s := baseSession()
	for i := 0; i < 8; i++ {
		s.SessionData.Notes = append(s.SessionData.Notes, fmt.Sprintf("learned thing %d", i))
	}

	a := NewGenerator(nil).Generate(s, at)
	assert.Len(t, a.KeyInsights, 5)
	assert.Equal(t, "learned thing 0", a.KeyInsights[0])
}

func TestNextSessionMentionSchedulesFollowUp(t *testing.T) {
	s := baseSession()
	s.SessionData.Notes = []string{"Talk about this in the Next Session"}

	a := NewGenerator(nil).Generate(s, at)
	assert.True(t, a.FollowUpScheduled)
}

func TestSummarize(t *testing.T) {
	a := models.SessionAnalytics{
		MenteeParticipation: 66.6,
		TopicsCovered:       []string{"a", "b", "c", "d", "e", "f"},
		SatisfactionScore:   7,
	}

	sum := Summarize(a)

	assert.Equal(t, 67, sum.EngagementScore)
	assert.Equal(t, "high", sum.ParticipationLevel)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, sum.KeyTopics)
	assert.Equal(t, "positive", sum.Sentiment)
	assert.False(t, sum.FollowUpRequired)
}

func TestSummarizeDefaults(t *testing.T) {
	sum := Summarize(NewGenerator(nil).Generate(baseSession(), at))

	assert.Equal(t, 50, sum.EngagementScore)
	assert.Equal(t, "medium", sum.ParticipationLevel)
	assert.Equal(t, "neutral", sum.Sentiment)
	assert.Empty(t, sum.KeyTopics)
}
