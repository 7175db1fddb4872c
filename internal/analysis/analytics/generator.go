package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/yoockh/mentorship/internal/models"
)

const (
	// Participation reported when the chat log is empty: unknown, not zero.
	defaultParticipation = 50.0
	maxNoteTopics        = 10
	maxKeyTopics         = 5
)

// Generator turns a completed session into its analytics record. It never fails:
// sparse input degrades to the documented defaults.
type Generator struct {
	text TextAnalyzer
}

func NewGenerator(text TextAnalyzer) *Generator {
	if text == nil {
		text = KeywordAnalyzer{}
	}
	return &Generator{text: text}
}

func (g *Generator) Generate(s models.Session, at time.Time) models.SessionAnalytics {
	chat := s.TechnicalDetails.ChatLog
	notes := s.SessionData.Notes

	mentee, mentor := participation(s)

	questions, issues := 0, 0
	for _, m := range chat {
		if g.text.IsQuestion(m.Message) {
			questions++
		}
		if g.text.IsConnectivityIssue(m.Message) {
			issues++
		}
	}

	topics := append([]string(nil), s.SessionData.Agenda...)
	topics = append(topics, g.text.Topics(notes, maxNoteTopics)...)

	nextSteps := make([]string, 0)
	for _, it := range s.SessionData.ActionItems {
		if !it.Completed {
			nextSteps = append(nextSteps, it.Description)
		}
	}

	return models.SessionAnalytics{
		SessionID:           s.SessionID,
		MenteeParticipation: mentee,
		MentorParticipation: mentor,
		InteractionCount:    len(chat),
		QuestionCount:       questions,
		TopicsCovered:       topics,
		KeyInsights:         g.text.Insights(notes),
		GoalsAchieved:       g.text.Achievements(notes),
		NextSteps:           nextSteps,
		FollowUpScheduled:   g.text.MentionsFollowUp(notes),
		SatisfactionScore:   satisfaction(s.Feedback),
		ConnectionQuality:   connectionQuality(issues),
		GeneratedAt:         at.UTC(),
	}
}

// Summarize derives the short summary kept on the session.
func Summarize(a models.SessionAnalytics) models.AnalyticsSummary {
	engagement := int(math.Round(a.MenteeParticipation))

	level := "low"
	switch {
	case engagement >= 60:
		level = "high"
	case engagement >= 30:
		level = "medium"
	}

	sentiment := "neutral"
	switch {
	case a.SatisfactionScore >= 7:
		sentiment = "positive"
	case a.SatisfactionScore > 0 && a.SatisfactionScore < 4:
		sentiment = "negative"
	}

	n := len(a.TopicsCovered)
	if n > maxKeyTopics {
		n = maxKeyTopics
	}

	return models.AnalyticsSummary{
		EngagementScore:    engagement,
		ParticipationLevel: level,
		KeyTopics:          append([]string(nil), a.TopicsCovered[:n]...),
		Sentiment:          sentiment,
		FollowUpRequired:   a.FollowUpScheduled || len(a.NextSteps) > 0,
	}
}

// participation returns the share of chat messages written by the mentee and by the
// mentor, as percentages. A sender counts for a role when it is that participant's id
// or the role name itself.
func participation(s models.Session) (mentee, mentor float64) {
	chat := s.TechnicalDetails.ChatLog
	if len(chat) == 0 {
		return defaultParticipation, defaultParticipation
	}

	var byMentee, byMentor int
	for _, m := range chat {
		switch {
		case m.Sender == s.Participants.MenteeID || strings.EqualFold(m.Sender, string(models.AssignedToMentee)):
			byMentee++
		case m.Sender == s.Participants.MentorID || strings.EqualFold(m.Sender, string(models.AssignedToMentor)):
			byMentor++
		}
	}

	total := float64(len(chat))
	return float64(byMentee) / total * 100, float64(byMentor) / total * 100
}

func satisfaction(f models.Feedback) float64 {
	mentor, mentee := f.Mentor.Rating, f.Mentee.Rating
	switch {
	case mentor != nil && mentee != nil:
		return (*mentor + *mentee) / 2
	case mentor != nil:
		return *mentor
	case mentee != nil:
		return *mentee
	default:
		return 0
	}
}

func connectionQuality(issues int) models.ConnectionQuality {
	switch {
	case issues == 0:
		return models.ConnectionExcellent
	case issues <= 2:
		return models.ConnectionGood
	case issues <= 4:
		return models.ConnectionFair
	default:
		return models.ConnectionPoor
	}
}
