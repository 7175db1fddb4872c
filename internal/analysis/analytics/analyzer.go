package analytics

import (
	"strings"
	"unicode/utf8"

	"github.com/yoockh/mentorship/internal/models"
)

// TextAnalyzer extracts the text-derived signals of a session. KeywordAnalyzer is the
// only implementation; the generator depends on this interface so the heuristics can
// be replaced without touching the lifecycle.
type TextAnalyzer interface {
	Topics(notes []string, limit int) []string
	Insights(notes []string) []string
	Achievements(notes []string) []string
	MentionsFollowUp(notes []string) bool
	IsQuestion(message string) bool
	IsConnectivityIssue(message string) bool
}

var (
	insightKeywords      = []string{"insight", "learned", "discovered"}
	achievementKeywords  = []string{"achieved", "completed", "accomplished"}
	followUpKeywords     = []string{"follow-up", "next session"}
	connectivityKeywords = []string{"connection", "audio", "video", "lag"}
)

const (
	minTopicWordLen = 4
	maxInsights     = 5
)

// KeywordAnalyzer matches fixed keyword lists by case-insensitive substring search and
// tokenizes on whitespace. It is deliberately naive. Only the written text of a note is
// examined; the timestamp and author prefix is skipped.
type KeywordAnalyzer struct{}

func (KeywordAnalyzer) Topics(notes []string, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]struct{})
	for _, note := range notes {
		for _, w := range strings.Fields(models.NoteText(note)) {
			if len(out) >= limit {
				return out
			}
			if utf8.RuneCountInString(w) < minTopicWordLen {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

func (KeywordAnalyzer) Insights(notes []string) []string {
	out := make([]string, 0)
	for _, n := range notes {
		if len(out) == maxInsights {
			break
		}
		if containsAny(models.NoteText(n), insightKeywords) {
			out = append(out, n)
		}
	}
	return out
}

func (KeywordAnalyzer) Achievements(notes []string) []string {
	out := make([]string, 0)
	for _, n := range notes {
		if containsAny(models.NoteText(n), achievementKeywords) {
			out = append(out, n)
		}
	}
	return out
}

func (KeywordAnalyzer) MentionsFollowUp(notes []string) bool {
	for _, n := range notes {
		if containsAny(models.NoteText(n), followUpKeywords) {
			return true
		}
	}
	return false
}

func (KeywordAnalyzer) IsQuestion(message string) bool {
	return strings.Contains(message, "?")
}

func (KeywordAnalyzer) IsConnectivityIssue(message string) bool {
	return containsAny(message, connectivityKeywords)
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
