package models

import "time"

type SessionStatus string

const (
	StatusScheduled  SessionStatus = "scheduled"
	StatusConfirmed  SessionStatus = "confirmed"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusCancelled  SessionStatus = "cancelled"
	StatusNoShow     SessionStatus = "no_show"
)

// Terminal reports whether no further transition is allowed out of s.
func (s SessionStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

type Assignee string

const (
	AssignedToMentor Assignee = "mentor"
	AssignedToMentee Assignee = "mentee"
	AssignedToBoth   Assignee = "both"
)

type ResourceType string

const (
	ResourceLink     ResourceType = "link"
	ResourceDocument ResourceType = "document"
	ResourceVideo    ResourceType = "video"
	ResourceArticle  ResourceType = "article"
)

type Session struct {
	SessionID string        `bson:"session_id" json:"id"`
	Status    SessionStatus `bson:"status" json:"status"`
	Type      string        `bson:"type,omitempty" json:"type,omitempty"`

	ScheduledAt *time.Time `bson:"scheduled_at,omitempty" json:"scheduled_at,omitempty"`
	StartTime   *time.Time `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime     *time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`

	// PlannedDuration is what the author booked; Duration is derived on completion.
	PlannedDuration int `bson:"planned_duration" json:"planned_duration"`
	Duration        int `bson:"duration" json:"duration"`

	Participants     Participants     `bson:"participants" json:"participants"`
	SessionData      SessionData      `bson:"session_data" json:"session_data"`
	TechnicalDetails TechnicalDetails `bson:"technical_details" json:"technical_details"`
	Feedback         Feedback         `bson:"feedback" json:"feedback"`

	// Analytics is attached once, when the session completes.
	Analytics *AnalyticsSummary `bson:"analytics,omitempty" json:"analytics,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Participants struct {
	MentorID string `bson:"mentor_id" json:"mentor_id"`
	MenteeID string `bson:"mentee_id" json:"mentee_id"`
}

type SessionData struct {
	Agenda      []string     `bson:"agenda" json:"agenda"`
	Notes       []string     `bson:"notes" json:"notes"`
	ActionItems []ActionItem `bson:"action_items" json:"action_items"`
	Resources   []Resource   `bson:"resources" json:"resources"`
	Whiteboard  *Whiteboard  `bson:"whiteboard,omitempty" json:"whiteboard,omitempty"`
}

type ActionItem struct {
	ID          string     `bson:"id" json:"id"`
	Description string     `bson:"description" json:"description"`
	AssignedTo  Assignee   `bson:"assigned_to" json:"assigned_to"`
	DueDate     *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Completed   bool       `bson:"completed" json:"completed"`
}

type Resource struct {
	ID    string       `bson:"id" json:"id"`
	Title string       `bson:"title" json:"title"`
	URL   string       `bson:"url" json:"url"`
	Type  ResourceType `bson:"type" json:"type"`
}

type Whiteboard struct {
	Content      string    `bson:"content" json:"content"`
	LastModified time.Time `bson:"last_modified" json:"last_modified"`
}

type TechnicalDetails struct {
	MeetingPlatform string        `bson:"meeting_platform" json:"meeting_platform"`
	MeetingID       string        `bson:"meeting_id,omitempty" json:"meeting_id,omitempty"`
	RecordingURL    string        `bson:"recording_url,omitempty" json:"recording_url,omitempty"`
	ChatLog         []ChatMessage `bson:"chat_log,omitempty" json:"chat_log,omitempty"`
}

type ChatMessage struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Sender    string    `bson:"sender" json:"sender"`
	Message   string    `bson:"message" json:"message"`
}

type Feedback struct {
	Mentor MentorFeedback `bson:"mentor" json:"mentor"`
	Mentee MenteeFeedback `bson:"mentee" json:"mentee"`
}

type MentorFeedback struct {
	Rating          *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Review          string   `bson:"review,omitempty" json:"review,omitempty"`
	MenteeProgress  string   `bson:"mentee_progress,omitempty" json:"mentee_progress,omitempty"`
	Recommendations string   `bson:"recommendations,omitempty" json:"recommendations,omitempty"`
}

type MenteeFeedback struct {
	Rating       *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	Review       string   `bson:"review,omitempty" json:"review,omitempty"`
	SessionValue string   `bson:"session_value,omitempty" json:"session_value,omitempty"`
	Suggestions  string   `bson:"suggestions,omitempty" json:"suggestions,omitempty"`
}

// AnalyticsSummary is the short form of SessionAnalytics kept on the session itself.
type AnalyticsSummary struct {
	EngagementScore    int      `bson:"engagement_score" json:"engagement_score"`
	ParticipationLevel string   `bson:"participation_level" json:"participation_level"`
	KeyTopics          []string `bson:"key_topics" json:"key_topics"`
	Sentiment          string   `bson:"sentiment" json:"sentiment"`
	FollowUpRequired   bool     `bson:"follow_up_required" json:"follow_up_required"`
}

// IsParticipant reports whether userID is the mentor or the mentee.
func (s *Session) IsParticipant(userID string) bool {
	return userID != "" && (userID == s.Participants.MentorID || userID == s.Participants.MenteeID)
}

// Clone returns a deep copy so callers never share slices with the store.
func (s Session) Clone() Session {
	out := s
	out.ScheduledAt = cloneTime(s.ScheduledAt)
	out.StartTime = cloneTime(s.StartTime)
	out.EndTime = cloneTime(s.EndTime)

	out.SessionData.Agenda = append([]string(nil), s.SessionData.Agenda...)
	out.SessionData.Notes = append([]string(nil), s.SessionData.Notes...)
	if s.SessionData.ActionItems != nil {
		out.SessionData.ActionItems = make([]ActionItem, len(s.SessionData.ActionItems))
		for i, it := range s.SessionData.ActionItems {
			it.DueDate = cloneTime(it.DueDate)
			out.SessionData.ActionItems[i] = it
		}
	}
	out.SessionData.Resources = append([]Resource(nil), s.SessionData.Resources...)
	if s.SessionData.Whiteboard != nil {
		wb := *s.SessionData.Whiteboard
		out.SessionData.Whiteboard = &wb
	}
	out.TechnicalDetails.ChatLog = append([]ChatMessage(nil), s.TechnicalDetails.ChatLog...)

	out.Feedback.Mentor.Rating = cloneFloat(s.Feedback.Mentor.Rating)
	out.Feedback.Mentee.Rating = cloneFloat(s.Feedback.Mentee.Rating)

	if s.Analytics != nil {
		a := *s.Analytics
		a.KeyTopics = append([]string(nil), s.Analytics.KeyTopics...)
		out.Analytics = &a
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
