package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/mentorship/internal/events"
	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/store"
	"github.com/yoockh/mentorship/internal/utils"
)

func TestRegisterForcesScheduled(t *testing.T) {
	f := newFixture(t)
	id := f.register(t)

	s, err := f.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, s.Status)
	assert.Equal(t, []string{"intro"}, s.SessionData.Agenda)
	assert.Equal(t, f.clock.Now(), s.CreatedAt)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.sessions.Register(ctx, NewSession{MentorID: mentorID})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.sessions.Register(ctx, NewSession{MentorID: mentorID, MenteeID: mentorID})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestStartTwiceKeepsStartTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)

	require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
	first, _ := f.sessions.Get(ctx, id)
	require.NotNil(t, first.StartTime)

	f.clock.Advance(time.Minute)
	out := f.sessions.Start(ctx, id, mentorID)
	assert.False(t, out.OK)
	assert.Equal(t, utils.ReasonInvalidState, out.Reason)

	second, _ := f.sessions.Get(ctx, id)
	assert.Equal(t, *first.StartTime, *second.StartTime)
}

func TestStartRequiresMentor(t *testing.T) {
	f := newFixture(t)
	id := f.register(t)

	out := f.sessions.Start(context.Background(), id, menteeID)
	assert.False(t, out.OK)
	assert.Equal(t, utils.ReasonActorMismatch, out.Reason)

	s, _ := f.sessions.Get(context.Background(), id)
	assert.Equal(t, models.StatusScheduled, s.Status)
}

func TestUnknownSession(t *testing.T) {
	f := newFixture(t)
	out := f.sessions.Start(context.Background(), "missing", mentorID)
	assert.Equal(t, utils.ReasonNotFound, out.Reason)

	_, err := f.sessions.Get(context.Background(), "missing")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestEndComputesDurationAndAnalyticsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)

	require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
	f.clock.Advance(5400000 * time.Millisecond)
	require.True(t, f.sessions.End(ctx, id, mentorID).OK)

	s, err := f.sessions.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, s.Status)
	assert.Equal(t, 90, s.Duration)
	require.NotNil(t, s.EndTime)
	require.NotNil(t, s.Analytics)

	a, err := f.sessions.Analytics(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 50.0, a.MenteeParticipation)
	generatedAt := a.GeneratedAt

	f.clock.Advance(time.Hour)
	out := f.sessions.End(ctx, id, mentorID)
	assert.False(t, out.OK)
	assert.Equal(t, utils.ReasonInvalidState, out.Reason)

	again, err := f.sessions.Analytics(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, generatedAt, again.GeneratedAt)
}

func TestEndRoundsDuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)

	require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
	f.clock.Advance(29*time.Minute + 31*time.Second)
	require.True(t, f.sessions.End(ctx, id, mentorID).OK)

	s, _ := f.sessions.Get(ctx, id)
	assert.Equal(t, 30, s.Duration)
}

func TestEndRequiresInProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)

	out := f.sessions.End(ctx, id, mentorID)
	assert.Equal(t, utils.ReasonInvalidState, out.Reason)

	_, err := f.sessions.Analytics(ctx, id)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestEndUsesSessionContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)

	require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
	require.True(t, f.content.AddChatMessage(ctx, id, menteeID, "my audio keeps dropping").OK)
	require.True(t, f.content.AddChatMessage(ctx, id, mentorID, "can you hear me?").OK)
	require.True(t, f.content.AddChatMessage(ctx, id, menteeID, "yes").OK)
	require.True(t, f.content.AddChatMessage(ctx, id, menteeID, "ok").OK)

	eight, six := 8.0, 6.0
	_, out := f.content.SubmitFeedback(ctx, id, mentorID, FeedbackInput{Rating: &eight})
	require.True(t, out.OK)
	_, out = f.content.SubmitFeedback(ctx, id, menteeID, FeedbackInput{Rating: &six})
	require.True(t, out.OK)

	require.True(t, f.sessions.End(ctx, id, mentorID).OK)

	a, err := f.sessions.Analytics(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 75.0, a.MenteeParticipation)
	assert.Equal(t, 25.0, a.MentorParticipation)
	assert.Equal(t, 4, a.InteractionCount)
	assert.Equal(t, 1, a.QuestionCount)
	assert.Equal(t, 7.0, a.SatisfactionScore)
	assert.Equal(t, models.ConnectionGood, a.ConnectionQuality)

	s, _ := f.sessions.Get(ctx, id)
	require.NotNil(t, s.Analytics)
	assert.Equal(t, 75, s.Analytics.EngagementScore)
	assert.Equal(t, "positive", s.Analytics.Sentiment)
}

func TestEndTopicsComeFromNoteText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)

	require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
	require.True(t, f.content.AddNote(ctx, id, "discussed kubernetes deployment", mentorID).OK)
	f.clock.Advance(5 * time.Minute)
	require.True(t, f.content.AddNote(ctx, id, "reviewed resume formatting", menteeID).OK)
	require.True(t, f.sessions.End(ctx, id, mentorID).OK)

	a, err := f.sessions.Analytics(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"intro", "discussed", "kubernetes", "deployment", "reviewed", "resume", "formatting"}, a.TopicsCovered)

	s, _ := f.sessions.Get(ctx, id)
	require.NotNil(t, s.Analytics)
	assert.Equal(t, []string{"intro", "discussed", "kubernetes", "deployment", "reviewed"}, s.Analytics.KeyTopics)
}

func TestEndRecoversAfterSessionWriteFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)
	require.True(t, f.sessions.Start(ctx, id, mentorID).OK)

	f.persist.FailSessionsWith = errors.New("mongo down")
	out := f.sessions.End(ctx, id, mentorID)
	assert.Equal(t, utils.ReasonStorage, out.Reason)
	f.persist.FailSessionsWith = nil

	reloaded := store.New(f.persist)
	require.NoError(t, reloaded.Load(ctx))
	sessions := NewSessionService(reloaded, nil, f.pub, quietLogger(), f.clock.Now)

	s, err := sessions.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, s.Status)

	f.clock.Advance(30 * time.Minute)
	require.True(t, sessions.End(ctx, id, mentorID).OK)

	a, err := sessions.Analytics(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, a.SessionID)
	stored, ok := f.persist.StoredAnalytics(id)
	require.True(t, ok)
	assert.Equal(t, a.GeneratedAt, stored.GeneratedAt)
}

func TestConfirmRequiresParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)

	assert.Equal(t, utils.ReasonActorMismatch, f.sessions.Confirm(ctx, id, "stranger").Reason)
	require.True(t, f.sessions.Confirm(ctx, id, menteeID).OK)
	assert.Equal(t, utils.ReasonInvalidState, f.sessions.Confirm(ctx, id, mentorID).Reason)

	require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("appends audit note", func(t *testing.T) {
		id := f.register(t)
		require.True(t, f.sessions.Cancel(ctx, id, menteeID, "sick").OK)

		s, _ := f.sessions.Get(ctx, id)
		assert.Equal(t, models.StatusCancelled, s.Status)
		assert.Equal(t, []string{"cancelled by mentee-1: sick"}, s.SessionData.Notes)
	})

	t.Run("from in progress", func(t *testing.T) {
		id := f.register(t)
		require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
		require.True(t, f.sessions.Cancel(ctx, id, mentorID, "").OK)

		s, _ := f.sessions.Get(ctx, id)
		assert.Equal(t, []string{"cancelled by mentor-1: no reason provided"}, s.SessionData.Notes)
	})

	t.Run("terminal states refuse", func(t *testing.T) {
		id := f.register(t)
		require.True(t, f.sessions.MarkNoShow(ctx, id, mentorID).OK)
		assert.Equal(t, utils.ReasonInvalidState, f.sessions.Cancel(ctx, id, mentorID, "late").Reason)

		id = f.register(t)
		require.True(t, f.sessions.Cancel(ctx, id, mentorID, "x").OK)
		assert.Equal(t, utils.ReasonInvalidState, f.sessions.Cancel(ctx, id, mentorID, "x").Reason)

		s, _ := f.sessions.Get(ctx, id)
		assert.Len(t, s.SessionData.Notes, 1)
	})
}

func TestMarkNoShow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)

	assert.Equal(t, utils.ReasonActorMismatch, f.sessions.MarkNoShow(ctx, id, menteeID).Reason)
	require.True(t, f.sessions.Confirm(ctx, id, mentorID).OK)
	require.True(t, f.sessions.MarkNoShow(ctx, id, mentorID).OK)
	assert.Equal(t, utils.ReasonInvalidState, f.sessions.Start(ctx, id, mentorID).Reason)
}

func TestTransitionsFollowDocumentedEdges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all := []models.SessionStatus{
		models.StatusScheduled, models.StatusConfirmed, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow,
	}
	// reach drives a fresh session into the wanted status.
	reach := func(t *testing.T, want models.SessionStatus) string {
		id := f.register(t)
		switch want {
		case models.StatusConfirmed:
			require.True(t, f.sessions.Confirm(ctx, id, mentorID).OK)
		case models.StatusInProgress:
			require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
		case models.StatusCompleted:
			require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
			require.True(t, f.sessions.End(ctx, id, mentorID).OK)
		case models.StatusCancelled:
			require.True(t, f.sessions.Cancel(ctx, id, mentorID, "").OK)
		case models.StatusNoShow:
			require.True(t, f.sessions.MarkNoShow(ctx, id, mentorID).OK)
		}
		return id
	}

	allowed := map[models.SessionStatus][]string{
		models.StatusScheduled:  {"confirm", "start", "cancel", "no_show"},
		models.StatusConfirmed:  {"start", "cancel", "no_show"},
		models.StatusInProgress: {"end", "cancel"},
	}
	actions := map[string]func(id string) utils.Outcome{
		"confirm": func(id string) utils.Outcome { return f.sessions.Confirm(ctx, id, mentorID) },
		"start":   func(id string) utils.Outcome { return f.sessions.Start(ctx, id, mentorID) },
		"end":     func(id string) utils.Outcome { return f.sessions.End(ctx, id, mentorID) },
		"cancel":  func(id string) utils.Outcome { return f.sessions.Cancel(ctx, id, mentorID, "") },
		"no_show": func(id string) utils.Outcome { return f.sessions.MarkNoShow(ctx, id, mentorID) },
	}

	for _, from := range all {
		for name, act := range actions {
			t.Run(string(from)+"/"+name, func(t *testing.T) {
				id := reach(t, from)
				out := act(id)
				want := false
				for _, a := range allowed[from] {
					if a == name {
						want = true
					}
				}
				assert.Equal(t, want, out.OK)
			})
		}
	}
}

func TestConcurrentStartHasOneWinner(t *testing.T) {
	f := newFixture(t)
	id := f.register(t)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.sessions.Start(context.Background(), id, mentorID).OK {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestTransitionStorageFailure(t *testing.T) {
	f := newFixture(t)
	id := f.register(t)
	f.persist.FailWith = errors.New("mongo down")

	out := f.sessions.Start(context.Background(), id, mentorID)
	assert.Equal(t, utils.ReasonStorage, out.Reason)
	assert.True(t, utils.IsCode(out.AsError("op"), utils.CodeUnavailable))

	s, _ := f.sessions.Get(context.Background(), id)
	assert.Equal(t, models.StatusScheduled, s.Status)
}

func TestTransitionsPublishEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t)

	require.True(t, f.sessions.Confirm(ctx, id, menteeID).OK)
	require.True(t, f.sessions.Start(ctx, id, mentorID).OK)
	require.True(t, f.sessions.End(ctx, id, mentorID).OK)
	f.sessions.Start(ctx, id, mentorID)

	assert.Equal(t, []string{events.TypeConfirmed, events.TypeStarted, events.TypeCompleted}, f.pub.Types())
}

func TestListForUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.register(t)
	f.clock.Advance(time.Hour)
	second := f.register(t)

	got, err := f.sessions.ListForUser(ctx, menteeID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second, got[0].SessionID)
	assert.Equal(t, first, got[1].SessionID)

	none, err := f.sessions.ListForUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}
