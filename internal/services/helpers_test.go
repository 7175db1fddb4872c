package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/mentorship/internal/events"
	"github.com/yoockh/mentorship/internal/store"
)

const (
	mentorID = "mentor-1"
	menteeID = "mentee-1"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fixture struct {
	store   *store.Store
	persist *store.MemoryPersistence
	clock   *fakeClock
	pub     *recordingPublisher

	sessions  SessionService
	content   ContentService
	templates TemplateService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	p := store.NewMemoryPersistence()
	st := store.New(p)
	clk := newFakeClock()
	pub := &recordingPublisher{}
	log := quietLogger()
	return &fixture{
		store:     st,
		persist:   p,
		clock:     clk,
		pub:       pub,
		sessions:  NewSessionService(st, nil, pub, log, clk.Now),
		content:   NewContentService(st, log, clk.Now),
		templates: NewTemplateService(st, log, clk.Now),
	}
}

func (f *fixture) register(t *testing.T) string {
	t.Helper()
	s, err := f.sessions.Register(context.Background(), NewSession{
		MentorID:        mentorID,
		MenteeID:        menteeID,
		Type:            "one_on_one",
		PlannedDuration: 60,
		Agenda:          []string{"intro"},
	})
	require.NoError(t, err)
	return s.SessionID
}
