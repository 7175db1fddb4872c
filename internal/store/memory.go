package store

import (
	"context"
	"sync"

	"github.com/yoockh/mentorship/internal/models"
)

// MemoryPersistence keeps saved entities in process. Used in tests and local runs
// without MongoDB.
type MemoryPersistence struct {
	mu         sync.Mutex
	sessions   map[string]models.Session
	templates  map[string]models.SessionTemplate
	recordings map[string]models.Recording
	analytics  map[string]models.SessionAnalytics

	// FailWith, when set, is returned by every Save call.
	FailWith error
	// FailSessionsWith, when set, is returned by SaveSession only.
	FailSessionsWith error
	Saves            int
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{
		sessions:   make(map[string]models.Session),
		templates:  make(map[string]models.SessionTemplate),
		recordings: make(map[string]models.Recording),
		analytics:  make(map[string]models.SessionAnalytics),
	}
}

func (m *MemoryPersistence) Load(_ context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var snap Snapshot
	for _, s := range m.sessions {
		snap.Sessions = append(snap.Sessions, s.Clone())
	}
	for _, t := range m.templates {
		snap.Templates = append(snap.Templates, t.Clone())
	}
	for _, r := range m.recordings {
		snap.Recordings = append(snap.Recordings, r)
	}
	for _, a := range m.analytics {
		snap.Analytics = append(snap.Analytics, a.Clone())
	}
	return snap, nil
}

func (m *MemoryPersistence) SaveSession(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if m.FailSessionsWith != nil {
		return m.FailSessionsWith
	}
	m.Saves++
	m.sessions[s.SessionID] = s.Clone()
	return nil
}

func (m *MemoryPersistence) SaveTemplate(_ context.Context, t models.SessionTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Saves++
	m.templates[t.TemplateID] = t.Clone()
	return nil
}

func (m *MemoryPersistence) SaveRecording(_ context.Context, r models.Recording) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Saves++
	m.recordings[r.RecordingID] = r
	return nil
}

func (m *MemoryPersistence) SaveAnalytics(_ context.Context, a models.SessionAnalytics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Saves++
	m.analytics[a.SessionID] = a.Clone()
	return nil
}

// StoredAnalytics returns what was persisted for a session, for assertions.
func (m *MemoryPersistence) StoredAnalytics(sessionID string) (models.SessionAnalytics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.analytics[sessionID]
	return a, ok
}
