package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/utils"
)

// Store holds the sessions, templates, recordings and analytics registries. All writes
// go through Update, which runs its callback under the store lock so state checks and
// the writes they guard happen atomically.
type Store struct {
	mu sync.RWMutex
	p  Persistence

	sessions   map[string]models.Session
	templates  map[string]models.SessionTemplate
	recordings map[string]models.Recording
	analytics  map[string]models.SessionAnalytics
}

func New(p Persistence) *Store {
	if p == nil {
		p = NewMemoryPersistence()
	}
	return &Store{
		p:          p,
		sessions:   make(map[string]models.Session),
		templates:  make(map[string]models.SessionTemplate),
		recordings: make(map[string]models.Recording),
		analytics:  make(map[string]models.SessionAnalytics),
	}
}

// Load replaces the in-memory registries with what the persistence port returns.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.p.Load(ctx)
	if err != nil {
		return fmt.Errorf("store: load: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]models.Session, len(snap.Sessions))
	for _, v := range snap.Sessions {
		s.sessions[v.SessionID] = v.Clone()
	}
	s.templates = make(map[string]models.SessionTemplate, len(snap.Templates))
	for _, v := range snap.Templates {
		s.templates[v.TemplateID] = v.Clone()
	}
	s.recordings = make(map[string]models.Recording, len(snap.Recordings))
	for _, v := range snap.Recordings {
		s.recordings[v.RecordingID] = v
	}
	// An analytics record only counts once its session is durably completed. A record
	// left behind by an End whose session write failed is dropped so End can run again.
	s.analytics = make(map[string]models.SessionAnalytics, len(snap.Analytics))
	for _, v := range snap.Analytics {
		if sess, ok := s.sessions[v.SessionID]; !ok || sess.Status != models.StatusCompleted {
			continue
		}
		s.analytics[v.SessionID] = v.Clone()
	}
	return nil
}

func (s *Store) Session(id string) (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sessions[id]
	if !ok {
		return models.Session{}, false
	}
	return v.Clone(), true
}

// SessionsForUser lists sessions where userID is mentor or mentee, newest first.
func (s *Store) SessionsForUser(userID string) []models.Session {
	s.mu.RLock()
	out := make([]models.Session, 0)
	for _, v := range s.sessions {
		if v.IsParticipant(userID) {
			out = append(out, v.Clone())
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].SessionID < out[j].SessionID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) Template(id string) (models.SessionTemplate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.templates[id]
	if !ok {
		return models.SessionTemplate{}, false
	}
	return v.Clone(), true
}

// Templates returns every template in id order.
func (s *Store) Templates() []models.SessionTemplate {
	s.mu.RLock()
	out := make([]models.SessionTemplate, 0, len(s.templates))
	for _, v := range s.templates {
		out = append(out, v.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].TemplateID < out[j].TemplateID })
	return out
}

func (s *Store) Analytics(sessionID string) (models.SessionAnalytics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.analytics[sessionID]
	if !ok {
		return models.SessionAnalytics{}, false
	}
	return v.Clone(), true
}

// Recordings lists a session's recordings, oldest first.
func (s *Store) Recordings(sessionID string) []models.Recording {
	s.mu.RLock()
	out := make([]models.Recording, 0)
	for _, v := range s.recordings {
		if v.SessionID == sessionID {
			out = append(out, v)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.Before(out[j].UploadedAt) })
	return out
}

// Update runs fn against a transaction. When fn returns a non-empty reason nothing is
// written. Otherwise every entity fn touched is persisted and then committed; if the
// persistence port fails, memory is left untouched.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) utils.Reason) utils.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newTx(s)
	if r := fn(tx); r != utils.ReasonNone {
		return utils.Fail(r)
	}

	if err := tx.persist(ctx); err != nil {
		return utils.StorageFailure(err)
	}
	tx.commit()
	return utils.Ok()
}
