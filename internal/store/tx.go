package store

import (
	"context"

	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/utils"
)

// Tx collects the writes of a single Store.Update call. Entities handed out by a Tx are
// private copies; mutate them freely, they are only published when the update succeeds.
type Tx struct {
	st *Store

	sessions      map[string]*models.Session
	sessionOrder  []string
	templates     map[string]*models.SessionTemplate
	templateOrder []string
	recordings    []models.Recording
	analytics     []models.SessionAnalytics
}

func newTx(st *Store) *Tx {
	return &Tx{
		st:        st,
		sessions:  make(map[string]*models.Session),
		templates: make(map[string]*models.SessionTemplate),
	}
}

// Session returns a writable copy of the session. Any session obtained this way is
// saved when the transaction commits.
func (tx *Tx) Session(id string) (*models.Session, bool) {
	if s, ok := tx.sessions[id]; ok {
		return s, true
	}
	cur, ok := tx.st.sessions[id]
	if !ok {
		return nil, false
	}
	c := cur.Clone()
	tx.sessions[id] = &c
	tx.sessionOrder = append(tx.sessionOrder, id)
	return &c, true
}

// Peek returns a read-only copy of the session without marking it for saving.
func (tx *Tx) Peek(id string) (models.Session, bool) {
	if s, ok := tx.sessions[id]; ok {
		return s.Clone(), true
	}
	cur, ok := tx.st.sessions[id]
	if !ok {
		return models.Session{}, false
	}
	return cur.Clone(), true
}

func (tx *Tx) InsertSession(s models.Session) utils.Reason {
	if _, ok := tx.st.sessions[s.SessionID]; ok {
		return utils.ReasonInvalidState
	}
	if _, ok := tx.sessions[s.SessionID]; ok {
		return utils.ReasonInvalidState
	}
	c := s.Clone()
	tx.sessions[s.SessionID] = &c
	tx.sessionOrder = append(tx.sessionOrder, s.SessionID)
	return utils.ReasonNone
}

// Template returns a writable copy of the template, saved on commit.
func (tx *Tx) Template(id string) (*models.SessionTemplate, bool) {
	if t, ok := tx.templates[id]; ok {
		return t, true
	}
	cur, ok := tx.st.templates[id]
	if !ok {
		return nil, false
	}
	c := cur.Clone()
	tx.templates[id] = &c
	tx.templateOrder = append(tx.templateOrder, id)
	return &c, true
}

func (tx *Tx) InsertTemplate(t models.SessionTemplate) utils.Reason {
	if _, ok := tx.st.templates[t.TemplateID]; ok {
		return utils.ReasonInvalidState
	}
	if _, ok := tx.templates[t.TemplateID]; ok {
		return utils.ReasonInvalidState
	}
	c := t.Clone()
	tx.templates[t.TemplateID] = &c
	tx.templateOrder = append(tx.templateOrder, t.TemplateID)
	return utils.ReasonNone
}

func (tx *Tx) AddRecording(r models.Recording) {
	tx.recordings = append(tx.recordings, r)
}

func (tx *Tx) HasAnalytics(sessionID string) bool {
	if _, ok := tx.st.analytics[sessionID]; ok {
		return true
	}
	for _, a := range tx.analytics {
		if a.SessionID == sessionID {
			return true
		}
	}
	return false
}

// PutAnalytics records the analytics for a session. A session gets exactly one record;
// a second attempt is rejected with ReasonInvalidState.
func (tx *Tx) PutAnalytics(a models.SessionAnalytics) utils.Reason {
	if tx.HasAnalytics(a.SessionID) {
		return utils.ReasonInvalidState
	}
	tx.analytics = append(tx.analytics, a.Clone())
	return utils.ReasonNone
}

// persist writes analytics before sessions, so a completed session is never durable
// without its record. Load discards the reverse case.
func (tx *Tx) persist(ctx context.Context) error {
	p := tx.st.p
	for _, a := range tx.analytics {
		if err := p.SaveAnalytics(ctx, a); err != nil {
			return err
		}
	}
	for _, r := range tx.recordings {
		if err := p.SaveRecording(ctx, r); err != nil {
			return err
		}
	}
	for _, id := range tx.templateOrder {
		if err := p.SaveTemplate(ctx, *tx.templates[id]); err != nil {
			return err
		}
	}
	for _, id := range tx.sessionOrder {
		if err := p.SaveSession(ctx, *tx.sessions[id]); err != nil {
			return err
		}
	}
	return nil
}

func (tx *Tx) commit() {
	for _, a := range tx.analytics {
		tx.st.analytics[a.SessionID] = a
	}
	for _, r := range tx.recordings {
		tx.st.recordings[r.RecordingID] = r
	}
	for _, id := range tx.templateOrder {
		tx.st.templates[id] = *tx.templates[id]
	}
	for _, id := range tx.sessionOrder {
		tx.st.sessions[id] = *tx.sessions[id]
	}
}
