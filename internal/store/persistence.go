package store

import (
	"context"

	"github.com/yoockh/mentorship/internal/models"
)

// Snapshot is everything a Persistence returns on Load.
type Snapshot struct {
	Sessions   []models.Session
	Templates  []models.SessionTemplate
	Recordings []models.Recording
	Analytics  []models.SessionAnalytics
}

// Persistence is the storage port. Saves are per entity and upsert by id.
type Persistence interface {
	Load(ctx context.Context) (Snapshot, error)
	SaveSession(ctx context.Context, s models.Session) error
	SaveTemplate(ctx context.Context, t models.SessionTemplate) error
	SaveRecording(ctx context.Context, r models.Recording) error
	SaveAnalytics(ctx context.Context, a models.SessionAnalytics) error
}
