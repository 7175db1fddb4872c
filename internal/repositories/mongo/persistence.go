package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/mentorship/internal/models"
	"github.com/yoockh/mentorship/internal/store"
)

const (
	SessionsCollection   = "sessions"
	TemplatesCollection  = "session_templates"
	RecordingsCollection = "session_recordings"
	AnalyticsCollection  = "session_analytics"
)

// Persistence stores each entity as its own document, keyed by its id field.
type Persistence struct {
	sessions   *mongo.Collection
	templates  *mongo.Collection
	recordings *mongo.Collection
	analytics  *mongo.Collection
}

var _ store.Persistence = (*Persistence)(nil)

func NewPersistence(db *mongo.Database) *Persistence {
	return &Persistence{
		sessions:   db.Collection(SessionsCollection),
		templates:  db.Collection(TemplatesCollection),
		recordings: db.Collection(RecordingsCollection),
		analytics:  db.Collection(AnalyticsCollection),
	}
}

func (p *Persistence) Load(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot
	if err := findAll(ctx, p.sessions, &snap.Sessions); err != nil {
		return store.Snapshot{}, err
	}
	if err := findAll(ctx, p.templates, &snap.Templates); err != nil {
		return store.Snapshot{}, err
	}
	if err := findAll(ctx, p.recordings, &snap.Recordings); err != nil {
		return store.Snapshot{}, err
	}
	if err := findAll(ctx, p.analytics, &snap.Analytics); err != nil {
		return store.Snapshot{}, err
	}
	return snap, nil
}

func (p *Persistence) SaveSession(ctx context.Context, s models.Session) error {
	return upsert(ctx, p.sessions, bson.M{"session_id": s.SessionID}, s)
}

func (p *Persistence) SaveTemplate(ctx context.Context, t models.SessionTemplate) error {
	return upsert(ctx, p.templates, bson.M{"template_id": t.TemplateID}, t)
}

func (p *Persistence) SaveRecording(ctx context.Context, r models.Recording) error {
	return upsert(ctx, p.recordings, bson.M{"recording_id": r.RecordingID}, r)
}

func (p *Persistence) SaveAnalytics(ctx context.Context, a models.SessionAnalytics) error {
	return upsert(ctx, p.analytics, bson.M{"session_id": a.SessionID}, a)
}

func upsert(ctx context.Context, col *mongo.Collection, filter bson.M, doc any) error {
	_, err := col.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	return err
}

func findAll[T any](ctx context.Context, col *mongo.Collection, out *[]T) error {
	cur, err := col.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}
