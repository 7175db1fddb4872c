package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongorepo "github.com/yoockh/mentorship/internal/repositories/mongo"
)

func EnsureMongoIndexes(cfg *Config) error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoDatabase(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessions := db.Collection(mongorepo.SessionsCollection)
	_, err := sessions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_session_id").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "participants.mentor_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_mentor_created"),
		},
		{
			Keys:    bson.D{{Key: "participants.mentee_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_mentee_created"),
		},
	})
	if err != nil {
		return err
	}

	templates := db.Collection(mongorepo.TemplatesCollection)
	_, err = templates.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "template_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_template_id").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "usage_count", Value: -1}},
			Options: options.Index().SetName("by_category_usage"),
		},
	})
	if err != nil {
		return err
	}

	recordings := db.Collection(mongorepo.RecordingsCollection)
	_, err = recordings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "recording_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_recording_id").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "uploaded_at", Value: 1}},
			Options: options.Index().SetName("by_session_uploaded"),
		},
	})
	if err != nil {
		return err
	}

	// one analytics record per session
	analytics := db.Collection(mongorepo.AnalyticsCollection)
	_, err = analytics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().
			SetName("uniq_analytics_session").
			SetUnique(true),
	})
	return err
}
