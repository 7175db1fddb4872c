package events

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yoockh/mentorship/internal/models"
)

// RedisStreamPublisher appends events to a Redis stream, trimmed to roughly maxLen.
type RedisStreamPublisher struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

func NewRedisStreamPublisher(rdb *redis.Client, stream string, maxLen int64) *RedisStreamPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	if maxLen <= 0 {
		maxLen = 10000
	}
	return &RedisStreamPublisher{rdb: rdb, stream: stream, maxLen: maxLen}
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, e Event) error {
	return p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: Encode(e),
	}).Err()
}

// Encode flattens an event into stream field values.
func Encode(e Event) map[string]any {
	return map[string]any{
		"type":       e.Type,
		"session_id": e.SessionID,
		"mentor_id":  e.MentorID,
		"mentee_id":  e.MenteeID,
		"status":     string(e.Status),
		"at":         e.At.UTC().Format(time.RFC3339Nano),
	}
}

// Decode is the inverse of Encode. Missing fields decode to zero values.
func Decode(values map[string]any) Event {
	get := func(k string) string {
		v, ok := values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	e := Event{
		Type:      get("type"),
		SessionID: get("session_id"),
		MentorID:  get("mentor_id"),
		MenteeID:  get("mentee_id"),
		Status:    models.SessionStatus(get("status")),
	}
	if at, err := time.Parse(time.RFC3339Nano, get("at")); err == nil {
		e.At = at
	}
	return e
}
