package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mentorship/internal/events"
)

// Invalidator drops personalization results cached for a user.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// EventWorkerPool consumes session lifecycle events from a Redis stream and drops the
// cached personalization entries of both participants when a session ends.
type EventWorkerPool struct {
	Redis       *redis.Client
	Invalidator Invalidator
	NumWorkers  int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *EventWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Invalidator == nil {
		return errors.New("EventWorkerPool missing dependency: Redis/Invalidator must be set")
	}
	if p.Stream == "" {
		p.Stream = events.DefaultStream
	}
	if p.Group == "" {
		p.Group = "session-event-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *EventWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			p.Logger.WithError(err).WithField("consumer", consumer).Warn("xreadgroup failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				if err := p.Handle(ctx, events.Decode(msg.Values)); err != nil {
					// left pending for redelivery
					p.Logger.WithError(err).WithField("redis_id", msg.ID).Warn("session event not handled")
					continue
				}
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

// Handle processes one decoded event. A session reaching a terminal state evicts the
// cached recommendations and insights of both participants. Those results are computed
// from the profile alone, so this is cache hygiene: the next read recomputes from the
// current profile instead of waiting out the TTL. It does not change their content.
func (p *EventWorkerPool) Handle(ctx context.Context, e events.Event) error {
	if e.SessionID == "" {
		return nil
	}
	switch e.Type {
	case events.TypeCompleted, events.TypeCancelled, events.TypeNoShow:
	default:
		return nil
	}

	log := p.Logger.WithFields(logrus.Fields{"session_id": e.SessionID, "type": e.Type})

	var errs []error
	for _, userID := range []string{e.MentorID, e.MenteeID} {
		if userID == "" {
			continue
		}
		if err := p.Invalidator.Invalidate(ctx, userID); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	log.Debug("personalization cache invalidated")
	return nil
}
