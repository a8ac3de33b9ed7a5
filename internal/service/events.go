package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/pkg/logging"
)

const (
	TopicUsers   = "user_events"
	TopicOffers  = "offer_events"
	TopicOrders  = "order_events"
	TopicReviews = "review_events"
)

type Event struct {
	Type       string    `json:"type"`
	ID         uint      `json:"id"`
	ActorID    uint      `json:"actor_id,omitempty"`
	Data       any       `json:"data,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Emitter publishes domain events after the owning write has committed.
// Failures are logged and counted; they never fail the request.
type Emitter struct {
	Publisher Publisher
	Counter   EventCounter
}

func (e *Emitter) Emit(ctx context.Context, topic, eventType string, id, actorID uint, data any) {
	if e == nil || e.Publisher == nil {
		return
	}

	evt := Event{
		Type:       eventType,
		ID:         id,
		ActorID:    actorID,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}

	outcome := "published"
	if err := e.Publisher.PublishEvent(ctx, topic, strconv.FormatUint(uint64(id), 10), evt); err != nil {
		outcome = "failed"
		logging.FromContext(ctx).Warn("publish_event_failed",
			zap.String("topic", topic), zap.String("type", eventType), zap.Uint("id", id), zap.Error(err))
	}
	if e.Counter != nil {
		e.Counter.EventEmitted(eventType, outcome)
	}
}
