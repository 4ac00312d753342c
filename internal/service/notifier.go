package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Channel name prefix: events:<collection>:<ownerID>
	eventChannelPrefix = "events:"

	// Buffer per subscriber. A slow consumer drops events rather than
	// blocking the fan-out goroutine; consumers re-query the full snapshot
	// on every event, so a dropped event only delays the refresh until the
	// next change.
	subscriberBuffer = 8
)

// ChangeEvent signals that records under a collection/owner pair changed.
// It carries no payload: subscribers re-read the full current snapshot.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	OwnerID    string    `json:"owner_id"`
	Action     string    `json:"action"`
	At         time.Time `json:"at"`
}

// Notifier fans mutation events out to standing subscriptions. Each
// Subscribe call returns a cancel handle the consumer must release when its
// view goes away, otherwise the underlying listener leaks.
type Notifier interface {
	Publish(ctx context.Context, event ChangeEvent)
	Subscribe(ctx context.Context, collection, ownerID string) (<-chan ChangeEvent, func(), error)
}

// redisNotifier backs subscriptions with Redis pub/sub so change events
// reach every running instance, not only the one that performed the write.
type redisNotifier struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewRedisNotifier(redisClient *redis.Client, log *logrus.Logger) Notifier {
	return &redisNotifier{
		redisClient: redisClient,
		log:         log,
	}
}

func channelName(collection, ownerID string) string {
	return fmt.Sprintf("%s%s:%s", eventChannelPrefix, collection, ownerID)
}

// Publish is best-effort: a failed publish is logged and dropped. Live views
// catch up on the next successful event; the write itself already committed.
func (n *redisNotifier) Publish(ctx context.Context, event ChangeEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.log.Warnf("Failed to marshal change event: %+v", err)
		return
	}

	channel := channelName(event.Collection, event.OwnerID)
	if err := n.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
		n.log.Warnf("Failed to publish change event on %s: %+v", channel, err)
	}
}

// Subscribe opens a standing listener on one collection/owner channel.
// The returned cancel function is idempotent and must be called when the
// consumer is done; it closes the Redis subscription and the event channel.
func (n *redisNotifier) Subscribe(ctx context.Context, collection, ownerID string) (<-chan ChangeEvent, func(), error) {
	channel := channelName(collection, ownerID)

	pubsub := n.redisClient.Subscribe(ctx, channel)

	// Confirm the subscription before handing out the channel
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	events := make(chan ChangeEvent, subscriberBuffer)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			pubsub.Close()
		})
	}

	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				n.log.Warnf("Dropping malformed change event on %s: %+v", channel, err)
				continue
			}
			select {
			case events <- event:
			default:
				n.log.Debugf("Subscriber on %s is slow, dropping event", channel)
			}
		}
	}()

	return events, cancel, nil
}
