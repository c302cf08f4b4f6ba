package splash

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"woosync/internal/logger"
)

// CommitEvent is one outbound change notification.
type CommitEvent struct {
	Object    string    `json:"object"`
	ObjectID  string    `json:"object_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// KafkaNotifier publishes commit events for objects the connector
// mutates. Requests are handled one at a time (see the request model),
// so the suppression counter needs no locking; it is request-scoped
// state on this handle, never a package global.
type KafkaNotifier struct {
	writer     *kafka.Writer
	log        *logger.Logger
	suppressed int
}

func NewKafkaNotifier(brokers, topic string, log *logger.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
	}
	return &KafkaNotifier{writer: writer, log: log}
}

func (n *KafkaNotifier) Notify(object, id, action string) {
	if n.suppressed > 0 {
		n.log.Debug("splash: commit of %s %s suppressed", object, id)
		return
	}

	event := CommitEvent{
		Object:    object,
		ObjectID:  id,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		n.log.Error("splash: failed to encode commit event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := n.writer.WriteMessages(ctx, kafka.Message{Key: []byte(id), Value: value}); err != nil {
		n.log.Error("splash: failed to publish commit event for %s %s: %v", object, id, err)
	}
}

// WithSuppressed mutes notifications for the duration of fn. The
// counter nests and is restored on every exit path.
func (n *KafkaNotifier) WithSuppressed(fn func() error) error {
	n.suppressed++
	defer func() { n.suppressed-- }()
	return fn()
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
