// Package events publishes domain lifecycle events to Kafka.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"
	"todoapp/config"
	"todoapp/infras/kafka"
	"todoapp/infras/otel"
	"todoapp/shared/constant"
	"todoapp/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Type string

const (
	TodoCreated Type = "todo.created"
	TodoUpdated Type = "todo.updated"
	TodoDeleted Type = "todo.deleted"

	UserCreated Type = "user.created"
	UserUpdated Type = "user.updated"
	UserDeleted Type = "user.deleted"
)

const (
	headerEventType = "event-type"
	defaultTopic    = "todoapp.events"
)

type Event struct {
	Type       Type      `json:"type"`
	EntityID   string    `json:"entity_id"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

func New(eventType Type, entityID, actor string, payload any) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		Actor:      actor,
		OccurredAt: timezone.Now(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

// NewKafkaPublisher publishes events keyed by entity id so every event of one
// record lands on the same partition.
func NewKafkaPublisher(client kafka.Client, topic string, otel otel.Otel) Publisher {
	if topic == "" {
		topic = defaultTopic
	}

	return &kafkaPublisher{
		client: client,
		topic:  topic,
		otel:   otel,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("event.type", string(event.Type))

	err = p.client.SendMessages(ctx, p.topic, kafka.Message{
		Key:     event.EntityID,
		Value:   event,
		Headers: map[string]string{headerEventType: string(event.Type)},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}

type noopPublisher struct{}

// NewNoop returns a publisher that drops every event.
func NewNoop() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(_ context.Context, event Event) error {
	log.Trace().Str("type", string(event.Type)).Str("id", event.EntityID).Msg("event dropped, publishing disabled")

	return nil
}

// Provide picks the Kafka publisher when enabled in config.
func Provide(cfg *config.Config, otel otel.Otel) (Publisher, func()) {
	if !cfg.Kafka.Enable || len(cfg.Kafka.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, lifecycle events will not be published")

		return NewNoop(), func() {}
	}

	client, cleanup := kafka.New(cfg)

	return NewKafkaPublisher(client, cfg.Kafka.Topic, otel), cleanup
}

// PublishAsync publishes in the background. Failures are logged and never
// reach the caller.
func PublishAsync(ctx context.Context, publisher Publisher, event Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := publisher.Publish(c, event); err != nil {
			log.Error().Err(err).Str("type", string(event.Type)).Str("id", event.EntityID).Msg("failed to publish event")
		}
	}()
}
