package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"todoapp/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	defaultWriteTimeout = 5 * time.Second
)

type Message struct {
	Key     string
	Value   any
	Headers map[string]string
}

func (m *Message) ToKafkaMessage(topic string) (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	message := kafkaGo.Message{
		Topic: topic,
		Key:   []byte(m.Key),
		Value: jsonValue,
	}

	for key, value := range m.Headers {
		message.Headers = append(message.Headers, kafkaGo.Header{Key: key, Value: []byte(value)})
	}

	return message, nil
}

// Decode unmarshals the JSON value of a received message.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal Kafka message value from JSON")

		return value, fmt.Errorf("failed to unmarshal Kafka message value from JSON: %w", err)
	}

	return value, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type kafkaClientImpl struct {
	writer  *kafkaGo.Writer
	timeout time.Duration
}

// New builds a producer for the configured brokers. SASL/PLAIN is used when a
// username is set. The returned cleanup flushes and closes the writer.
func New(config *config.Config) (Client, func()) {
	transport := &kafkaGo.Transport{}

	if config.Kafka.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: config.Kafka.Username,
			Password: config.Kafka.Password,
		}
	}

	timeout := defaultWriteTimeout
	if config.Kafka.Timeout > 0 {
		timeout = time.Duration(config.Kafka.Timeout) * time.Second
	}

	client := &kafkaClientImpl{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafkaGo.RequireOne,
		},
		timeout: timeout,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka writer.")
		}
	}

	return client, cleanup
}

// SendMessages writes messages to topic. Messages sharing a key land on the
// same partition so consumers see them in order.
func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage(topic)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to convert message to Kafka message.")

			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msgs = append(msgs, msg)
	}

	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	err = k.writer.WriteMessages(ctx, msgs...)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}
