package kafka_test

import (
	"testing"
	"todoapp/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	message := kafka.Message{
		Key:     "abc",
		Value:   payload{ID: "abc", Title: "Buy milk"},
		Headers: map[string]string{"event-type": "todo.created"},
	}

	msg, err := message.ToKafkaMessage("todoapp.events")
	require.NoError(t, err)

	assert.Equal(t, "todoapp.events", msg.Topic)
	assert.Equal(t, []byte("abc"), msg.Key)
	assert.JSONEq(t, `{"id":"abc","title":"Buy milk"}`, string(msg.Value))
	assert.Equal(t, []kafkaGo.Header{{Key: "event-type", Value: []byte("todo.created")}}, msg.Headers)

	decoded, err := kafka.Decode[payload](msg)
	require.NoError(t, err)
	assert.Equal(t, payload{ID: "abc", Title: "Buy milk"}, decoded)
}

func TestMessage_ToKafkaMessageUnsupportedValue(t *testing.T) {
	message := kafka.Message{Key: "abc", Value: make(chan int)}

	_, err := message.ToKafkaMessage("todoapp.events")
	assert.Error(t, err)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := kafka.Decode[payload](kafkaGo.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
