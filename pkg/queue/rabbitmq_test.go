package queue

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	msg, err := newMessage("post.created", map[string]interface{}{"id": 7}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "post.created", msg.Type)
	assert.Equal(t, now, msg.Timestamp)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &event))
	assert.Equal(t, "post.created", event["type"])
	assert.Equal(t, "2025-01-15T10:00:00Z", event["occurred_at"])
	assert.Equal(t, float64(7), event["payload"].(map[string]interface{})["id"])
}

func TestNewMessage_Unmarshalable(t *testing.T) {
	_, err := newMessage("post.created", make(chan int), time.Now())
	assert.Error(t, err)
}
