package ws

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/pkg/logger"
)

func TestHub_SendToUser_DeliversToOpenConnection(t *testing.T) {
	hub := NewHub(logger.NewNop())
	userID := primitive.NewObjectID()
	client := &Client{send: make(chan []byte, 1), UserID: userID, Role: "patient"}
	hub.addClient(client)

	hub.SendToUser(userID, "new_message", map[string]string{"text": "hello"})

	var event Event
	require.NoError(t, json.Unmarshal(<-client.send, &event))
	assert.Equal(t, "new_message", event.Type)
}

func TestHub_SendToUser_SkipsUnconnectedUser(t *testing.T) {
	hub := NewHub(logger.NewNop())

	assert.NotPanics(t, func() {
		hub.SendToUser(primitive.NewObjectID(), "new_message", nil)
	})
}

func TestHub_SendToUser_ConcurrentSlowConsumer(t *testing.T) {
	hub := NewHub(logger.NewNop())
	userID := primitive.NewObjectID()
	client := &Client{send: make(chan []byte), UserID: userID, Role: "patient"}
	hub.addClient(client)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.SendToUser(userID, "new_message", nil)
		}()
	}
	wg.Wait()

	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	assert.Empty(t, hub.connections[userID.Hex()])
}
