package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zetedec/lanchat/internal/domain"
)

func readEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHubBroadcastReachesAllSessionsInOrder(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := NewClient(hub, nil, 1)
	bob := NewClient(hub, nil, 2)
	hub.register <- alice
	hub.register <- bob

	// alice sees bob come online
	evt := readEvent(t, alice)
	assert.Equal(t, EventTypePresence, evt.Type)

	notifier := NewHubNotifier(hub)
	receiver := int64(2)
	msg := &domain.Message{ID: 10, AuthorID: 1, ReceiverID: &receiver, Content: domain.TextContent("hi")}

	notifier.NotifyNewMessage(msg)
	notifier.NotifyEditedMessage(msg)
	notifier.NotifyDeletedMessage(10)

	// every session receives every canonical event, in emission order;
	// audience filtering happens client-side
	for _, c := range []*Client{alice, bob} {
		assert.Equal(t, EventTypeNewMessage, readEvent(t, c).Type)
		assert.Equal(t, EventTypeEditMessage, readEvent(t, c).Type)

		del := readEvent(t, c)
		assert.Equal(t, EventTypeDeleteMessage, del.Type)

		var payload MessageDeletedPayload
		require.NoError(t, json.Unmarshal(del.Payload, &payload))
		assert.Equal(t, int64(10), payload.ID)
	}
}

func TestHubKeepsEarlierSessionsOfSameUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	tab1 := NewClient(hub, nil, 1)
	tab2 := NewClient(hub, nil, 1)
	hub.register <- tab1
	hub.register <- tab2

	notifier := NewHubNotifier(hub)
	notifier.NotifyNewMessage(&domain.Message{ID: 5, AuthorID: 2, Content: domain.TextContent("hi")})

	// both sessions stay live and receive the event
	assert.Equal(t, EventTypeNewMessage, readEvent(t, tab1).Type)
	assert.Equal(t, EventTypeNewMessage, readEvent(t, tab2).Type)

	// closing one session leaves the other connected
	hub.unregister <- tab2
	notifier.NotifyDeletedMessage(5)
	assert.Equal(t, EventTypeDeleteMessage, readEvent(t, tab1).Type)

	select {
	case _, ok := <-tab2.send:
		assert.False(t, ok, "unregistered session's channel is closed")
	case <-time.After(time.Second):
		t.Fatal("unregistered session's channel was not closed")
	}
}

func TestNewMessageEventCarriesAudienceFields(t *testing.T) {
	receiver := int64(2)
	msg := &domain.Message{ID: 3, AuthorID: 1, ReceiverID: &receiver, Content: domain.TextContent("hi"), AuthorUsername: "alice"}

	evt, err := NewEvent(EventTypeNewMessage, MessagePayload{Message: *msg})
	require.NoError(t, err)
	assert.NotZero(t, evt.Timestamp)

	var decoded domain.Message
	require.NoError(t, json.Unmarshal(evt.Payload, &decoded))
	assert.Equal(t, int64(1), decoded.AuthorID)
	require.NotNil(t, decoded.ReceiverID)
	assert.Equal(t, int64(2), *decoded.ReceiverID)
	assert.Equal(t, "alice", decoded.AuthorUsername)

	// a connected client applies the same predicate the query path uses
	assert.True(t, decoded.Audience().VisibleTo(2))
	assert.False(t, decoded.Audience().VisibleTo(3))
}
