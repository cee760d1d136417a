package ws

import (
	"log"

	"github.com/zetedec/lanchat/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub. Every
// canonical event goes to all connected sessions; the audience fields in the
// payload let each client decide whether its selected view should render it.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(msg *domain.Message) {
	evt, err := NewEvent(EventTypeNewMessage, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Broadcast(evt)
}

func (n *HubNotifier) NotifyEditedMessage(msg *domain.Message) {
	evt, err := NewEvent(EventTypeEditMessage, MessagePayload{Message: *msg})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Broadcast(evt)
}

func (n *HubNotifier) NotifyDeletedMessage(messageID int64) {
	evt, err := NewEvent(EventTypeDeleteMessage, MessageDeletedPayload{ID: messageID})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Broadcast(evt)
}
