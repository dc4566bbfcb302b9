package realtime

import (
	"log"

	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
)

// Relay pushes already-persisted or ephemeral events to a specific user's
// live connection. Every push is best-effort: an absent receiver is a
// delivery miss, not an error, and a failed push against a stale handle
// clears the presence entry so later sends stop retrying a dead socket.
type Relay struct {
	presence Presence
}

func NewRelay(presence Presence) *Relay {
	return &Relay{presence: presence}
}

// push reports whether the event reached a live connection.
func (r *Relay) push(userID uuid.UUID, event Event) bool {
	conn, ok := r.presence.Lookup(userID)
	if !ok {
		return false
	}
	if err := conn.Send(event); err != nil {
		log.Printf("realtime: push %s to %s failed, clearing presence: %v", event.Name, userID, err)
		r.presence.Remove(userID, conn)
		conn.Close()
		return false
	}
	return true
}

// RelayMessage fans a persisted message out to its receiver. The caller is
// responsible for having stored the message first.
func (r *Relay) RelayMessage(message *models.Message) {
	if message == nil {
		return
	}
	r.push(message.ReceiverID, Event{Name: EventReceiveMessage, Data: message})
}

// RelayTyping forwards an ephemeral typing signal. Never persisted, no
// delivery guarantee.
func (r *Relay) RelayTyping(conversationID, receiverID, senderID uuid.UUID, typing bool) {
	name := EventUserTyping
	if !typing {
		name = EventUserStoppedTyping
	}
	r.push(receiverID, Event{
		Name: name,
		Data: TypingNotice{ConversationID: conversationID, UserID: senderID},
	})
}

// RelaySeen tells the original sender their message was read, after the store
// has durably flipped the seen flag.
func (r *Relay) RelaySeen(messageID, senderID uuid.UUID) {
	r.push(senderID, Event{Name: EventMessageMarkedSeen, Data: messageID})
}

// PushNotification alerts the recipient of a durably-created notification.
// Tolerates nil (upstream suppressed the record) by doing nothing.
func (r *Relay) PushNotification(notification *models.Notification) {
	if notification == nil {
		return
	}
	r.push(notification.RecipientID, Event{Name: EventNewNotification, Data: notification})
}

// Broadcast sends an event to every admitted connection except one user,
// typically the subject of an online/offline transition.
func (r *Relay) Broadcast(except uuid.UUID, event Event) {
	for _, userID := range r.presence.Online() {
		if userID == except {
			continue
		}
		r.push(userID, event)
	}
}
