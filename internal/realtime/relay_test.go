package realtime

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records every event pushed at it; with failSend set it behaves
// like a stale handle.
type fakeConn struct {
	mu       sync.Mutex
	events   []Event
	failSend bool
	closed   bool
}

func (c *fakeConn) Send(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend || c.closed {
		return ErrConnClosed
	}
	c.events = append(c.events, event)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) recorded() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func (c *fakeConn) eventNames() []EventName {
	var names []EventName
	for _, ev := range c.recorded() {
		names = append(names, ev.Name)
	}
	return names
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func testMessage(senderID, receiverID uuid.UUID) *models.Message {
	return &models.Message{
		ID:             uuid.New(),
		ConversationID: uuid.New(),
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        "hello",
		MessageType:    models.MessageTypeText,
	}
}

func TestRelay_MessageReachesReceiver(t *testing.T) {
	table := NewTable()
	relay := NewRelay(table)

	receiverID := uuid.New()
	receiver := &fakeConn{}
	table.Register(receiverID, receiver)

	msg := testMessage(uuid.New(), receiverID)
	relay.RelayMessage(msg)

	events := receiver.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, EventReceiveMessage, events[0].Name)
	assert.Same(t, msg, events[0].Data)
}

// A receiver with no presence entry is a delivery miss: nothing happens and
// nothing fails.
func TestRelay_DeliveryMiss(t *testing.T) {
	relay := NewRelay(NewTable())

	assert.NotPanics(t, func() {
		relay.RelayMessage(testMessage(uuid.New(), uuid.New()))
	})
}

func TestRelay_NilMessageIgnored(t *testing.T) {
	relay := NewRelay(NewTable())

	assert.NotPanics(t, func() {
		relay.RelayMessage(nil)
	})
}

// A push against a dead handle clears the presence entry so later sends stop
// retrying it.
func TestRelay_StaleHandlePurged(t *testing.T) {
	table := NewTable()
	relay := NewRelay(table)

	receiverID := uuid.New()
	stale := &fakeConn{failSend: true}
	table.Register(receiverID, stale)

	relay.RelayMessage(testMessage(uuid.New(), receiverID))

	_, ok := table.Lookup(receiverID)
	assert.False(t, ok, "stale entry should have been purged")
	assert.True(t, stale.isClosed(), "stale handle should be closed")
}

func TestRelay_Typing(t *testing.T) {
	table := NewTable()
	relay := NewRelay(table)

	senderID := uuid.New()
	receiverID := uuid.New()
	conversationID := uuid.New()
	receiver := &fakeConn{}
	table.Register(receiverID, receiver)

	relay.RelayTyping(conversationID, receiverID, senderID, true)
	relay.RelayTyping(conversationID, receiverID, senderID, false)

	events := receiver.recorded()
	require.Len(t, events, 2)
	assert.Equal(t, EventUserTyping, events[0].Name)
	assert.Equal(t, EventUserStoppedTyping, events[1].Name)

	notice, ok := events[0].Data.(TypingNotice)
	require.True(t, ok)
	assert.Equal(t, conversationID, notice.ConversationID)
	assert.Equal(t, senderID, notice.UserID, "receiver should learn who is typing")
}

func TestRelay_Seen(t *testing.T) {
	table := NewTable()
	relay := NewRelay(table)

	senderID := uuid.New()
	messageID := uuid.New()
	sender := &fakeConn{}
	table.Register(senderID, sender)

	relay.RelaySeen(messageID, senderID)

	events := sender.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, EventMessageMarkedSeen, events[0].Name)
	assert.Equal(t, messageID, events[0].Data)
}

// The fanout must tolerate being handed nothing (upstream suppressed the
// notification) and do nothing.
func TestRelay_PushNotificationNil(t *testing.T) {
	relay := NewRelay(NewTable())

	assert.NotPanics(t, func() {
		relay.PushNotification(nil)
	})
}

func TestRelay_PushNotification(t *testing.T) {
	table := NewTable()
	relay := NewRelay(table)

	recipientID := uuid.New()
	recipient := &fakeConn{}
	table.Register(recipientID, recipient)

	notification := &models.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		SenderID:    uuid.New(),
		Type:        models.NotificationLike,
	}
	relay.PushNotification(notification)

	events := recipient.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, EventNewNotification, events[0].Name)
	assert.Same(t, notification, events[0].Data)
}

func TestRelay_BroadcastExcludesSubject(t *testing.T) {
	table := NewTable()
	relay := NewRelay(table)

	subjectID := uuid.New()
	otherID := uuid.New()
	subject := &fakeConn{}
	other := &fakeConn{}
	table.Register(subjectID, subject)
	table.Register(otherID, other)

	relay.Broadcast(subjectID, Event{Name: EventUserOnline, Data: subjectID})

	assert.Empty(t, subject.recorded(), "subject must not receive its own broadcast")
	require.Len(t, other.recorded(), 1)
	assert.Equal(t, EventUserOnline, other.recorded()[0].Name)
}
