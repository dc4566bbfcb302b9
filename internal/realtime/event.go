package realtime

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
)

// Wire format: every frame is a JSON envelope {"event": <name>, "data": <payload>}.
// Inbound frames decode into one tagged variant per event so the dispatcher
// can switch on a type instead of matching strings all over the codebase.

type EventName string

// Inbound (client -> server)
const (
	EventSendMessage EventName = "send-message"
	EventTyping      EventName = "typing"
	EventStopTyping  EventName = "stop-typing"
	EventMessageSeen EventName = "message-seen"
)

// Outbound (server -> client)
const (
	EventUserOnline        EventName = "user-online"
	EventUserOffline       EventName = "user-offline"
	EventReceiveMessage    EventName = "receive-message"
	EventUserTyping        EventName = "user-typing"
	EventUserStoppedTyping EventName = "user-stopped-typing"
	EventMessageMarkedSeen EventName = "message-marked-as-seen"
	EventNewNotification   EventName = "new-notification"
)

type Event struct {
	Name EventName `json:"event"`
	Data any       `json:"data,omitempty"`
}

var ErrUnknownEvent = errors.New("unknown event")

// InboundEvent is one of SendMessageEvent, TypingEvent, MessageSeenEvent.
type InboundEvent interface {
	inboundEvent()
}

// SendMessageEvent carries a message the client already persisted through the
// REST layer. Only the ID is trusted; the hub re-reads the stored row before
// relaying.
type SendMessageEvent struct {
	Message models.Message
}

type TypingEvent struct {
	ConversationID uuid.UUID
	ReceiverID     uuid.UUID
	Stopped        bool
}

type MessageSeenEvent struct {
	MessageID uuid.UUID
	SenderID  uuid.UUID
}

func (SendMessageEvent) inboundEvent() {}
func (TypingEvent) inboundEvent()      {}
func (MessageSeenEvent) inboundEvent() {}

type envelope struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type typingPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	ReceiverID     uuid.UUID `json:"receiver_id"`
}

type seenPayload struct {
	MessageID uuid.UUID `json:"message_id"`
	SenderID  uuid.UUID `json:"sender_id"`
}

// TypingNotice is the outbound payload for user-typing / user-stopped-typing.
type TypingNotice struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	UserID         uuid.UUID `json:"user_id"`
}

// DecodeInbound parses one client frame into its tagged variant.
func DecodeInbound(frame []byte) (InboundEvent, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch env.Event {
	case EventSendMessage:
		var msg models.Message
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return nil, fmt.Errorf("malformed send-message payload: %w", err)
		}
		if msg.ID == uuid.Nil {
			return nil, errors.New("send-message payload missing message id")
		}
		return SendMessageEvent{Message: msg}, nil

	case EventTyping, EventStopTyping:
		var p typingPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("malformed typing payload: %w", err)
		}
		if p.ReceiverID == uuid.Nil {
			return nil, errors.New("typing payload missing receiver id")
		}
		return TypingEvent{
			ConversationID: p.ConversationID,
			ReceiverID:     p.ReceiverID,
			Stopped:        env.Event == EventStopTyping,
		}, nil

	case EventMessageSeen:
		var p seenPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return nil, fmt.Errorf("malformed message-seen payload: %w", err)
		}
		if p.MessageID == uuid.Nil || p.SenderID == uuid.Nil {
			return nil, errors.New("message-seen payload missing ids")
		}
		return MessageSeenEvent{MessageID: p.MessageID, SenderID: p.SenderID}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
}
