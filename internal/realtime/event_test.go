package realtime

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound_SendMessage(t *testing.T) {
	messageID := uuid.New()
	frame := fmt.Sprintf(`{"event":"send-message","data":{"id":%q,"content":"hi"}}`, messageID)

	event, err := DecodeInbound([]byte(frame))
	require.NoError(t, err)

	sendEvent, ok := event.(SendMessageEvent)
	require.True(t, ok)
	assert.Equal(t, messageID, sendEvent.Message.ID)
	assert.Equal(t, "hi", sendEvent.Message.Content)
}

func TestDecodeInbound_Typing(t *testing.T) {
	conversationID := uuid.New()
	receiverID := uuid.New()

	for _, tc := range []struct {
		name    string
		stopped bool
	}{
		{"typing", false},
		{"stop-typing", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			frame := fmt.Sprintf(`{"event":%q,"data":{"conversation_id":%q,"receiver_id":%q}}`, tc.name, conversationID, receiverID)

			event, err := DecodeInbound([]byte(frame))
			require.NoError(t, err)

			typingEvent, ok := event.(TypingEvent)
			require.True(t, ok)
			assert.Equal(t, conversationID, typingEvent.ConversationID)
			assert.Equal(t, receiverID, typingEvent.ReceiverID)
			assert.Equal(t, tc.stopped, typingEvent.Stopped)
		})
	}
}

func TestDecodeInbound_MessageSeen(t *testing.T) {
	messageID := uuid.New()
	senderID := uuid.New()
	frame := fmt.Sprintf(`{"event":"message-seen","data":{"message_id":%q,"sender_id":%q}}`, messageID, senderID)

	event, err := DecodeInbound([]byte(frame))
	require.NoError(t, err)

	seenEvent, ok := event.(MessageSeenEvent)
	require.True(t, ok)
	assert.Equal(t, messageID, seenEvent.MessageID)
	assert.Equal(t, senderID, seenEvent.SenderID)
}

func TestDecodeInbound_UnknownEvent(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"event":"reboot-server","data":{}}`))
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDecodeInbound_MalformedFrame(t *testing.T) {
	_, err := DecodeInbound([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeInbound_MissingIDs(t *testing.T) {
	for name, frame := range map[string]string{
		"send-message without id": `{"event":"send-message","data":{"content":"hi"}}`,
		"typing without receiver": `{"event":"typing","data":{}}`,
		"seen without ids":        `{"event":"message-seen","data":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeInbound([]byte(frame))
			assert.Error(t, err)
		})
	}
}

// Outbound envelopes must keep the event/data shape clients consume.
func TestEventEnvelopeShape(t *testing.T) {
	userID := uuid.New()
	raw, err := json.Marshal(Event{Name: EventUserOnline, Data: userID})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "user-online", decoded["event"])
	assert.Equal(t, userID.String(), decoded["data"])
}
