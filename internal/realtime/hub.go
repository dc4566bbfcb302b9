package realtime

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/innovatex/hub/internal/models"
)

// Authenticator resolves a handshake credential to a user. Runs exactly once
// per connection attempt, before any other realtime logic sees the socket.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// MessageStore is the slice of the durable message store the hub needs: it
// re-reads a message by ID before relaying so nothing unpersisted is ever
// fanned out.
type MessageStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
}

// LastSeenStore records a presence snapshot when a connection terminates.
type LastSeenStore interface {
	Set(ctx context.Context, presence *models.Presence) error
}

// Hub owns the lifecycle of realtime connections: handshake authentication,
// presence registration with online/offline broadcasts, inbound event
// dispatch, and teardown.
type Hub struct {
	presence Presence
	relay    *Relay
	auth     Authenticator
	messages MessageStore
	lastSeen LastSeenStore
	upgrader websocket.Upgrader
}

func NewHub(presence Presence, relay *Relay, auth Authenticator, messages MessageStore, lastSeen LastSeenStore, clientURL string) *Hub {
	return &Hub{
		presence: presence,
		relay:    relay,
		auth:     auth,
		messages: messages,
		lastSeen: lastSeen,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == clientURL
			},
		},
	}
}

// HandleWS is the /ws endpoint. The credential is presented out-of-band at
// connection establishment (token query parameter or Authorization header)
// and checked before the upgrade, so a rejected client is never admitted.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}

	user, err := h.auth.Authenticate(r.Context(), token)
	if err != nil {
		http.Error(w, "authentication error", http.StatusUnauthorized)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed for %s: %v", user.ID, err)
		return
	}

	conn := newWSConn(ws)
	go conn.writePump()

	h.admit(user.ID, conn)
	h.readLoop(r.Context(), user.ID, conn, ws)
}

// admit registers presence and announces the user to everyone else. A second
// connection from the same user displaces the first; the displaced handle is
// closed best-effort and its teardown will not disturb the new registration.
func (h *Hub) admit(userID uuid.UUID, conn Conn) {
	if prev := h.presence.Register(userID, conn); prev != nil {
		prev.Close()
	}
	h.relay.Broadcast(userID, Event{Name: EventUserOnline, Data: userID})
	log.Printf("realtime: user connected: %s", userID)
}

// readLoop pumps inbound frames until the transport closes, then runs the
// terminate transition. Malformed frames are logged and skipped; nothing a
// client sends can take the loop down.
func (h *Hub) readLoop(ctx context.Context, userID uuid.UUID, conn Conn, ws *websocket.Conn) {
	defer h.terminate(userID, conn)

	ws.SetReadLimit(maxFrameSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := ws.ReadMessage()
		if err != nil {
			return
		}
		event, err := DecodeInbound(frame)
		if err != nil {
			log.Printf("realtime: dropping frame from %s: %v", userID, err)
			continue
		}
		h.dispatch(ctx, userID, event)
	}
}

// dispatch routes one decoded inbound event to the relay.
func (h *Hub) dispatch(ctx context.Context, senderID uuid.UUID, event InboundEvent) {
	switch ev := event.(type) {
	case SendMessageEvent:
		// Relay only what the store has. The client claims the message is
		// already persisted; verify and fan out the stored row.
		stored, err := h.messages.GetByID(ctx, ev.Message.ID)
		if err != nil {
			log.Printf("realtime: send-message %s from %s not found in store, dropping: %v", ev.Message.ID, senderID, err)
			return
		}
		if stored.SenderID != senderID {
			log.Printf("realtime: send-message %s sender mismatch (conn %s), dropping", stored.ID, senderID)
			return
		}
		h.relay.RelayMessage(stored)

	case TypingEvent:
		h.relay.RelayTyping(ev.ConversationID, ev.ReceiverID, senderID, !ev.Stopped)

	case MessageSeenEvent:
		h.relay.RelaySeen(ev.MessageID, ev.SenderID)
	}
}

// terminate removes presence and announces the user offline, but only when
// this connection still owns the entry: a connection displaced by a newer
// login must not mark the user offline.
func (h *Hub) terminate(userID uuid.UUID, conn Conn) {
	conn.Close()
	if !h.presence.Remove(userID, conn) {
		return
	}
	h.relay.Broadcast(userID, Event{Name: EventUserOffline, Data: userID})
	log.Printf("realtime: user disconnected: %s", userID)

	if h.lastSeen == nil {
		return
	}
	// The request context is gone by now; the snapshot write stands alone.
	snapshot := &models.Presence{UserID: userID, Status: string(models.StatusOffline)}
	if err := h.lastSeen.Set(context.Background(), snapshot); err != nil {
		log.Printf("realtime: last-seen write for %s failed: %v", userID, err)
	}
}
