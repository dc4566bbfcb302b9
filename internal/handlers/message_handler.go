package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/services"
)

type MessageHandler struct {
	messaging *services.MessagingService
}

func NewMessageHandler(messaging *services.MessagingService) *MessageHandler {
	return &MessageHandler{messaging: messaging}
}

func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	conversations, err := h.messaging.ListConversations(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversations)
}

// GetOrCreateConversation resolves the thread between the caller and the
// user in the path, creating it if this is first contact.
func (h *MessageHandler) GetOrCreateConversation(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	peerID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	conversation, err := h.messaging.GetOrCreateConversation(r.Context(), user.ID, peerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}

func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	conversationID, err := uuid.Parse(chi.URLParam(r, "conversationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	pageResult, err := h.messaging.ListMessages(r.Context(), user.ID, conversationID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageResult)
}

type sendMessageRequest struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Content        string    `json:"content"`
	MessageType    string    `json:"message_type"`
	ImageURL       string    `json:"image_url"`
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messaging.SendMessage(r.Context(), user.ID, services.SendMessageRequest{
		ConversationID: req.ConversationID,
		Content:        req.Content,
		MessageType:    req.MessageType,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

func (h *MessageHandler) MarkMessageSeen(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	message, err := h.messaging.MarkMessageSeen(r.Context(), user.ID, messageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message)
}

func (h *MessageHandler) MarkConversationSeen(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	conversationID, err := uuid.Parse(chi.URLParam(r, "conversationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	if err := h.messaging.MarkConversationSeen(r.Context(), user.ID, conversationID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "messages marked as seen"})
}
