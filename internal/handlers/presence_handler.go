package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
	"github.com/innovatex/hub/internal/realtime"
	"github.com/innovatex/hub/internal/repositories"
)

// PresenceHandler exposes the read side of presence: the live table for who
// is online right now, the Redis last-seen snapshot for everyone else.
type PresenceHandler struct {
	presence realtime.Presence
	lastSeen repositories.LastSeenRepository
}

func NewPresenceHandler(presence realtime.Presence, lastSeen repositories.LastSeenRepository) *PresenceHandler {
	return &PresenceHandler{presence: presence, lastSeen: lastSeen}
}

func (h *PresenceHandler) Online(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"online": h.presence.Online()})
}

func (h *PresenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if _, ok := h.presence.Lookup(userID); ok {
		writeJSON(w, http.StatusOK, &models.Presence{
			UserID:   userID,
			Status:   string(models.StatusOnline),
			LastSeen: time.Now(),
		})
		return
	}

	snapshot, err := h.lastSeen.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
