package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/innovatex/hub/internal/repositories"
	"github.com/innovatex/hub/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps service/repository sentinels onto HTTP statuses;
// anything unrecognized is a 500 with a generic body.
func writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case repositories.ErrNotFound:
		writeError(w, http.StatusNotFound, "not found")
	case services.ErrNotAuthorized:
		writeError(w, http.StatusForbidden, "not authorized")
	case services.ErrInvalidToken:
		writeError(w, http.StatusUnauthorized, "invalid token")
	case services.ErrInvalidCredentials:
		writeError(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	case services.ErrEmailExists:
		writeError(w, http.StatusConflict, services.ErrEmailExists.Error())
	case services.ErrInvalidRole:
		writeError(w, http.StatusBadRequest, services.ErrInvalidRole.Error())
	case services.ErrSelfConversation:
		writeError(w, http.StatusBadRequest, services.ErrSelfConversation.Error())
	case services.ErrEmptyMessage:
		writeError(w, http.StatusBadRequest, services.ErrEmptyMessage.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
