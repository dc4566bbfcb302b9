package models

import (
	"time"

	"github.com/google/uuid"
)

type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusOffline PresenceStatus = "offline"
)

// Presence is the REST-visible snapshot of a user's reachability. The live
// connection table itself is in-process (internal/realtime); this record is
// what gets written to Redis on disconnect so profiles can show "last seen".
type Presence struct {
	UserID   uuid.UUID `json:"user_id"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"last_seen"`
}
