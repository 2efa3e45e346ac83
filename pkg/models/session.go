package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// UserSession tracks one working session of a user, optionally scoped to a
// company. Last-activity is additionally mirrored to Redis when configured.
type UserSession struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	CompanyID    *uuid.UUID      `json:"companyId,omitempty"`
	SessionData  json.RawMessage `json:"sessionData"`
	StartedAt    time.Time       `json:"startedAt"`
	LastActivity time.Time       `json:"lastActivity"`
	EndedAt      *time.Time      `json:"endedAt,omitempty"`
}
