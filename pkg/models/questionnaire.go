package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Questionnaire stores one submitted onboarding or data-collection form.
// The data payload is opaque to the server.
type Questionnaire struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"companyId"`
	Type        string          `json:"type"`
	Data        json.RawMessage `json:"data"`
	CompletedAt time.Time       `json:"completedAt"`
}
