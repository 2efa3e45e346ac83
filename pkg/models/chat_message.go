package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one entry of a company's advisory chat transcript.
type ChatMessage struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"companyId"`
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	Confidence   *int      `json:"confidence,omitempty"`
	RelatedPhase *int      `json:"relatedPhase,omitempty"`
	ModelName    *string   `json:"modelName,omitempty"`
	IsError      bool      `json:"isError"`
	IsFallback   bool      `json:"isFallback"`
	CreatedAt    time.Time `json:"createdAt"`
}
