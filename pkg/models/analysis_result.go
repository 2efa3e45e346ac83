package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Analysis result provenance.
const (
	GeneratedByAI     = "ai"
	GeneratedByManual = "manual"
	GeneratedByHybrid = "hybrid"
)

// Analysis result lifecycle status.
const (
	ResultStatusActive     = "active"
	ResultStatusArchived   = "archived"
	ResultStatusSuperseded = "superseded"
)

// AnalysisResult is a persisted record of one analysis run for a company.
type AnalysisResult struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"companyId"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Results     json.RawMessage `json:"results"`
	Confidence  int             `json:"confidence"`
	GeneratedBy string          `json:"generatedBy"`
	Phase       int             `json:"phase"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}
