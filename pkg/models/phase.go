package models

import (
	"time"

	"github.com/google/uuid"
)

// Workflow phase status values.
const (
	PhaseStatusCompleted  = "completed"
	PhaseStatusInProgress = "in-progress"
	PhaseStatusPending    = "pending"
	PhaseStatusAIEnhanced = "ai-enhanced"
)

// PhaseCount is the number of phases in the transformation methodology.
const PhaseCount = 7

// WorkflowPhase is one of seven ordered stages of the transformation
// methodology, tracked per company.
type WorkflowPhase struct {
	ID                    uuid.UUID `json:"id"`
	CompanyID             uuid.UUID `json:"companyId"`
	PhaseNumber           int       `json:"phaseNumber"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Status                string    `json:"status"`
	Progress              int       `json:"progress"`
	AIAcceleration        int       `json:"aiAcceleration"`
	AIAcceleratedDuration string    `json:"aiAcceleratedDuration"`
	TraditionalDuration   string    `json:"traditionalDuration"`
	Deliverables          []string  `json:"deliverables"`
	KeyActivities         []string  `json:"keyActivities"`
	Dependencies          []string  `json:"dependencies"`
	TeamRoles             []string  `json:"teamRoles"`
	ClientTasks           []string  `json:"clientTasks"`
	RiskFactors           []string  `json:"riskFactors"`
	SuccessMetrics        []string  `json:"successMetrics"`
	HackettIP             []string  `json:"hackettIP"`
	AISuggestions         []string  `json:"aiSuggestions"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}
