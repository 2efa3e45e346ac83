package models

import (
	"time"

	"github.com/google/uuid"
)

// AI insight types.
const (
	InsightTypeRecommendation = "recommendation"
	InsightTypeRisk           = "risk"
	InsightTypeOpportunity    = "opportunity"
	InsightTypeBenchmark      = "benchmark"
	InsightTypeAutomation     = "automation"
)

// Insight impact levels.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// AIInsight is a single generated recommendation/risk/opportunity record
// attached to a company and a phase number.
type AIInsight struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       uuid.UUID  `json:"companyId"`
	Type            string     `json:"type"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Confidence      int        `json:"confidence"`
	Impact          string     `json:"impact"`
	Source          string     `json:"source"`
	Phase           int        `json:"phase"`
	Actionable      bool       `json:"actionable"`
	EstimatedValue  *float64   `json:"estimatedValue,omitempty"`
	Timeframe       *string    `json:"timeframe,omitempty"`
	Dependencies    []string   `json:"dependencies"`
	Recommendations []string   `json:"recommendations"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// InsightUpdate carries a partial update; nil fields are left unchanged.
type InsightUpdate struct {
	Type            *string   `json:"type"`
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Confidence      *int      `json:"confidence"`
	Impact          *string   `json:"impact"`
	Source          *string   `json:"source"`
	Phase           *int      `json:"phase"`
	Actionable      *bool     `json:"actionable"`
	EstimatedValue  *float64  `json:"estimatedValue"`
	Timeframe       *string   `json:"timeframe"`
	Dependencies    *[]string `json:"dependencies"`
	Recommendations *[]string `json:"recommendations"`
}

// Apply merges non-nil fields into the insight.
func (u *InsightUpdate) Apply(i *AIInsight) {
	if u.Type != nil {
		i.Type = *u.Type
	}
	if u.Title != nil {
		i.Title = *u.Title
	}
	if u.Description != nil {
		i.Description = *u.Description
	}
	if u.Confidence != nil {
		i.Confidence = *u.Confidence
	}
	if u.Impact != nil {
		i.Impact = *u.Impact
	}
	if u.Source != nil {
		i.Source = *u.Source
	}
	if u.Phase != nil {
		i.Phase = *u.Phase
	}
	if u.Actionable != nil {
		i.Actionable = *u.Actionable
	}
	if u.EstimatedValue != nil {
		i.EstimatedValue = u.EstimatedValue
	}
	if u.Timeframe != nil {
		i.Timeframe = u.Timeframe
	}
	if u.Dependencies != nil {
		i.Dependencies = *u.Dependencies
	}
	if u.Recommendations != nil {
		i.Recommendations = *u.Recommendations
	}
}
