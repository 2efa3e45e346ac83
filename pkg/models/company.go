package models

import (
	"time"

	"github.com/google/uuid"
)

// Company status values follow the engagement lifecycle.
const (
	CompanyStatusInitiation     = "initiation"
	CompanyStatusDataCollection = "data-collection"
	CompanyStatusAnalysis       = "analysis"
	CompanyStatusRoadmap        = "roadmap"
	CompanyStatusReview         = "review"
	CompanyStatusImplementation = "implementation"
)

// Company is the aggregate root for one client transformation engagement.
// List-valued fields are persisted as JSON-encoded text columns.
type Company struct {
	ID                  uuid.UUID  `json:"id"`
	UserID              uuid.UUID  `json:"userId"`
	ClientName          string     `json:"clientName"`
	Industry            string     `json:"industry"`
	EngagementType      string     `json:"engagementType"`
	Status              string     `json:"status"`
	Progress            int        `json:"progress"`
	AIAcceleration      int        `json:"aiAcceleration"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion,omitempty"`
	TeamMembers         []string   `json:"teamMembers"`
	HackettIPMatches    int        `json:"hackettIPMatches"`
	Region              string     `json:"region"`
	ProjectValue        float64    `json:"projectValue"`
	CurrentPhase        int        `json:"currentPhase"`

	// Onboarding profile attributes
	Revenue    string   `json:"revenue"`
	Employees  string   `json:"employees"`
	ERPSystem  string   `json:"erpSystem"`
	PainPoints []string `json:"painPoints"`
	Objectives []string `json:"objectives"`
	Timeline   string   `json:"timeline"`
	Budget     string   `json:"budget"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompanyUpdate carries a partial update; nil fields are left unchanged.
type CompanyUpdate struct {
	ClientName          *string    `json:"clientName"`
	Industry            *string    `json:"industry"`
	EngagementType      *string    `json:"engagementType"`
	Status              *string    `json:"status"`
	Progress            *int       `json:"progress"`
	AIAcceleration      *int       `json:"aiAcceleration"`
	StartDate           *time.Time `json:"startDate"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion"`
	TeamMembers         *[]string  `json:"teamMembers"`
	HackettIPMatches    *int       `json:"hackettIPMatches"`
	Region              *string    `json:"region"`
	ProjectValue        *float64   `json:"projectValue"`
	CurrentPhase        *int       `json:"currentPhase"`
	Revenue             *string    `json:"revenue"`
	Employees           *string    `json:"employees"`
	ERPSystem           *string    `json:"erpSystem"`
	PainPoints          *[]string  `json:"painPoints"`
	Objectives          *[]string  `json:"objectives"`
	Timeline            *string    `json:"timeline"`
	Budget              *string    `json:"budget"`
}

// Apply merges non-nil fields into the company.
func (u *CompanyUpdate) Apply(c *Company) {
	if u.ClientName != nil {
		c.ClientName = *u.ClientName
	}
	if u.Industry != nil {
		c.Industry = *u.Industry
	}
	if u.EngagementType != nil {
		c.EngagementType = *u.EngagementType
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.Progress != nil {
		c.Progress = *u.Progress
	}
	if u.AIAcceleration != nil {
		c.AIAcceleration = *u.AIAcceleration
	}
	if u.StartDate != nil {
		c.StartDate = u.StartDate
	}
	if u.EstimatedCompletion != nil {
		c.EstimatedCompletion = u.EstimatedCompletion
	}
	if u.TeamMembers != nil {
		c.TeamMembers = *u.TeamMembers
	}
	if u.HackettIPMatches != nil {
		c.HackettIPMatches = *u.HackettIPMatches
	}
	if u.Region != nil {
		c.Region = *u.Region
	}
	if u.ProjectValue != nil {
		c.ProjectValue = *u.ProjectValue
	}
	if u.CurrentPhase != nil {
		c.CurrentPhase = *u.CurrentPhase
	}
	if u.Revenue != nil {
		c.Revenue = *u.Revenue
	}
	if u.Employees != nil {
		c.Employees = *u.Employees
	}
	if u.ERPSystem != nil {
		c.ERPSystem = *u.ERPSystem
	}
	if u.PainPoints != nil {
		c.PainPoints = *u.PainPoints
	}
	if u.Objectives != nil {
		c.Objectives = *u.Objectives
	}
	if u.Timeline != nil {
		c.Timeline = *u.Timeline
	}
	if u.Budget != nil {
		c.Budget = *u.Budget
	}
}
