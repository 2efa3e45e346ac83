package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hackett-digital/transform-engine/pkg/intelligence"
	"github.com/hackett-digital/transform-engine/pkg/models"
)

func testProfile() *models.CompanyProfile {
	return &models.CompanyProfile{
		Name:       "Acme Industrial",
		Industry:   "Manufacturing",
		Revenue:    "$500M-$1B",
		Employees:  "1000-5000",
		Region:     "North America",
		ERPSystem:  "SAP S/4HANA",
		PainPoints: []string{"Slow month-end close", "Manual invoice processing"},
		Objectives: []string{"Reduce finance cost by 25%"},
	}
}

func TestBuildIntelligencePrompt(t *testing.T) {
	prompt := BuildIntelligencePrompt(testProfile(), intelligence.TypeRisk, "What about our ERP migration?")

	assert.Contains(t, prompt, "Acme Industrial")
	assert.Contains(t, prompt, "Manufacturing")
	assert.Contains(t, prompt, "SAP S/4HANA")
	assert.Contains(t, prompt, "Slow month-end close")
	assert.Contains(t, prompt, "Reduce finance cost by 25%")
	assert.Contains(t, prompt, "What about our ERP migration?")
	assert.Contains(t, prompt, typeInstructions[intelligence.TypeRisk])

	// The response-format headings must match what the parser looks for.
	for _, heading := range []string{
		"Strategic Summary", "Detailed Analysis", "Actionable Recommendations",
		"Financial Impact", "Implementation Approach", "Success Metrics", "Timeframe",
	} {
		assert.Contains(t, prompt, heading)
	}
}

func TestBuildIntelligencePromptDefaults(t *testing.T) {
	prompt := BuildIntelligencePrompt(&models.CompanyProfile{}, "unknown-type", "")

	assert.Contains(t, prompt, "Company: Not specified")
	assert.Contains(t, prompt, typeInstructions[intelligence.TypeOpportunity])
	assert.NotContains(t, prompt, "## Specific Question")
}

func TestBuildPhasePlanPrompt(t *testing.T) {
	prompt := BuildPhasePlanPrompt(testProfile())

	assert.Contains(t, prompt, "Acme Industrial")
	assert.Contains(t, prompt, "seven-phase")
	assert.Contains(t, prompt, "Project Initiation")
	assert.Contains(t, prompt, "Implementation Support")
}
