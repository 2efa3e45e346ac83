// Package prompts builds the text prompts sent to the generation service.
package prompts

import (
	"fmt"
	"strings"

	"github.com/hackett-digital/transform-engine/pkg/intelligence"
	"github.com/hackett-digital/transform-engine/pkg/models"
)

// Per-type focus instructions. Each entry steers the analysis toward the
// dimension the endpoint advertises.
var typeInstructions = map[string]string{
	intelligence.TypeCompetitive: "Focus on competitive positioning: how peer organizations in this industry " +
		"approach finance transformation, where this client leads or lags, and the cost of inaction.",
	intelligence.TypeRisk: "Focus on transformation risk: adoption and change-management exposure, data quality, " +
		"vendor and timeline risk, and concrete mitigations for each.",
	intelligence.TypeOpportunity: "Focus on value opportunities: the highest-impact process automation, " +
		"working-capital and organizational plays available to this client in the next 12 months.",
	intelligence.TypeBenchmarking: "Focus on benchmarking: how this client's finance function compares to " +
		"industry median and top-quartile performance, with the largest measurable gaps first.",
	intelligence.TypeFinancial: "Focus on the financial model: quantified benefits, investment profile, " +
		"payback period and sensitivity of the business case.",
	intelligence.TypeImplementation: "Focus on implementation strategy: phasing, sequencing, staffing and " +
		"governance of the transformation program, including where AI tooling accelerates delivery.",
}

// BuildIntelligencePrompt creates the prompt for one advanced-intelligence
// run. It embeds the engagement profile, the per-type focus instruction, and
// the required response headings so the output stays machine-parseable.
func BuildIntelligencePrompt(profile *models.CompanyProfile, analysisType, specificQuery string) string {
	normalized := intelligence.NormalizeType(analysisType)

	var prompt strings.Builder

	prompt.WriteString("# Finance Transformation Advisory Analysis\n\n")
	prompt.WriteString("You are a senior advisor at a management consultancy specializing in digital finance transformation. ")
	prompt.WriteString("Produce a rigorous, decision-ready analysis for the engagement below.\n\n")

	prompt.WriteString("## Client Profile\n\n")
	writeProfileLine(&prompt, "Company", profile.Name)
	writeProfileLine(&prompt, "Industry", profile.Industry)
	writeProfileLine(&prompt, "Annual revenue", profile.Revenue)
	writeProfileLine(&prompt, "Employees", profile.Employees)
	writeProfileLine(&prompt, "Region", profile.Region)
	writeProfileLine(&prompt, "ERP system", profile.ERPSystem)
	if len(profile.PainPoints) > 0 {
		prompt.WriteString("Pain points:\n")
		for _, p := range profile.PainPoints {
			prompt.WriteString(fmt.Sprintf("- %s\n", p))
		}
	}
	if len(profile.Objectives) > 0 {
		prompt.WriteString("Transformation objectives:\n")
		for _, o := range profile.Objectives {
			prompt.WriteString(fmt.Sprintf("- %s\n", o))
		}
	}
	prompt.WriteString("\n")

	prompt.WriteString("## Analysis Focus\n\n")
	prompt.WriteString(typeInstructions[normalized])
	prompt.WriteString("\n\n")

	if specificQuery != "" {
		prompt.WriteString("## Specific Question\n\n")
		prompt.WriteString(specificQuery)
		prompt.WriteString("\n\n")
	}

	prompt.WriteString("## Response Format\n\n")
	prompt.WriteString("Structure your response with exactly these headings:\n\n")
	prompt.WriteString("## Strategic Summary\n")
	prompt.WriteString("Two to three sentences a CFO can act on.\n\n")
	prompt.WriteString("## Detailed Analysis\n")
	prompt.WriteString("The supporting evidence and reasoning.\n\n")
	prompt.WriteString("## Actionable Recommendations\n")
	prompt.WriteString("Bulleted list, most valuable first.\n\n")
	prompt.WriteString("## Financial Impact\n")
	prompt.WriteString("Quantified where possible.\n\n")
	prompt.WriteString("## Implementation Approach\n")
	prompt.WriteString("How to sequence and govern the work.\n\n")
	prompt.WriteString("## Success Metrics\n")
	prompt.WriteString("Bulleted list of measurable indicators.\n\n")
	prompt.WriteString("## Timeframe\n")
	prompt.WriteString("Expected duration for the recommended work.\n")

	return prompt.String()
}

// BuildPhasePlanPrompt creates the prompt for the full seven-phase analysis
// run, asking for phase-level deliverables and insights in one pass.
func BuildPhasePlanPrompt(profile *models.CompanyProfile) string {
	var prompt strings.Builder

	prompt.WriteString("# Transformation Roadmap Generation\n\n")
	prompt.WriteString("Design a seven-phase finance transformation roadmap for the client below. ")
	prompt.WriteString("Each phase needs concrete objectives, key activities and deliverables grounded in the client's profile.\n\n")

	prompt.WriteString("## Client Profile\n\n")
	writeProfileLine(&prompt, "Company", profile.Name)
	writeProfileLine(&prompt, "Industry", profile.Industry)
	writeProfileLine(&prompt, "Annual revenue", profile.Revenue)
	writeProfileLine(&prompt, "ERP system", profile.ERPSystem)
	if len(profile.PainPoints) > 0 {
		prompt.WriteString("Pain points:\n")
		for _, p := range profile.PainPoints {
			prompt.WriteString(fmt.Sprintf("- %s\n", p))
		}
	}
	prompt.WriteString("\n")

	prompt.WriteString("## Phases\n\n")
	prompt.WriteString("1. Project Initiation\n")
	prompt.WriteString("2. Parallel Workstream Launch\n")
	prompt.WriteString("3. AI-Powered Data Collection\n")
	prompt.WriteString("4. Analysis & Insight Generation\n")
	prompt.WriteString("5. Solution Design\n")
	prompt.WriteString("6. Client Review & Handoff\n")
	prompt.WriteString("7. Implementation Support\n")

	return prompt.String()
}

func writeProfileLine(prompt *strings.Builder, label, value string) {
	if value == "" {
		value = "Not specified"
	}
	prompt.WriteString(fmt.Sprintf("%s: %s\n", label, value))
}
