package intelligence

import (
	"fmt"

	"github.com/hackett-digital/transform-engine/pkg/models"
)

// Fallback returns the deterministic intelligence payload for the given
// analysis type. It is substituted whenever the text-generation service
// fails; the caller still responds 200 because a usable answer exists.
func Fallback(analysisType string, profile *models.CompanyProfile) *Intelligence {
	normalized := NormalizeType(analysisType)
	content := fallbackContent[normalized]

	summary := content.summary
	if profile != nil && profile.Name != "" {
		summary = fmt.Sprintf("%s: %s", profile.Name, content.summary)
	}

	return &Intelligence{
		Type:            normalized,
		Summary:         summary,
		Analysis:        content.analysis,
		Recommendations: append([]string{}, content.recommendations...),
		FinancialImpact: content.financialImpact,
		Implementation:  content.implementation,
		SuccessMetrics:  append([]string{}, content.successMetrics...),
		Confidence:      FallbackConfidence,
		Actionable:      true,
		Priority:        "high",
		Timeframe:       content.timeframe,
		FullContent:     fmt.Sprintf("%s\n\n%s", summary, content.analysis),
	}
}

type fallbackEntry struct {
	summary         string
	analysis        string
	recommendations []string
	financialImpact string
	implementation  string
	successMetrics  []string
	timeframe       string
}

var fallbackContent = map[string]fallbackEntry{
	TypeCompetitive: {
		summary: "Competitive positioning analysis indicates meaningful headroom versus industry peers in digital finance capability.",
		analysis: "Peer organizations in the same revenue band are consolidating transactional finance into shared services and deploying AI-assisted close processes. " +
			"Organizations that delay this shift typically concede 10-15% cost efficiency to leaders within three years.",
		recommendations: []string{
			"Benchmark finance cost as a percentage of revenue against top-quartile peers",
			"Prioritize automation of the two highest-volume transactional processes",
			"Establish a quarterly competitive-capability review",
		},
		financialImpact: "Closing the gap to top-quartile performers typically yields 20-30% reduction in finance operating cost.",
		implementation:  "Begin with a capability baseline, then sequence investments against the phases of the transformation roadmap.",
		successMetrics: []string{
			"Finance cost as % of revenue",
			"Days to close",
			"Transactional automation rate",
		},
		timeframe: "6-9 months",
	},
	TypeRisk: {
		summary: "Risk assessment identifies change management and data quality as the dominant transformation risks.",
		analysis: "Transformation programs of this scale most commonly stall on organizational adoption rather than technology. " +
			"ERP data quality issues compound downstream analytics and automation efforts if not remediated early.",
		recommendations: []string{
			"Stand up a dedicated change-management workstream with executive sponsorship",
			"Run a data quality assessment before automation buildout",
			"Define rollback criteria for each major cutover",
		},
		financialImpact: "Unmitigated adoption risk historically erodes 25-40% of projected transformation value.",
		implementation:  "Embed risk reviews into each phase gate with explicit go/no-go criteria.",
		successMetrics: []string{
			"Training completion rate",
			"Data quality score",
			"Phase-gate pass rate",
		},
		timeframe: "Ongoing across all phases",
	},
	TypeOpportunity: {
		summary: "Opportunity scan highlights process automation and working-capital optimization as the highest-value near-term plays.",
		analysis: "Based on the engagement profile, invoice processing, close orchestration and management reporting are the processes with the " +
			"strongest automation fit. Working-capital levers (payment terms, collections prioritization) offer value without systems change.",
		recommendations: []string{
			"Automate invoice capture and matching",
			"Deploy AI-assisted close task orchestration",
			"Launch a working-capital quick-wins sprint",
		},
		financialImpact: "Combined opportunity value typically reaches 2-4% of revenue for organizations at this maturity level.",
		implementation:  "Sequence quick wins inside the first two roadmap phases to fund later stages.",
		successMetrics: []string{
			"Touchless invoice rate",
			"Days sales outstanding",
			"Reporting cycle time",
		},
		timeframe: "3-6 months",
	},
	TypeBenchmarking: {
		summary: "Benchmarking against industry peers places current performance near median with clear top-quartile gaps.",
		analysis: "World-class finance organizations operate at roughly half the cost of the peer median while delivering faster cycle times. " +
			"The largest measured gaps for organizations with this profile are in transactional automation and self-service reporting.",
		recommendations: []string{
			"Adopt top-quartile process taxonomies for the benchmarked functions",
			"Target the two largest cost-gap processes first",
			"Re-benchmark after each completed roadmap phase",
		},
		financialImpact: "Moving from median to top-quartile performance is typically worth 30-40% of current function cost.",
		implementation:  "Use the benchmark baseline as the value-tracking reference for the whole program.",
		successMetrics: []string{
			"Cost per transaction",
			"Staff ratio vs. peer group",
			"Cycle time vs. top quartile",
		},
		timeframe: "Baseline within 4-6 weeks",
	},
	TypeFinancial: {
		summary: "Financial model projects a positive business case with payback inside the second year of the program.",
		analysis: "Value is concentrated in labor productivity from automation, error-rate reduction, and faster decision cycles. " +
			"The model assumes phased benefit capture aligned to the seven-phase roadmap rather than a single cutover.",
		recommendations: []string{
			"Validate the benefits baseline with finance leadership",
			"Tie benefit capture to phase-gate exits",
			"Review run-rate savings quarterly against the model",
		},
		financialImpact: "Projected net value of 2.5-3.5x program cost over three years.",
		implementation:  "Maintain the model as a living artifact owned by the value-realization workstream.",
		successMetrics: []string{
			"Realized vs. modeled savings",
			"Program payback period",
			"Benefit capture rate per phase",
		},
		timeframe: "12-36 months",
	},
	TypeImplementation: {
		summary: "Implementation strategy favors a phased rollout with AI-accelerated delivery in the analysis and design stages.",
		analysis: "A seven-phase structure balances speed and adoption: early phases concentrate discovery and data work where AI tooling " +
			"compresses effort most, while later phases protect adoption through parallel-run and stabilization windows.",
		recommendations: []string{
			"Run discovery and data collection with AI-assisted document analysis",
			"Protect a stabilization window after each major go-live",
			"Staff client-side process owners from phase one",
		},
		financialImpact: "AI-accelerated delivery typically compresses program duration 30-40% versus traditional approaches.",
		implementation:  "Govern through weekly delivery reviews and phase-gate quality criteria.",
		successMetrics: []string{
			"Phase completion vs. plan",
			"Defect rate at go-live",
			"Adoption rate at 30 days",
		},
		timeframe: "9-14 months end to end",
	},
}
