// Package intelligence turns raw text-generation output into the structured
// advisory payload served by the API, with deterministic per-type fallbacks
// when the upstream service is unavailable.
package intelligence

// Analysis types supported by the advanced-intelligence endpoint.
const (
	TypeCompetitive    = "competitive-intelligence"
	TypeRisk           = "risk-assessment"
	TypeOpportunity    = "opportunity-identification"
	TypeBenchmarking   = "industry-benchmarking"
	TypeFinancial      = "financial-modeling"
	TypeImplementation = "implementation-strategy"
)

// Confidence levels distinguish a live service response from the
// deterministic fallback. Both are usable answers; only the provenance
// differs.
const (
	LiveConfidence     = 0.92
	FallbackConfidence = 0.89
)

// Intelligence is the structured result of one analysis run.
type Intelligence struct {
	Type            string   `json:"type"`
	Summary         string   `json:"summary"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
	FinancialImpact string   `json:"financialImpact"`
	Implementation  string   `json:"implementation"`
	SuccessMetrics  []string `json:"successMetrics"`
	Confidence      float64  `json:"confidence"`
	Actionable      bool     `json:"actionable"`
	Priority        string   `json:"priority"`
	Timeframe       string   `json:"timeframe"`
	FullContent     string   `json:"fullContent"`
}

// NormalizeType maps an analysis-type selector to a supported type.
// Unrecognized selectors default to opportunity identification.
func NormalizeType(analysisType string) string {
	switch analysisType {
	case TypeCompetitive, TypeRisk, TypeOpportunity, TypeBenchmarking, TypeFinancial, TypeImplementation:
		return analysisType
	default:
		return TypeOpportunity
	}
}

// AllTypes lists every supported analysis type.
func AllTypes() []string {
	return []string{
		TypeCompetitive,
		TypeRisk,
		TypeOpportunity,
		TypeBenchmarking,
		TypeFinancial,
		TypeImplementation,
	}
}
