package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackett-digital/transform-engine/pkg/models"
)

func TestFallbackCoversAllTypes(t *testing.T) {
	for _, typ := range AllTypes() {
		result := Fallback(typ, nil)

		require.NotNil(t, result, typ)
		assert.Equal(t, typ, result.Type)
		assert.Equal(t, FallbackConfidence, result.Confidence, typ)
		assert.True(t, result.Actionable, typ)
		assert.Equal(t, "high", result.Priority, typ)
		assert.NotEmpty(t, result.Summary, typ)
		assert.NotEmpty(t, result.Analysis, typ)
		assert.NotEmpty(t, result.Recommendations, typ)
		assert.NotEmpty(t, result.SuccessMetrics, typ)
		assert.NotEmpty(t, result.FinancialImpact, typ)
		assert.NotEmpty(t, result.Timeframe, typ)
	}
}

func TestFallbackUnknownType(t *testing.T) {
	result := Fallback("nonsense", nil)
	assert.Equal(t, TypeOpportunity, result.Type)
	assert.Equal(t, FallbackConfidence, result.Confidence)
}

func TestFallbackPersonalizesSummary(t *testing.T) {
	profile := &models.CompanyProfile{Name: "Acme Industrial"}
	result := Fallback(TypeRisk, profile)
	assert.Contains(t, result.Summary, "Acme Industrial")
	assert.Contains(t, result.FullContent, "Acme Industrial")
}

func TestFallbackReturnsIndependentSlices(t *testing.T) {
	a := Fallback(TypeFinancial, nil)
	b := Fallback(TypeFinancial, nil)
	a.Recommendations[0] = "mutated"
	assert.NotEqual(t, a.Recommendations[0], b.Recommendations[0])
}
