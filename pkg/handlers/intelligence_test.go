package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/intelligence"
)

func registerIntelligenceRoutes(svc *mockAnalysisService, userID uuid.UUID, reject bool) func(mux *http.ServeMux) {
	return func(mux *http.ServeMux) {
		NewIntelligenceHandler(svc, zap.NewNop()).RegisterRoutes(mux, newTestMiddleware(userID, reject))
	}
}

func intelligenceRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/ai-insights/advanced-intelligence", strings.NewReader(body))
}

func TestAdvancedIntelligenceLive(t *testing.T) {
	rec := serve(registerIntelligenceRoutes(&mockAnalysisService{}, uuid.New(), false),
		intelligenceRequest(`{"companyProfile":{"name":"Acme"},"analysisType":"risk-assessment"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success      bool                       `json:"success"`
		Intelligence *intelligence.Intelligence `json:"intelligence"`
		AnalysisType string                     `json:"analysisType"`
		Confidence   float64                    `json:"confidence"`
		Timestamp    string                     `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Intelligence)
	assert.Equal(t, intelligence.TypeRisk, body.AnalysisType)
	assert.Equal(t, intelligence.LiveConfidence, body.Confidence)
	assert.NotEmpty(t, body.Timestamp)
	assert.True(t, body.Intelligence.Actionable)
	assert.Equal(t, "high", body.Intelligence.Priority)
}

func TestAdvancedIntelligenceFallbackIsStill200(t *testing.T) {
	for _, typ := range intelligence.AllTypes() {
		rec := serve(registerIntelligenceRoutes(&mockAnalysisService{fallback: true}, uuid.New(), false),
			intelligenceRequest(`{"companyProfile":{"name":"Acme"},"analysisType":"`+typ+`"}`))

		require.Equal(t, http.StatusOK, rec.Code, typ)
		var body struct {
			Confidence   float64 `json:"confidence"`
			AnalysisType string  `json:"analysisType"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, intelligence.FallbackConfidence, body.Confidence, typ)
		assert.Equal(t, typ, body.AnalysisType)
	}
}

func TestAdvancedIntelligenceUnknownTypeDefaults(t *testing.T) {
	rec := serve(registerIntelligenceRoutes(&mockAnalysisService{}, uuid.New(), false),
		intelligenceRequest(`{"companyProfile":{"name":"Acme"},"analysisType":"whatever"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), intelligence.TypeOpportunity)
}

func TestAdvancedIntelligenceRequiresProfile(t *testing.T) {
	rec := serve(registerIntelligenceRoutes(&mockAnalysisService{}, uuid.New(), false),
		intelligenceRequest(`{"analysisType":"risk-assessment"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(registerIntelligenceRoutes(&mockAnalysisService{}, uuid.New(), false),
		intelligenceRequest(`not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdvancedIntelligenceUnauthorized(t *testing.T) {
	rec := serve(registerIntelligenceRoutes(&mockAnalysisService{}, uuid.New(), true),
		intelligenceRequest(`{"companyProfile":{"name":"Acme"}}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}
