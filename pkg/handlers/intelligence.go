package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/auth"
	"github.com/hackett-digital/transform-engine/pkg/intelligence"
	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/services"
)

// IntelligenceHandler serves the advanced-intelligence endpoint.
type IntelligenceHandler struct {
	analysis services.AnalysisService
	logger   *zap.Logger
}

// NewIntelligenceHandler creates a new IntelligenceHandler.
func NewIntelligenceHandler(analysis services.AnalysisService, logger *zap.Logger) *IntelligenceHandler {
	return &IntelligenceHandler{analysis: analysis, logger: logger}
}

// RegisterRoutes registers the intelligence route behind auth.
func (h *IntelligenceHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/ai-insights/advanced-intelligence", authMiddleware.RequireAuth(h.Generate))
}

type advancedIntelligenceRequest struct {
	CompanyProfile *models.CompanyProfile `json:"companyProfile"`
	AnalysisType   string                 `json:"analysisType"`
	SpecificQuery  string                 `json:"specificQuery"`
}

type advancedIntelligenceResponse struct {
	Success      bool                       `json:"success"`
	Intelligence *intelligence.Intelligence `json:"intelligence"`
	Timestamp    time.Time                  `json:"timestamp"`
	AnalysisType string                     `json:"analysisType"`
	Confidence   float64                    `json:"confidence"`
}

// Generate handles POST /api/ai-insights/advanced-intelligence. An upstream
// generation failure is absorbed into the deterministic fallback and still
// returns 200.
func (h *IntelligenceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req advancedIntelligenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CompanyProfile == nil || req.CompanyProfile.Name == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "Company profile is required")
		return
	}

	result, fellBack := h.analysis.GenerateAdvanced(r.Context(), req.CompanyProfile, req.AnalysisType, req.SpecificQuery)
	if fellBack {
		h.logger.Info("Served fallback intelligence",
			zap.String("analysis_type", result.Type))
	}

	_ = WriteJSON(w, http.StatusOK, advancedIntelligenceResponse{
		Success:      true,
		Intelligence: result,
		Timestamp:    time.Now().UTC(),
		AnalysisType: result.Type,
		Confidence:   result.Confidence,
	})
}
