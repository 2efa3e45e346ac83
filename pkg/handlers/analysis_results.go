package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/auth"
	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/services"
)

// AnalysisResultHandler serves the analysis-results resource.
type AnalysisResultHandler struct {
	results services.AnalysisResultService
	logger  *zap.Logger
}

// NewAnalysisResultHandler creates a new AnalysisResultHandler.
func NewAnalysisResultHandler(results services.AnalysisResultService, logger *zap.Logger) *AnalysisResultHandler {
	return &AnalysisResultHandler{results: results, logger: logger}
}

// RegisterRoutes registers the analysis result routes behind auth.
func (h *AnalysisResultHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/analysis-results", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/analysis-results", authMiddleware.RequireAuth(h.Create))
}

// List handles GET /api/analysis-results?companyId=.
func (h *AnalysisResultHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	companyID, ok := requireCompanyID(w, r)
	if !ok {
		return
	}

	results, err := h.results.ListByCompany(r.Context(), userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
			return
		}
		h.logger.Error("Failed to fetch analysis results", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch analysis results")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// Create handles POST /api/analysis-results.
func (h *AnalysisResultHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var result models.AnalysisResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.results.Create(r.Context(), userID, &result)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			_ = ErrorResponse(w, http.StatusBadRequest, "Analysis result data is invalid")
		case errors.Is(err, apperrors.ErrNotFound):
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
		default:
			h.logger.Error("Failed to create analysis result", zap.Error(err))
			_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to create analysis result")
		}
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"result": created})
}
