package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/auth"
	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/services"
)

const insightNotFoundMsg = "AI insight not found"

// InsightHandler serves the ai-insights resource.
type InsightHandler struct {
	insights services.InsightService
	logger   *zap.Logger
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insights services.InsightService, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{insights: insights, logger: logger}
}

// RegisterRoutes registers the insight routes behind auth.
func (h *InsightHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/ai-insights", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/ai-insights", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("PUT /api/ai-insights/{id}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /api/ai-insights/{id}", authMiddleware.RequireAuth(h.Delete))
}

// List handles GET /api/ai-insights?companyId=.
func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	raw := r.URL.Query().Get("companyId")
	if raw == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "Company ID is required")
		return
	}
	companyID, err := uuid.Parse(raw)
	if err != nil {
		_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
		return
	}

	insights, err := h.insights.ListByCompany(r.Context(), userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
			return
		}
		h.logger.Error("Failed to fetch insights", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch insights")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"insights": insights})
}

// createInsightRequest is the tagged union accepted by POST /api/ai-insights:
// either a single insight (companyId plus insight fields at the top level) or
// a bulk payload (companyId plus an insights array).
type createInsightRequest struct {
	models.AIInsight
	Insights []*models.AIInsight `json:"insights"`
}

// Create handles POST /api/ai-insights for both single and bulk shapes.
func (h *InsightHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req createInsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CompanyID == uuid.Nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Company ID is required")
		return
	}

	if req.Insights != nil {
		created, err := h.insights.BulkCreate(r.Context(), userID, req.CompanyID, req.Insights)
		if err != nil {
			h.writeCreateError(w, err)
			return
		}
		_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"insights": created})
		return
	}

	if req.Title == "" && req.Type == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "Insight data is required")
		return
	}

	insight := req.AIInsight
	created, err := h.insights.Create(r.Context(), userID, &insight)
	if err != nil {
		h.writeCreateError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"insight": created})
}

func (h *InsightHandler) writeCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		_ = ErrorResponse(w, http.StatusBadRequest, "Company ID is required")
	case errors.Is(err, apperrors.ErrNotFound):
		_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
	default:
		h.logger.Error("Failed to create insights", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to create insights")
	}
}

// Update handles PUT /api/ai-insights/{id}. A missing insight is 404; an
// insight owned through someone else's company is 403. The asymmetry with
// the company routes is part of the API contract.
func (h *InsightHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())
	insightID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusNotFound, insightNotFoundMsg)
		return
	}

	var update models.InsightUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	insight, err := h.insights.Update(r.Context(), userID, insightID, &update)
	if err != nil {
		h.writeOwnershipError(w, err, "Failed to update insight")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"insight": insight})
}

// Delete handles DELETE /api/ai-insights/{id}.
func (h *InsightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())
	insightID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusNotFound, insightNotFoundMsg)
		return
	}

	if err := h.insights.Delete(r.Context(), userID, insightID); err != nil {
		h.writeOwnershipError(w, err, "Failed to delete insight")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]string{"message": "AI insight deleted successfully"})
}

func (h *InsightHandler) writeOwnershipError(w http.ResponseWriter, err error, generic string) {
	switch {
	case errors.Is(err, apperrors.ErrOwnershipMismatch):
		_ = ErrorResponse(w, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, apperrors.ErrNotFound):
		_ = ErrorResponse(w, http.StatusNotFound, insightNotFoundMsg)
	default:
		h.logger.Error(generic, zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, generic)
	}
}
