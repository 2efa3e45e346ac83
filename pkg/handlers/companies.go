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

const companyNotFoundMsg = "Company not found or unauthorized"

// CompanyHandler serves the companies resource.
type CompanyHandler struct {
	companies services.CompanyService
	analysis  services.AnalysisService
	logger    *zap.Logger
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companies services.CompanyService, analysis services.AnalysisService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{companies: companies, analysis: analysis, logger: logger}
}

// RegisterRoutes registers the company routes behind auth.
func (h *CompanyHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/companies", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/companies", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/companies/{id}", authMiddleware.RequireAuth(h.GetAggregate))
	mux.HandleFunc("PUT /api/companies/{id}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /api/companies/{id}", authMiddleware.RequireAuth(h.Delete))
	mux.HandleFunc("POST /api/companies/{id}/generate-analysis", authMiddleware.RequireAuth(h.GenerateAnalysis))
}

// List handles GET /api/companies.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	companies, err := h.companies.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch companies", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch companies")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
}

// Create handles POST /api/companies. The owning user always comes from the
// caller's identity, never the body.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var company models.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.companies.Create(r.Context(), userID, &company)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			_ = ErrorResponse(w, http.StatusBadRequest, "Client name is required")
			return
		}
		h.logger.Error("Failed to create company", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to create company")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"company": created})
}

// GetAggregate handles GET /api/companies/{id}, returning the company's
// insight and phase lists.
func (h *CompanyHandler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
		return
	}

	aggregate, err := h.companies.GetAggregate(r.Context(), userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
			return
		}
		h.logger.Error("Failed to fetch company data", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch company data")
		return
	}

	_ = WriteJSON(w, http.StatusOK, aggregate)
}

// Update handles PUT /api/companies/{id}. Missing and foreign companies get
// the same 404 so existence does not leak.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
		return
	}

	var update models.CompanyUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	company, err := h.companies.Update(r.Context(), userID, companyID, &update)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
			return
		}
		h.logger.Error("Failed to update company", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to update company")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"company": company})
}

// Delete handles DELETE /api/companies/{id}.
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
		return
	}

	if err := h.companies.Delete(r.Context(), userID, companyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
			return
		}
		h.logger.Error("Failed to delete company", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to delete company")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]string{"message": "Company deleted successfully"})
}

// GenerateAnalysis handles POST /api/companies/{id}/generate-analysis. A
// failure persisting the generated roadmap surfaces as a warning field on a
// 200 response; the company update has already committed.
func (h *CompanyHandler) GenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())
	companyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
		return
	}

	analysis, err := h.analysis.GenerateFullAnalysis(r.Context(), userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
			return
		}
		h.logger.Error("Failed to generate analysis", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to generate analysis")
		return
	}

	response := map[string]interface{}{
		"success":  true,
		"company":  analysis.Company,
		"phases":   analysis.Phases,
		"insights": analysis.Insights,
	}
	if analysis.Warning != "" {
		response["warning"] = analysis.Warning
	}
	_ = WriteJSON(w, http.StatusOK, response)
}
