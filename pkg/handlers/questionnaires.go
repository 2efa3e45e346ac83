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

// QuestionnaireHandler serves the questionnaires resource.
type QuestionnaireHandler struct {
	questionnaires services.QuestionnaireService
	logger         *zap.Logger
}

// NewQuestionnaireHandler creates a new QuestionnaireHandler.
func NewQuestionnaireHandler(questionnaires services.QuestionnaireService, logger *zap.Logger) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaires: questionnaires, logger: logger}
}

// RegisterRoutes registers the questionnaire routes behind auth.
func (h *QuestionnaireHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/questionnaires", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/questionnaires", authMiddleware.RequireAuth(h.Create))
}

// List handles GET /api/questionnaires?companyId=.
func (h *QuestionnaireHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	companyID, ok := requireCompanyID(w, r)
	if !ok {
		return
	}

	questionnaires, err := h.questionnaires.ListByCompany(r.Context(), userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
			return
		}
		h.logger.Error("Failed to fetch questionnaires", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch questionnaires")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"questionnaires": questionnaires})
}

// Create handles POST /api/questionnaires.
func (h *QuestionnaireHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var questionnaire models.Questionnaire
	if err := json.NewDecoder(r.Body).Decode(&questionnaire); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.questionnaires.Create(r.Context(), userID, &questionnaire)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			_ = ErrorResponse(w, http.StatusBadRequest, "Questionnaire data is invalid")
		case errors.Is(err, apperrors.ErrNotFound):
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
		default:
			h.logger.Error("Failed to create questionnaire", zap.Error(err))
			_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to create questionnaire")
		}
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"questionnaire": created})
}
