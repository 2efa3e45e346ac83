package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/auth"
	"github.com/hackett-digital/transform-engine/pkg/hackett"
	"github.com/hackett-digital/transform-engine/pkg/models"
)

// HackettIPHandler serves the static IP-asset catalog.
type HackettIPHandler struct {
	catalog *hackett.Catalog
	logger  *zap.Logger
}

// NewHackettIPHandler creates a new HackettIPHandler.
func NewHackettIPHandler(catalog *hackett.Catalog, logger *zap.Logger) *HackettIPHandler {
	return &HackettIPHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the catalog route behind auth.
func (h *HackettIPHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/hackett-ip", authMiddleware.RequireAuth(h.List))
}

// List handles GET /api/hackett-ip?phase=&category=. Both filters are
// optional; phase must be in [1,7] when present.
func (h *HackettIPHandler) List(w http.ResponseWriter, r *http.Request) {
	phase := 0
	if raw := r.URL.Query().Get("phase"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > models.PhaseCount {
			_ = ErrorResponse(w, http.StatusBadRequest, "Phase must be a number between 1 and 7")
			return
		}
		phase = parsed
	}
	category := r.URL.Query().Get("category")

	assets := h.catalog.Filter(phase, category)
	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
}
