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

// ChatMessageHandler serves the chat-messages resource.
type ChatMessageHandler struct {
	chat   services.ChatService
	logger *zap.Logger
}

// NewChatMessageHandler creates a new ChatMessageHandler.
func NewChatMessageHandler(chat services.ChatService, logger *zap.Logger) *ChatMessageHandler {
	return &ChatMessageHandler{chat: chat, logger: logger}
}

// RegisterRoutes registers the chat message routes behind auth.
func (h *ChatMessageHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/chat-messages", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/chat-messages", authMiddleware.RequireAuth(h.Create))
}

// List handles GET /api/chat-messages?companyId=, returning the transcript
// in chronological order.
func (h *ChatMessageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	companyID, ok := requireCompanyID(w, r)
	if !ok {
		return
	}

	messages, err := h.chat.ListByCompany(r.Context(), userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
			return
		}
		h.logger.Error("Failed to fetch chat messages", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch chat messages")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// Create handles POST /api/chat-messages.
func (h *ChatMessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var message models.ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.chat.Create(r.Context(), userID, &message)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			_ = ErrorResponse(w, http.StatusBadRequest, "Message data is invalid")
		case errors.Is(err, apperrors.ErrNotFound):
			_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
		default:
			h.logger.Error("Failed to create chat message", zap.Error(err))
			_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to create chat message")
		}
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]interface{}{"message": created})
}

// requireCompanyID extracts the mandatory companyId query parameter,
// writing the contract's 400/404 bodies when it is absent or malformed.
func requireCompanyID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("companyId")
	if raw == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "Company ID is required")
		return uuid.Nil, false
	}
	companyID, err := uuid.Parse(raw)
	if err != nil {
		_ = ErrorResponse(w, http.StatusNotFound, companyNotFoundMsg)
		return uuid.Nil, false
	}
	return companyID, true
}
