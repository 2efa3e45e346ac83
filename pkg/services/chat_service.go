package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/repositories"
)

// ChatService manages a company's advisory chat transcript.
type ChatService interface {
	ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*models.ChatMessage, error)
	Create(ctx context.Context, userID uuid.UUID, message *models.ChatMessage) (*models.ChatMessage, error)
}

type chatService struct {
	messages  repositories.ChatMessageRepository
	companies repositories.CompanyRepository
	logger    *zap.Logger
}

func NewChatService(
	messages repositories.ChatMessageRepository,
	companies repositories.CompanyRepository,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		messages:  messages,
		companies: companies,
		logger:    logger.Named("chat-service"),
	}
}

var _ ChatService = (*chatService)(nil)

func (s *chatService) ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*models.ChatMessage, error) {
	if err := verifyOwner(ctx, s.companies, userID, companyID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("Failed to list chat messages",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, err
	}
	return messages, nil
}

func (s *chatService) Create(ctx context.Context, userID uuid.UUID, message *models.ChatMessage) (*models.ChatMessage, error) {
	if message.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("%w: companyId is required", apperrors.ErrValidation)
	}
	if message.Role != models.ChatRoleUser && message.Role != models.ChatRoleAssistant {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, message.Role)
	}
	if message.Content == "" {
		return nil, fmt.Errorf("%w: content is required", apperrors.ErrValidation)
	}
	if err := verifyOwner(ctx, s.companies, userID, message.CompanyID); err != nil {
		return nil, err
	}

	if err := s.messages.Create(ctx, message); err != nil {
		s.logger.Error("Failed to create chat message",
			zap.String("company_id", message.CompanyID.String()),
			zap.Error(err))
		return nil, err
	}
	return message, nil
}

// verifyOwner checks that the company exists and belongs to the caller.
// Both failure modes collapse into ErrNotFound.
func verifyOwner(ctx context.Context, companies repositories.CompanyRepository, userID, companyID uuid.UUID) error {
	company, err := companies.Get(ctx, companyID)
	if err != nil {
		return err
	}
	if company.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}
