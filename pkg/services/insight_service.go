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

// InsightService provides operations for AI insights.
type InsightService interface {
	// ListByCompany verifies company ownership, then returns the
	// company's insights in creation order.
	ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*models.AIInsight, error)
	Create(ctx context.Context, userID uuid.UUID, insight *models.AIInsight) (*models.AIInsight, error)
	BulkCreate(ctx context.Context, userID, companyID uuid.UUID, insights []*models.AIInsight) ([]*models.AIInsight, error)
	// Update distinguishes a missing insight (ErrNotFound) from one owned
	// through a foreign company (ErrOwnershipMismatch).
	Update(ctx context.Context, userID, insightID uuid.UUID, update *models.InsightUpdate) (*models.AIInsight, error)
	Delete(ctx context.Context, userID, insightID uuid.UUID) error
}

type insightService struct {
	insights  repositories.InsightRepository
	companies repositories.CompanyRepository
	logger    *zap.Logger
}

func NewInsightService(
	insights repositories.InsightRepository,
	companies repositories.CompanyRepository,
	logger *zap.Logger,
) InsightService {
	return &insightService{
		insights:  insights,
		companies: companies,
		logger:    logger.Named("insight-service"),
	}
}

var _ InsightService = (*insightService)(nil)

func (s *insightService) ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*models.AIInsight, error) {
	if err := s.verifyCompanyOwner(ctx, userID, companyID); err != nil {
		return nil, err
	}

	insights, err := s.insights.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("Failed to list insights",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, err
	}
	return insights, nil
}

func (s *insightService) Create(ctx context.Context, userID uuid.UUID, insight *models.AIInsight) (*models.AIInsight, error) {
	if insight.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("%w: companyId is required", apperrors.ErrValidation)
	}
	if err := s.verifyCompanyOwner(ctx, userID, insight.CompanyID); err != nil {
		return nil, err
	}

	if err := s.insights.Create(ctx, insight); err != nil {
		s.logger.Error("Failed to create insight",
			zap.String("company_id", insight.CompanyID.String()),
			zap.Error(err))
		return nil, err
	}
	return insight, nil
}

func (s *insightService) BulkCreate(ctx context.Context, userID, companyID uuid.UUID, insights []*models.AIInsight) ([]*models.AIInsight, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("%w: companyId is required", apperrors.ErrValidation)
	}
	if err := s.verifyCompanyOwner(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if len(insights) == 0 {
		return []*models.AIInsight{}, nil
	}

	for _, insight := range insights {
		insight.CompanyID = companyID
	}
	if err := s.insights.BulkCreate(ctx, insights); err != nil {
		s.logger.Error("Failed to bulk-create insights",
			zap.String("company_id", companyID.String()),
			zap.Int("count", len(insights)),
			zap.Error(err))
		return nil, err
	}
	return insights, nil
}

func (s *insightService) Update(ctx context.Context, userID, insightID uuid.UUID, update *models.InsightUpdate) (*models.AIInsight, error) {
	insight, err := s.loadOwned(ctx, userID, insightID)
	if err != nil {
		return nil, err
	}

	update.Apply(insight)
	if err := s.insights.Update(ctx, insight); err != nil {
		s.logger.Error("Failed to update insight",
			zap.String("insight_id", insightID.String()),
			zap.Error(err))
		return nil, err
	}
	return insight, nil
}

func (s *insightService) Delete(ctx context.Context, userID, insightID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, insightID); err != nil {
		return err
	}

	if err := s.insights.Delete(ctx, insightID); err != nil {
		s.logger.Error("Failed to delete insight",
			zap.String("insight_id", insightID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// loadOwned fetches the insight and walks the ownership chain through its
// company. A missing insight is ErrNotFound; an insight reachable only
// through someone else's company is ErrOwnershipMismatch. The two cases
// carry different HTTP statuses.
func (s *insightService) loadOwned(ctx context.Context, userID, insightID uuid.UUID) (*models.AIInsight, error) {
	insight, err := s.insights.Get(ctx, insightID)
	if err != nil {
		return nil, err
	}

	company, err := s.companies.Get(ctx, insight.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.UserID != userID {
		return nil, apperrors.ErrOwnershipMismatch
	}
	return insight, nil
}

func (s *insightService) verifyCompanyOwner(ctx context.Context, userID, companyID uuid.UUID) error {
	company, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return err
	}
	if company.UserID != userID {
		return apperrors.ErrNotFound
	}
	return nil
}
