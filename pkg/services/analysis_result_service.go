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

// AnalysisResultService stores and lists persisted analysis runs.
type AnalysisResultService interface {
	ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*models.AnalysisResult, error)
	Create(ctx context.Context, userID uuid.UUID, result *models.AnalysisResult) (*models.AnalysisResult, error)
}

type analysisResultService struct {
	results   repositories.AnalysisResultRepository
	companies repositories.CompanyRepository
	logger    *zap.Logger
}

func NewAnalysisResultService(
	results repositories.AnalysisResultRepository,
	companies repositories.CompanyRepository,
	logger *zap.Logger,
) AnalysisResultService {
	return &analysisResultService{
		results:   results,
		companies: companies,
		logger:    logger.Named("analysis-result-service"),
	}
}

var _ AnalysisResultService = (*analysisResultService)(nil)

func (s *analysisResultService) ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*models.AnalysisResult, error) {
	if err := verifyOwner(ctx, s.companies, userID, companyID); err != nil {
		return nil, err
	}

	results, err := s.results.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("Failed to list analysis results",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, err
	}
	return results, nil
}

func (s *analysisResultService) Create(ctx context.Context, userID uuid.UUID, result *models.AnalysisResult) (*models.AnalysisResult, error) {
	if result.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("%w: companyId is required", apperrors.ErrValidation)
	}
	if result.Type == "" {
		return nil, fmt.Errorf("%w: type is required", apperrors.ErrValidation)
	}
	if err := verifyOwner(ctx, s.companies, userID, result.CompanyID); err != nil {
		return nil, err
	}

	if err := s.results.Create(ctx, result); err != nil {
		s.logger.Error("Failed to create analysis result",
			zap.String("company_id", result.CompanyID.String()),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}
