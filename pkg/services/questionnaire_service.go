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

// QuestionnaireService stores and lists submitted data-collection forms.
type QuestionnaireService interface {
	ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*models.Questionnaire, error)
	Create(ctx context.Context, userID uuid.UUID, questionnaire *models.Questionnaire) (*models.Questionnaire, error)
}

type questionnaireService struct {
	questionnaires repositories.QuestionnaireRepository
	companies      repositories.CompanyRepository
	logger         *zap.Logger
}

func NewQuestionnaireService(
	questionnaires repositories.QuestionnaireRepository,
	companies repositories.CompanyRepository,
	logger *zap.Logger,
) QuestionnaireService {
	return &questionnaireService{
		questionnaires: questionnaires,
		companies:      companies,
		logger:         logger.Named("questionnaire-service"),
	}
}

var _ QuestionnaireService = (*questionnaireService)(nil)

func (s *questionnaireService) ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*models.Questionnaire, error) {
	if err := verifyOwner(ctx, s.companies, userID, companyID); err != nil {
		return nil, err
	}

	questionnaires, err := s.questionnaires.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("Failed to list questionnaires",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, err
	}
	return questionnaires, nil
}

func (s *questionnaireService) Create(ctx context.Context, userID uuid.UUID, questionnaire *models.Questionnaire) (*models.Questionnaire, error) {
	if questionnaire.CompanyID == uuid.Nil {
		return nil, fmt.Errorf("%w: companyId is required", apperrors.ErrValidation)
	}
	if questionnaire.Type == "" {
		return nil, fmt.Errorf("%w: type is required", apperrors.ErrValidation)
	}
	if err := verifyOwner(ctx, s.companies, userID, questionnaire.CompanyID); err != nil {
		return nil, err
	}

	if err := s.questionnaires.Create(ctx, questionnaire); err != nil {
		s.logger.Error("Failed to create questionnaire",
			zap.String("company_id", questionnaire.CompanyID.String()),
			zap.Error(err))
		return nil, err
	}
	return questionnaire, nil
}
