package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/auth"
	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/repositories"
)

// Initial progress assigned at onboarding.
const onboardingProgress = 5

// CompanyAggregate bundles the child collections served by the company
// detail endpoint.
type CompanyAggregate struct {
	Insights []*models.AIInsight     `json:"insights"`
	Phases   []*models.WorkflowPhase `json:"phases"`
}

// CompanyService provides operations for transformation engagements.
type CompanyService interface {
	Create(ctx context.Context, userID uuid.UUID, company *models.Company) (*models.Company, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Company, error)
	// GetAggregate returns the company's insight and phase lists after
	// verifying ownership. Missing or foreign companies both surface as
	// ErrNotFound so existence does not leak.
	GetAggregate(ctx context.Context, userID, companyID uuid.UUID) (*CompanyAggregate, error)
	// GetOwned loads a company and verifies ownership under the same
	// not-found semantics as GetAggregate.
	GetOwned(ctx context.Context, userID, companyID uuid.UUID) (*models.Company, error)
	Update(ctx context.Context, userID, companyID uuid.UUID, update *models.CompanyUpdate) (*models.Company, error)
	Delete(ctx context.Context, userID, companyID uuid.UUID) error
}

type companyService struct {
	companies repositories.CompanyRepository
	insights  repositories.InsightRepository
	phases    repositories.PhaseRepository
	users     repositories.UserRepository
	logger    *zap.Logger
}

func NewCompanyService(
	companies repositories.CompanyRepository,
	insights repositories.InsightRepository,
	phases repositories.PhaseRepository,
	users repositories.UserRepository,
	logger *zap.Logger,
) CompanyService {
	return &companyService{
		companies: companies,
		insights:  insights,
		phases:    phases,
		users:     users,
		logger:    logger.Named("company-service"),
	}
}

var _ CompanyService = (*companyService)(nil)

func (s *companyService) Create(ctx context.Context, userID uuid.UUID, company *models.Company) (*models.Company, error) {
	if company.ClientName == "" {
		return nil, fmt.Errorf("%w: clientName is required", apperrors.ErrValidation)
	}

	// The owning user is always the caller, regardless of what the request
	// body claims.
	company.UserID = userID
	company.Status = models.CompanyStatusInitiation
	company.Progress = onboardingProgress
	company.CurrentPhase = 1
	if company.StartDate == nil {
		now := time.Now().UTC()
		company.StartDate = &now
	}

	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.companies.Create(ctx, company); err != nil {
		s.logger.Error("Failed to create company",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Company created",
		zap.String("company_id", company.ID.String()),
		zap.String("client_name", company.ClientName))
	return company, nil
}

func (s *companyService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Company, error) {
	companies, err := s.companies.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list companies",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}
	return companies, nil
}

func (s *companyService) GetOwned(ctx context.Context, userID, companyID uuid.UUID) (*models.Company, error) {
	company, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return company, nil
}

func (s *companyService) GetAggregate(ctx context.Context, userID, companyID uuid.UUID) (*CompanyAggregate, error) {
	if _, err := s.GetOwned(ctx, userID, companyID); err != nil {
		return nil, err
	}

	insights, err := s.insights.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("Failed to list insights",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, err
	}
	phases, err := s.phases.ListByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("Failed to list phases",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, err
	}

	return &CompanyAggregate{Insights: insights, Phases: phases}, nil
}

func (s *companyService) Update(ctx context.Context, userID, companyID uuid.UUID, update *models.CompanyUpdate) (*models.Company, error) {
	company, err := s.GetOwned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	update.Apply(company)
	if company.CurrentPhase < 1 {
		company.CurrentPhase = 1
	}
	if company.CurrentPhase > models.PhaseCount {
		company.CurrentPhase = models.PhaseCount
	}

	if err := s.companies.Update(ctx, company); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to update company",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return nil, err
	}
	return company, nil
}

func (s *companyService) Delete(ctx context.Context, userID, companyID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, userID, companyID); err != nil {
		return err
	}

	if err := s.companies.Delete(ctx, companyID); err != nil {
		s.logger.Error("Failed to delete company",
			zap.String("company_id", companyID.String()),
			zap.Error(err))
		return err
	}

	s.logger.Info("Company deleted", zap.String("company_id", companyID.String()))
	return nil
}

// ensureUser lazily provisions the caller's user row from identity claims,
// so company inserts never trip the foreign key on first login.
func (s *companyService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	user := &models.User{ID: userID}
	if claims, ok := auth.GetClaims(ctx); ok {
		user.Email = claims.Email
		user.FirstName = claims.FirstName
		user.LastName = claims.LastName
		user.AvatarURL = claims.AvatarURL
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		s.logger.Error("Failed to upsert user",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return err
	}
	return nil
}
