package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/auth"
	"github.com/hackett-digital/transform-engine/pkg/intelligence"
	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/services"
)

// stubAuthService authenticates every request as a fixed user, or rejects
// everything when reject is set.
type stubAuthService struct {
	userID uuid.UUID
	reject bool
}

func (s *stubAuthService) ValidateRequest(r *http.Request) (*auth.Claims, error) {
	if s.reject {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: s.userID.String()},
	}, nil
}

func newTestMiddleware(userID uuid.UUID, reject bool) *auth.Middleware {
	return auth.NewMiddleware(&stubAuthService{userID: userID, reject: reject}, zap.NewNop())
}

// serve routes one request through a fresh mux with the handler registered.
func serve(register func(mux *http.ServeMux), req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	register(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// mockCompanyService implements services.CompanyService for handler tests.
type mockCompanyService struct {
	companies map[uuid.UUID]*models.Company
	aggregate *services.CompanyAggregate
	listErr   error
}

func newMockCompanyService() *mockCompanyService {
	return &mockCompanyService{companies: map[uuid.UUID]*models.Company{}}
}

func (m *mockCompanyService) Create(_ context.Context, userID uuid.UUID, company *models.Company) (*models.Company, error) {
	if company.ClientName == "" {
		return nil, apperrors.ErrValidation
	}
	company.ID = uuid.New()
	company.UserID = userID
	company.Status = models.CompanyStatusInitiation
	company.Progress = 5
	m.companies[company.ID] = company
	return company, nil
}

func (m *mockCompanyService) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Company, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []*models.Company{}
	for _, c := range m.companies {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCompanyService) GetOwned(_ context.Context, userID, companyID uuid.UUID) (*models.Company, error) {
	c, ok := m.companies[companyID]
	if !ok || c.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return c, nil
}

func (m *mockCompanyService) GetAggregate(ctx context.Context, userID, companyID uuid.UUID) (*services.CompanyAggregate, error) {
	if _, err := m.GetOwned(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if m.aggregate != nil {
		return m.aggregate, nil
	}
	return &services.CompanyAggregate{Insights: []*models.AIInsight{}, Phases: []*models.WorkflowPhase{}}, nil
}

func (m *mockCompanyService) Update(ctx context.Context, userID, companyID uuid.UUID, update *models.CompanyUpdate) (*models.Company, error) {
	company, err := m.GetOwned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	update.Apply(company)
	return company, nil
}

func (m *mockCompanyService) Delete(ctx context.Context, userID, companyID uuid.UUID) error {
	if _, err := m.GetOwned(ctx, userID, companyID); err != nil {
		return err
	}
	delete(m.companies, companyID)
	return nil
}

var _ services.CompanyService = (*mockCompanyService)(nil)

// mockInsightService implements services.InsightService.
type mockInsightService struct {
	companies map[uuid.UUID]uuid.UUID // companyID -> owner
	insights  map[uuid.UUID]*models.AIInsight
}

func newMockInsightService() *mockInsightService {
	return &mockInsightService{
		companies: map[uuid.UUID]uuid.UUID{},
		insights:  map[uuid.UUID]*models.AIInsight{},
	}
}

func (m *mockInsightService) checkCompany(userID, companyID uuid.UUID) error {
	owner, ok := m.companies[companyID]
	if !ok || owner != userID {
		return apperrors.ErrNotFound
	}
	return nil
}

func (m *mockInsightService) ListByCompany(_ context.Context, userID, companyID uuid.UUID) ([]*models.AIInsight, error) {
	if err := m.checkCompany(userID, companyID); err != nil {
		return nil, err
	}
	out := []*models.AIInsight{}
	for _, i := range m.insights {
		if i.CompanyID == companyID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *mockInsightService) Create(_ context.Context, userID uuid.UUID, insight *models.AIInsight) (*models.AIInsight, error) {
	if err := m.checkCompany(userID, insight.CompanyID); err != nil {
		return nil, err
	}
	insight.ID = uuid.New()
	m.insights[insight.ID] = insight
	return insight, nil
}

func (m *mockInsightService) BulkCreate(_ context.Context, userID, companyID uuid.UUID, insights []*models.AIInsight) ([]*models.AIInsight, error) {
	if err := m.checkCompany(userID, companyID); err != nil {
		return nil, err
	}
	for _, insight := range insights {
		insight.ID = uuid.New()
		insight.CompanyID = companyID
		m.insights[insight.ID] = insight
	}
	if insights == nil {
		insights = []*models.AIInsight{}
	}
	return insights, nil
}

func (m *mockInsightService) Update(_ context.Context, userID, insightID uuid.UUID, update *models.InsightUpdate) (*models.AIInsight, error) {
	insight, ok := m.insights[insightID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if owner := m.companies[insight.CompanyID]; owner != userID {
		return nil, apperrors.ErrOwnershipMismatch
	}
	update.Apply(insight)
	return insight, nil
}

func (m *mockInsightService) Delete(_ context.Context, userID, insightID uuid.UUID) error {
	insight, ok := m.insights[insightID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if owner := m.companies[insight.CompanyID]; owner != userID {
		return apperrors.ErrOwnershipMismatch
	}
	delete(m.insights, insightID)
	return nil
}

var _ services.InsightService = (*mockInsightService)(nil)

// mockAnalysisService implements services.AnalysisService.
type mockAnalysisService struct {
	fallback bool
	full     *services.FullAnalysis
	fullErr  error
}

func (m *mockAnalysisService) GenerateAdvanced(_ context.Context, profile *models.CompanyProfile, analysisType, specificQuery string) (*intelligence.Intelligence, bool) {
	if m.fallback {
		return intelligence.Fallback(analysisType, profile), true
	}
	result := intelligence.ParseResponse(analysisType, "## Strategic Summary\nGenerated.\n")
	return result, false
}

func (m *mockAnalysisService) GenerateFullAnalysis(_ context.Context, userID, companyID uuid.UUID) (*services.FullAnalysis, error) {
	if m.fullErr != nil {
		return nil, m.fullErr
	}
	if m.full != nil {
		return m.full, nil
	}
	return nil, errors.New("not configured")
}

var _ services.AnalysisService = (*mockAnalysisService)(nil)
