package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/models"
	"github.com/hackett-digital/transform-engine/pkg/services"
)

type mockAnalysisResultService struct {
	companies map[uuid.UUID]uuid.UUID
	results   []*models.AnalysisResult
}

func (m *mockAnalysisResultService) ListByCompany(_ context.Context, userID, companyID uuid.UUID) ([]*models.AnalysisResult, error) {
	if owner, ok := m.companies[companyID]; !ok || owner != userID {
		return nil, apperrors.ErrNotFound
	}
	return m.results, nil
}

func (m *mockAnalysisResultService) Create(_ context.Context, userID uuid.UUID, result *models.AnalysisResult) (*models.AnalysisResult, error) {
	if result.CompanyID == uuid.Nil || result.Type == "" {
		return nil, apperrors.ErrValidation
	}
	if owner, ok := m.companies[result.CompanyID]; !ok || owner != userID {
		return nil, apperrors.ErrNotFound
	}
	result.ID = uuid.New()
	m.results = append(m.results, result)
	return result, nil
}

var _ services.AnalysisResultService = (*mockAnalysisResultService)(nil)

func registerResultRoutes(svc services.AnalysisResultService, userID uuid.UUID) func(mux *http.ServeMux) {
	return func(mux *http.ServeMux) {
		NewAnalysisResultHandler(svc, zap.NewNop()).RegisterRoutes(mux, newTestMiddleware(userID, false))
	}
}

func TestAnalysisResultsRequireCompanyID(t *testing.T) {
	svc := &mockAnalysisResultService{companies: map[uuid.UUID]uuid.UUID{}}
	rec := serve(registerResultRoutes(svc, uuid.New()),
		httptest.NewRequest(http.MethodGet, "/api/analysis-results", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Company ID is required"}`, rec.Body.String())
}

func TestAnalysisResultsRoundTrip(t *testing.T) {
	owner := uuid.New()
	companyID := uuid.New()
	svc := &mockAnalysisResultService{companies: map[uuid.UUID]uuid.UUID{companyID: owner}}

	payload := `{"companyId":"` + companyID.String() + `","type":"benchmark","title":"Working capital benchmark","results":{"dso":54}}`
	rec := serve(registerResultRoutes(svc, owner),
		httptest.NewRequest(http.MethodPost, "/api/analysis-results", strings.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"result"`)

	rec = serve(registerResultRoutes(svc, owner),
		httptest.NewRequest(http.MethodGet, "/api/analysis-results?companyId="+companyID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Working capital benchmark")
}

func TestAnalysisResultsOwnership(t *testing.T) {
	owner := uuid.New()
	companyID := uuid.New()
	svc := &mockAnalysisResultService{companies: map[uuid.UUID]uuid.UUID{companyID: owner}}

	rec := serve(registerResultRoutes(svc, uuid.New()),
		httptest.NewRequest(http.MethodGet, "/api/analysis-results?companyId="+companyID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Company not found or unauthorized"}`, rec.Body.String())
}
