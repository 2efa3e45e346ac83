package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/models"
)

func registerInsightRoutes(svc *mockInsightService, userID uuid.UUID, reject bool) func(mux *http.ServeMux) {
	return func(mux *http.ServeMux) {
		NewInsightHandler(svc, zap.NewNop()).RegisterRoutes(mux, newTestMiddleware(userID, reject))
	}
}

func TestInsightsListRequiresCompanyID(t *testing.T) {
	rec := serve(registerInsightRoutes(newMockInsightService(), uuid.New(), false),
		httptest.NewRequest(http.MethodGet, "/api/ai-insights", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Company ID is required"}`, rec.Body.String())
}

func TestInsightsListForeignCompany(t *testing.T) {
	svc := newMockInsightService()
	companyID := uuid.New()
	svc.companies[companyID] = uuid.New()

	rec := serve(registerInsightRoutes(svc, uuid.New(), false),
		httptest.NewRequest(http.MethodGet, "/api/ai-insights?companyId="+companyID.String(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Company not found or unauthorized"}`, rec.Body.String())
}

func TestInsightsCreateSingle(t *testing.T) {
	svc := newMockInsightService()
	owner := uuid.New()
	companyID := uuid.New()
	svc.companies[companyID] = owner

	payload := `{"companyId":"` + companyID.String() + `","type":"recommendation","title":"Automate matching"}`
	rec := serve(registerInsightRoutes(svc, owner, false),
		httptest.NewRequest(http.MethodPost, "/api/ai-insights", strings.NewReader(payload)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Insight *models.AIInsight `json:"insight"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Insight)
	assert.NotEqual(t, uuid.Nil, body.Insight.ID)
	assert.Equal(t, "Automate matching", body.Insight.Title)
}

func TestInsightsCreateBulk(t *testing.T) {
	svc := newMockInsightService()
	owner := uuid.New()
	companyID := uuid.New()
	svc.companies[companyID] = owner

	payload := `{"companyId":"` + companyID.String() + `","insights":[{"title":"a"},{"title":"b"}]}`
	rec := serve(registerInsightRoutes(svc, owner, false),
		httptest.NewRequest(http.MethodPost, "/api/ai-insights", strings.NewReader(payload)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Insights []*models.AIInsight `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Insights, 2)
	for _, insight := range body.Insights {
		assert.Equal(t, companyID, insight.CompanyID)
	}
}

func TestInsightsCreateNeitherShape(t *testing.T) {
	svc := newMockInsightService()
	owner := uuid.New()
	companyID := uuid.New()
	svc.companies[companyID] = owner

	payload := `{"companyId":"` + companyID.String() + `"}`
	rec := serve(registerInsightRoutes(svc, owner, false),
		httptest.NewRequest(http.MethodPost, "/api/ai-insights", strings.NewReader(payload)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightsCreateMissingCompany(t *testing.T) {
	rec := serve(registerInsightRoutes(newMockInsightService(), uuid.New(), false),
		httptest.NewRequest(http.MethodPost, "/api/ai-insights", strings.NewReader(`{"title":"x"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Company ID is required"}`, rec.Body.String())
}

// A missing insight is 404 with the insight body; an insight that exists
// under someone else's company is 403 with a bare Unauthorized body. The
// asymmetry with the company routes is deliberate.
func TestInsightUpdateStatusAsymmetry(t *testing.T) {
	svc := newMockInsightService()
	owner := uuid.New()
	companyID := uuid.New()
	insightID := uuid.New()
	svc.companies[companyID] = owner
	svc.insights[insightID] = &models.AIInsight{ID: insightID, CompanyID: companyID, Title: "original"}

	rec := serve(registerInsightRoutes(svc, owner, false),
		httptest.NewRequest(http.MethodPut, "/api/ai-insights/"+uuid.New().String(), strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"AI insight not found"}`, rec.Body.String())

	rec = serve(registerInsightRoutes(svc, uuid.New(), false),
		httptest.NewRequest(http.MethodPut, "/api/ai-insights/"+insightID.String(), strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	rec = serve(registerInsightRoutes(svc, owner, false),
		httptest.NewRequest(http.MethodPut, "/api/ai-insights/"+insightID.String(), strings.NewReader(`{"title":"revised"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "revised")
}

func TestInsightDelete(t *testing.T) {
	svc := newMockInsightService()
	owner := uuid.New()
	companyID := uuid.New()
	insightID := uuid.New()
	svc.companies[companyID] = owner
	svc.insights[insightID] = &models.AIInsight{ID: insightID, CompanyID: companyID}

	rec := serve(registerInsightRoutes(svc, uuid.New(), false),
		httptest.NewRequest(http.MethodDelete, "/api/ai-insights/"+insightID.String(), nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	rec = serve(registerInsightRoutes(svc, owner, false),
		httptest.NewRequest(http.MethodDelete, "/api/ai-insights/"+insightID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"AI insight deleted successfully"}`, rec.Body.String())

	rec = serve(registerInsightRoutes(svc, owner, false),
		httptest.NewRequest(http.MethodDelete, "/api/ai-insights/"+insightID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"AI insight not found"}`, rec.Body.String())
}
