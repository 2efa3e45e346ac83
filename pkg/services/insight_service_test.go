package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/models"
)

type insightFixture struct {
	svc       InsightService
	companies *mockCompanyRepo
	insights  *mockInsightRepo
	owner     uuid.UUID
	company   *models.Company
}

func newInsightFixture(t *testing.T) *insightFixture {
	companies := newMockCompanyRepo()
	insights := newMockInsightRepo()

	owner := uuid.New()
	company := &models.Company{UserID: owner, ClientName: "Acme"}
	require.NoError(t, companies.Create(context.Background(), company))

	return &insightFixture{
		svc:       NewInsightService(insights, companies, zap.NewNop()),
		companies: companies,
		insights:  insights,
		owner:     owner,
		company:   company,
	}
}

func TestInsightCreateAndList(t *testing.T) {
	f := newInsightFixture(t)

	created, err := f.svc.Create(context.Background(), f.owner, &models.AIInsight{
		CompanyID: f.company.ID,
		Type:      models.InsightTypeRecommendation,
		Title:     "Automate invoice matching",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	listed, err := f.svc.ListByCompany(context.Background(), f.owner, f.company.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// A stranger cannot even list: the company reads as missing.
	_, err = f.svc.ListByCompany(context.Background(), uuid.New(), f.company.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInsightCreateRequiresCompany(t *testing.T) {
	f := newInsightFixture(t)

	_, err := f.svc.Create(context.Background(), f.owner, &models.AIInsight{Title: "orphan"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Create(context.Background(), f.owner, &models.AIInsight{CompanyID: uuid.New(), Title: "ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInsightBulkCreate(t *testing.T) {
	f := newInsightFixture(t)

	batch := []*models.AIInsight{
		{Title: "first"},
		{Title: "second"},
	}
	created, err := f.svc.BulkCreate(context.Background(), f.owner, f.company.ID, batch)
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, insight := range created {
		assert.Equal(t, f.company.ID, insight.CompanyID)
	}

	// Empty batch returns an empty list without touching storage.
	before := f.insights.bulkCalls
	empty, err := f.svc.BulkCreate(context.Background(), f.owner, f.company.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
	assert.Equal(t, before, f.insights.bulkCalls)
}

func TestInsightUpdateDistinguishesMissingFromForeign(t *testing.T) {
	f := newInsightFixture(t)

	created, err := f.svc.Create(context.Background(), f.owner, &models.AIInsight{
		CompanyID: f.company.ID,
		Title:     "original",
	})
	require.NoError(t, err)

	title := "revised"
	updated, err := f.svc.Update(context.Background(), f.owner, created.ID, &models.InsightUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Title)

	// Missing insight: not found.
	_, err = f.svc.Update(context.Background(), f.owner, uuid.New(), &models.InsightUpdate{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Existing insight under someone else's company: ownership mismatch,
	// a different outcome than not-found.
	_, err = f.svc.Update(context.Background(), uuid.New(), created.ID, &models.InsightUpdate{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrOwnershipMismatch)
}

func TestInsightDelete(t *testing.T) {
	f := newInsightFixture(t)

	created, err := f.svc.Create(context.Background(), f.owner, &models.AIInsight{
		CompanyID: f.company.ID,
		Title:     "to delete",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), uuid.New(), created.ID), apperrors.ErrOwnershipMismatch)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), f.owner, uuid.New()), apperrors.ErrNotFound)

	require.NoError(t, f.svc.Delete(context.Background(), f.owner, created.ID))
	_, err = f.insights.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
