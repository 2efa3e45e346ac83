package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/database"
	"github.com/hackett-digital/transform-engine/pkg/models"
)

// AnalysisResultRepository defines the interface for analysis result records.
type AnalysisResultRepository interface {
	Create(ctx context.Context, result *models.AnalysisResult) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.AnalysisResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// analysisResultRepository implements AnalysisResultRepository using PostgreSQL.
type analysisResultRepository struct {
	q Querier
}

// NewAnalysisResultRepository creates a new analysis result repository.
func NewAnalysisResultRepository(db *database.DB) AnalysisResultRepository {
	return &analysisResultRepository{q: db.Pool}
}

// Create inserts one analysis result record.
func (r *analysisResultRepository) Create(ctx context.Context, result *models.AnalysisResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	if result.GeneratedBy == "" {
		result.GeneratedBy = models.GeneratedByAI
	}
	if result.Status == "" {
		result.Status = models.ResultStatusActive
	}

	results := string(result.Results)
	if results == "" {
		results = "{}"
	}

	query := `
		INSERT INTO analysis_results (id, company_id, type, title, results, confidence,
			generated_by, phase, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.q.Exec(ctx, query,
		result.ID,
		result.CompanyID,
		result.Type,
		result.Title,
		results,
		result.Confidence,
		result.GeneratedBy,
		result.Phase,
		result.Status,
		result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis result: %w", err)
	}

	return nil
}

// ListByCompany returns all analysis results for a company, most recent first.
func (r *analysisResultRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.AnalysisResult, error) {
	query := `
		SELECT id, company_id, type, title, results, confidence, generated_by, phase, status, created_at
		FROM analysis_results
		WHERE company_id = $1
		ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis results: %w", err)
	}
	defer rows.Close()

	results := []*models.AnalysisResult{}
	for rows.Next() {
		var result models.AnalysisResult
		var payload string
		if err := rows.Scan(
			&result.ID,
			&result.CompanyID,
			&result.Type,
			&result.Title,
			&payload,
			&result.Confidence,
			&result.GeneratedBy,
			&result.Phase,
			&result.Status,
			&result.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis result: %w", err)
		}
		result.Results = []byte(payload)
		results = append(results, &result)
	}

	return results, rows.Err()
}

// UpdateStatus moves a result through its lifecycle (active/archived/superseded).
func (r *analysisResultRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.q.Exec(ctx,
		`UPDATE analysis_results SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update analysis result status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ AnalysisResultRepository = (*analysisResultRepository)(nil)
