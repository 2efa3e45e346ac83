package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/database"
	"github.com/hackett-digital/transform-engine/pkg/jsonutil"
	"github.com/hackett-digital/transform-engine/pkg/models"
)

// InsightRepository defines the interface for AI insight data access.
type InsightRepository interface {
	Create(ctx context.Context, insight *models.AIInsight) error
	// BulkCreate inserts many insights in one statement. An empty input
	// performs no database operation and returns nil.
	BulkCreate(ctx context.Context, insights []*models.AIInsight) error
	Get(ctx context.Context, id uuid.UUID) (*models.AIInsight, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.AIInsight, error)
	Update(ctx context.Context, insight *models.AIInsight) error
	// Delete is idempotent; deleting a non-existent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	// WithTx returns a copy of the repository bound to the transaction.
	WithTx(tx pgx.Tx) InsightRepository
}

// insightRepository implements InsightRepository using PostgreSQL.
type insightRepository struct {
	q Querier
}

// NewInsightRepository creates a new insight repository bound to the pool.
func NewInsightRepository(db *database.DB) InsightRepository {
	return &insightRepository{q: db.Pool}
}

// WithTx rebinds the repository to a transaction.
func (r *insightRepository) WithTx(tx pgx.Tx) InsightRepository {
	return &insightRepository{q: tx}
}

const insightColumns = `id, company_id, type, title, description, confidence, impact, source,
	phase, actionable, estimated_value, timeframe, dependencies, recommendations,
	created_at, updated_at`

const insertInsightQuery = `
	INSERT INTO ai_insights (` + insightColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

// Create inserts one insight row. A missing ID is assigned here.
func (r *insightRepository) Create(ctx context.Context, insight *models.AIInsight) error {
	prepareInsight(insight)

	_, err := r.q.Exec(ctx, insertInsightQuery, insightArgs(insight)...)
	if err != nil {
		return fmt.Errorf("failed to create insight: %w", err)
	}

	return nil
}

// BulkCreate inserts all insights in one batched statement.
func (r *insightRepository) BulkCreate(ctx context.Context, insights []*models.AIInsight) error {
	if len(insights) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, insight := range insights {
		prepareInsight(insight)
		batch.Queue(insertInsightQuery, insightArgs(insight)...)
	}

	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range insights {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to bulk create insights: %w", err)
		}
	}

	return nil
}

// Get retrieves an insight by ID.
func (r *insightRepository) Get(ctx context.Context, id uuid.UUID) (*models.AIInsight, error) {
	query := `SELECT ` + insightColumns + ` FROM ai_insights WHERE id = $1`

	insight, err := scanInsight(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get insight: %w", err)
	}

	return insight, nil
}

// ListByCompany returns a company's insights in creation order.
// The ordering is user-observable in the dashboard timeline.
func (r *insightRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.AIInsight, error) {
	query := `SELECT ` + insightColumns + ` FROM ai_insights WHERE company_id = $1 ORDER BY created_at ASC`

	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	defer rows.Close()

	insights := []*models.AIInsight{}
	for rows.Next() {
		insight, err := scanInsight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insight: %w", err)
		}
		insights = append(insights, insight)
	}

	return insights, rows.Err()
}

// Update writes the full insight row. Returns ErrNotFound for a missing id.
func (r *insightRepository) Update(ctx context.Context, insight *models.AIInsight) error {
	insight.UpdatedAt = time.Now()

	query := `
		UPDATE ai_insights
		SET type = $2, title = $3, description = $4, confidence = $5, impact = $6,
		    source = $7, phase = $8, actionable = $9, estimated_value = $10,
		    timeframe = $11, dependencies = $12, recommendations = $13, updated_at = $14
		WHERE id = $1`

	result, err := r.q.Exec(ctx, query,
		insight.ID,
		insight.Type,
		insight.Title,
		insight.Description,
		insight.Confidence,
		insight.Impact,
		insight.Source,
		insight.Phase,
		insight.Actionable,
		insight.EstimatedValue,
		insight.Timeframe,
		jsonutil.StringifyStringList(insight.Dependencies),
		jsonutil.StringifyStringList(insight.Recommendations),
		insight.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update insight: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes an insight by ID.
func (r *insightRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM ai_insights WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete insight: %w", err)
	}
	return nil
}

func prepareInsight(insight *models.AIInsight) {
	if insight.ID == uuid.Nil {
		insight.ID = uuid.New()
	}
	now := time.Now()
	if insight.CreatedAt.IsZero() {
		insight.CreatedAt = now
	}
	insight.UpdatedAt = now
	if insight.Impact == "" {
		insight.Impact = models.ImpactMedium
	}
	if insight.Phase == 0 {
		insight.Phase = 1
	}
}

func insightArgs(insight *models.AIInsight) []any {
	return []any{
		insight.ID,
		insight.CompanyID,
		insight.Type,
		insight.Title,
		insight.Description,
		insight.Confidence,
		insight.Impact,
		insight.Source,
		insight.Phase,
		insight.Actionable,
		insight.EstimatedValue,
		insight.Timeframe,
		jsonutil.StringifyStringList(insight.Dependencies),
		jsonutil.StringifyStringList(insight.Recommendations),
		insight.CreatedAt,
		insight.UpdatedAt,
	}
}

func scanInsight(row pgx.Row) (*models.AIInsight, error) {
	var insight models.AIInsight
	var dependencies, recommendations string

	err := row.Scan(
		&insight.ID,
		&insight.CompanyID,
		&insight.Type,
		&insight.Title,
		&insight.Description,
		&insight.Confidence,
		&insight.Impact,
		&insight.Source,
		&insight.Phase,
		&insight.Actionable,
		&insight.EstimatedValue,
		&insight.Timeframe,
		&dependencies,
		&recommendations,
		&insight.CreatedAt,
		&insight.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	insight.Dependencies = jsonutil.ParseStringList(dependencies, []string{})
	insight.Recommendations = jsonutil.ParseStringList(recommendations, []string{})

	return &insight, nil
}

var _ InsightRepository = (*insightRepository)(nil)
