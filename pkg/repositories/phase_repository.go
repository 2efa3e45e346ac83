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

// PhaseRepository defines the interface for workflow phase data access.
type PhaseRepository interface {
	Create(ctx context.Context, phase *models.WorkflowPhase) error
	Get(ctx context.Context, id uuid.UUID) (*models.WorkflowPhase, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.WorkflowPhase, error)
	Update(ctx context.Context, phase *models.WorkflowPhase) error
	// DeleteByCompany removes all of a company's phases, used when the
	// analysis pipeline regenerates the roadmap.
	DeleteByCompany(ctx context.Context, companyID uuid.UUID) error
	// WithTx returns a copy of the repository bound to the transaction.
	WithTx(tx pgx.Tx) PhaseRepository
}

// phaseRepository implements PhaseRepository using PostgreSQL.
type phaseRepository struct {
	q Querier
}

// NewPhaseRepository creates a new phase repository bound to the pool.
func NewPhaseRepository(db *database.DB) PhaseRepository {
	return &phaseRepository{q: db.Pool}
}

// WithTx rebinds the repository to a transaction.
func (r *phaseRepository) WithTx(tx pgx.Tx) PhaseRepository {
	return &phaseRepository{q: tx}
}

const phaseColumns = `id, company_id, phase_number, title, description, status, progress,
	ai_acceleration, ai_accelerated_duration, traditional_duration, deliverables,
	key_activities, dependencies, team_roles, client_tasks, risk_factors,
	success_metrics, hackett_ip, ai_suggestions, created_at, updated_at`

// Create inserts one phase row. A missing ID is assigned here.
func (r *phaseRepository) Create(ctx context.Context, phase *models.WorkflowPhase) error {
	if phase.ID == uuid.Nil {
		phase.ID = uuid.New()
	}
	now := time.Now()
	phase.CreatedAt = now
	phase.UpdatedAt = now
	if phase.Status == "" {
		phase.Status = models.PhaseStatusPending
	}

	query := `
		INSERT INTO workflow_phases (` + phaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.q.Exec(ctx, query,
		phase.ID,
		phase.CompanyID,
		phase.PhaseNumber,
		phase.Title,
		phase.Description,
		phase.Status,
		phase.Progress,
		phase.AIAcceleration,
		phase.AIAcceleratedDuration,
		phase.TraditionalDuration,
		jsonutil.StringifyStringList(phase.Deliverables),
		jsonutil.StringifyStringList(phase.KeyActivities),
		jsonutil.StringifyStringList(phase.Dependencies),
		jsonutil.StringifyStringList(phase.TeamRoles),
		jsonutil.StringifyStringList(phase.ClientTasks),
		jsonutil.StringifyStringList(phase.RiskFactors),
		jsonutil.StringifyStringList(phase.SuccessMetrics),
		jsonutil.StringifyStringList(phase.HackettIP),
		jsonutil.StringifyStringList(phase.AISuggestions),
		phase.CreatedAt,
		phase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create phase: %w", err)
	}

	return nil
}

// Get retrieves a phase by ID.
func (r *phaseRepository) Get(ctx context.Context, id uuid.UUID) (*models.WorkflowPhase, error) {
	query := `SELECT ` + phaseColumns + ` FROM workflow_phases WHERE id = $1`

	phase, err := scanPhase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get phase: %w", err)
	}

	return phase, nil
}

// ListByCompany returns a company's phases ordered by phase number.
func (r *phaseRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.WorkflowPhase, error) {
	query := `SELECT ` + phaseColumns + ` FROM workflow_phases WHERE company_id = $1 ORDER BY phase_number ASC`

	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases: %w", err)
	}
	defer rows.Close()

	phases := []*models.WorkflowPhase{}
	for rows.Next() {
		phase, err := scanPhase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		phases = append(phases, phase)
	}

	return phases, rows.Err()
}

// Update writes the full phase row. Returns ErrNotFound for a missing id.
func (r *phaseRepository) Update(ctx context.Context, phase *models.WorkflowPhase) error {
	phase.UpdatedAt = time.Now()

	query := `
		UPDATE workflow_phases
		SET phase_number = $2, title = $3, description = $4, status = $5, progress = $6,
		    ai_acceleration = $7, ai_accelerated_duration = $8, traditional_duration = $9,
		    deliverables = $10, key_activities = $11, dependencies = $12, team_roles = $13,
		    client_tasks = $14, risk_factors = $15, success_metrics = $16, hackett_ip = $17,
		    ai_suggestions = $18, updated_at = $19
		WHERE id = $1`

	result, err := r.q.Exec(ctx, query,
		phase.ID,
		phase.PhaseNumber,
		phase.Title,
		phase.Description,
		phase.Status,
		phase.Progress,
		phase.AIAcceleration,
		phase.AIAcceleratedDuration,
		phase.TraditionalDuration,
		jsonutil.StringifyStringList(phase.Deliverables),
		jsonutil.StringifyStringList(phase.KeyActivities),
		jsonutil.StringifyStringList(phase.Dependencies),
		jsonutil.StringifyStringList(phase.TeamRoles),
		jsonutil.StringifyStringList(phase.ClientTasks),
		jsonutil.StringifyStringList(phase.RiskFactors),
		jsonutil.StringifyStringList(phase.SuccessMetrics),
		jsonutil.StringifyStringList(phase.HackettIP),
		jsonutil.StringifyStringList(phase.AISuggestions),
		phase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update phase: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteByCompany removes all phases for a company.
func (r *phaseRepository) DeleteByCompany(ctx context.Context, companyID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM workflow_phases WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete phases: %w", err)
	}
	return nil
}

func scanPhase(row pgx.Row) (*models.WorkflowPhase, error) {
	var phase models.WorkflowPhase
	var deliverables, keyActivities, dependencies, teamRoles string
	var clientTasks, riskFactors, successMetrics, hackettIP, aiSuggestions string

	err := row.Scan(
		&phase.ID,
		&phase.CompanyID,
		&phase.PhaseNumber,
		&phase.Title,
		&phase.Description,
		&phase.Status,
		&phase.Progress,
		&phase.AIAcceleration,
		&phase.AIAcceleratedDuration,
		&phase.TraditionalDuration,
		&deliverables,
		&keyActivities,
		&dependencies,
		&teamRoles,
		&clientTasks,
		&riskFactors,
		&successMetrics,
		&hackettIP,
		&aiSuggestions,
		&phase.CreatedAt,
		&phase.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	phase.Deliverables = jsonutil.ParseStringList(deliverables, []string{})
	phase.KeyActivities = jsonutil.ParseStringList(keyActivities, []string{})
	phase.Dependencies = jsonutil.ParseStringList(dependencies, []string{})
	phase.TeamRoles = jsonutil.ParseStringList(teamRoles, []string{})
	phase.ClientTasks = jsonutil.ParseStringList(clientTasks, []string{})
	phase.RiskFactors = jsonutil.ParseStringList(riskFactors, []string{})
	phase.SuccessMetrics = jsonutil.ParseStringList(successMetrics, []string{})
	phase.HackettIP = jsonutil.ParseStringList(hackettIP, []string{})
	phase.AISuggestions = jsonutil.ParseStringList(aiSuggestions, []string{})

	return &phase, nil
}

var _ PhaseRepository = (*phaseRepository)(nil)
