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

// CompanyRepository defines the interface for company data access.
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	Get(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	// Delete removes the company and, via cascade, all child rows.
	// Deleting a non-existent id is not an error at this layer.
	Delete(ctx context.Context, id uuid.UUID) error
}

// companyRepository implements CompanyRepository using PostgreSQL.
type companyRepository struct {
	q Querier
}

// NewCompanyRepository creates a new company repository bound to the pool.
func NewCompanyRepository(db *database.DB) CompanyRepository {
	return &companyRepository{q: db.Pool}
}

const companyColumns = `id, user_id, client_name, industry, engagement_type, status, progress,
	ai_acceleration, start_date, estimated_completion, team_members, hackett_ip_matches,
	region, project_value, current_phase, revenue, employees, erp_system, pain_points,
	objectives, timeline, budget, created_at, updated_at`

// Create inserts a new company row. A missing ID is assigned here.
func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}

	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	if company.Status == "" {
		company.Status = models.CompanyStatusInitiation
	}
	if company.CurrentPhase == 0 {
		company.CurrentPhase = 1
	}

	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	_, err := r.q.Exec(ctx, query,
		company.ID,
		company.UserID,
		company.ClientName,
		company.Industry,
		company.EngagementType,
		company.Status,
		company.Progress,
		company.AIAcceleration,
		company.StartDate,
		company.EstimatedCompletion,
		jsonutil.StringifyStringList(company.TeamMembers),
		company.HackettIPMatches,
		company.Region,
		company.ProjectValue,
		company.CurrentPhase,
		company.Revenue,
		company.Employees,
		company.ERPSystem,
		jsonutil.StringifyStringList(company.PainPoints),
		jsonutil.StringifyStringList(company.Objectives),
		company.Timeline,
		company.Budget,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// Get retrieves a company by ID.
func (r *companyRepository) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company, err := scanCompany(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return company, nil
}

// ListByUser returns the user's companies, most recently updated first.
func (r *companyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	return companies, rows.Err()
}

// Update writes the full company row. Returns ErrNotFound when the id
// does not exist so the HTTP layer can map it to a 404.
func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	company.UpdatedAt = time.Now()

	query := `
		UPDATE companies
		SET client_name = $2, industry = $3, engagement_type = $4, status = $5,
		    progress = $6, ai_acceleration = $7, start_date = $8, estimated_completion = $9,
		    team_members = $10, hackett_ip_matches = $11, region = $12, project_value = $13,
		    current_phase = $14, revenue = $15, employees = $16, erp_system = $17,
		    pain_points = $18, objectives = $19, timeline = $20, budget = $21, updated_at = $22
		WHERE id = $1`

	result, err := r.q.Exec(ctx, query,
		company.ID,
		company.ClientName,
		company.Industry,
		company.EngagementType,
		company.Status,
		company.Progress,
		company.AIAcceleration,
		company.StartDate,
		company.EstimatedCompletion,
		jsonutil.StringifyStringList(company.TeamMembers),
		company.HackettIPMatches,
		company.Region,
		company.ProjectValue,
		company.CurrentPhase,
		company.Revenue,
		company.Employees,
		company.ERPSystem,
		jsonutil.StringifyStringList(company.PainPoints),
		jsonutil.StringifyStringList(company.Objectives),
		company.Timeline,
		company.Budget,
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a company by ID. Child rows go with it via CASCADE.
func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

// scanCompany reads one company row from either a pgx.Row or pgx.Rows.
func scanCompany(row pgx.Row) (*models.Company, error) {
	var company models.Company
	var teamMembers, painPoints, objectives string

	err := row.Scan(
		&company.ID,
		&company.UserID,
		&company.ClientName,
		&company.Industry,
		&company.EngagementType,
		&company.Status,
		&company.Progress,
		&company.AIAcceleration,
		&company.StartDate,
		&company.EstimatedCompletion,
		&teamMembers,
		&company.HackettIPMatches,
		&company.Region,
		&company.ProjectValue,
		&company.CurrentPhase,
		&company.Revenue,
		&company.Employees,
		&company.ERPSystem,
		&painPoints,
		&objectives,
		&company.Timeline,
		&company.Budget,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	company.TeamMembers = jsonutil.ParseStringList(teamMembers, []string{})
	company.PainPoints = jsonutil.ParseStringList(painPoints, []string{})
	company.Objectives = jsonutil.ParseStringList(objectives, []string{})

	return &company, nil
}

var _ CompanyRepository = (*companyRepository)(nil)
