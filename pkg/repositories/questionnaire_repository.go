package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hackett-digital/transform-engine/pkg/database"
	"github.com/hackett-digital/transform-engine/pkg/models"
)

// QuestionnaireRepository defines the interface for questionnaire data access.
type QuestionnaireRepository interface {
	Create(ctx context.Context, questionnaire *models.Questionnaire) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Questionnaire, error)
}

// questionnaireRepository implements QuestionnaireRepository using PostgreSQL.
type questionnaireRepository struct {
	q Querier
}

// NewQuestionnaireRepository creates a new questionnaire repository.
func NewQuestionnaireRepository(db *database.DB) QuestionnaireRepository {
	return &questionnaireRepository{q: db.Pool}
}

// Create inserts one questionnaire submission. The completion timestamp is
// set server-side.
func (r *questionnaireRepository) Create(ctx context.Context, questionnaire *models.Questionnaire) error {
	if questionnaire.ID == uuid.Nil {
		questionnaire.ID = uuid.New()
	}
	questionnaire.CompletedAt = time.Now()

	data := string(questionnaire.Data)
	if data == "" {
		data = "{}"
	}

	query := `
		INSERT INTO questionnaires (id, company_id, type, data, completed_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.q.Exec(ctx, query,
		questionnaire.ID,
		questionnaire.CompanyID,
		questionnaire.Type,
		data,
		questionnaire.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create questionnaire: %w", err)
	}

	return nil
}

// ListByCompany returns all questionnaire submissions for a company,
// most recent first.
func (r *questionnaireRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Questionnaire, error) {
	query := `
		SELECT id, company_id, type, data, completed_at
		FROM questionnaires
		WHERE company_id = $1
		ORDER BY completed_at DESC`

	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questionnaires: %w", err)
	}
	defer rows.Close()

	questionnaires := []*models.Questionnaire{}
	for rows.Next() {
		var questionnaire models.Questionnaire
		var data string
		if err := rows.Scan(
			&questionnaire.ID,
			&questionnaire.CompanyID,
			&questionnaire.Type,
			&data,
			&questionnaire.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan questionnaire: %w", err)
		}
		questionnaire.Data = []byte(data)
		questionnaires = append(questionnaires, &questionnaire)
	}

	return questionnaires, rows.Err()
}

var _ QuestionnaireRepository = (*questionnaireRepository)(nil)
