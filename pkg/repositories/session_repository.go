package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hackett-digital/transform-engine/pkg/apperrors"
	"github.com/hackett-digital/transform-engine/pkg/database"
	"github.com/hackett-digital/transform-engine/pkg/models"
)

// SessionRepository defines the interface for user session tracking.
type SessionRepository interface {
	Create(ctx context.Context, session *models.UserSession) error
	Get(ctx context.Context, id uuid.UUID) (*models.UserSession, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	End(ctx context.Context, id uuid.UUID, at time.Time) error
}

// sessionRepository implements SessionRepository using PostgreSQL.
type sessionRepository struct {
	q Querier
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *database.DB) SessionRepository {
	return &sessionRepository{q: db.Pool}
}

// Create inserts a session row.
func (r *sessionRepository) Create(ctx context.Context, session *models.UserSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	if session.StartedAt.IsZero() {
		session.StartedAt = now
	}
	if session.LastActivity.IsZero() {
		session.LastActivity = now
	}

	data := string(session.SessionData)
	if data == "" {
		data = "{}"
	}

	query := `
		INSERT INTO user_sessions (id, user_id, company_id, session_data, started_at, last_activity, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.CompanyID,
		data,
		session.StartedAt,
		session.LastActivity,
		session.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID.
func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.UserSession, error) {
	query := `
		SELECT id, user_id, company_id, session_data, started_at, last_activity, ended_at
		FROM user_sessions
		WHERE id = $1`

	var session models.UserSession
	var data string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.CompanyID,
		&data,
		&session.StartedAt,
		&session.LastActivity,
		&session.EndedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	session.SessionData = []byte(data)

	return &session, nil
}

// Touch updates the session's last-activity timestamp.
func (r *sessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.q.Exec(ctx,
		`UPDATE user_sessions SET last_activity = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// End closes the session.
func (r *sessionRepository) End(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.q.Exec(ctx,
		`UPDATE user_sessions SET ended_at = $2, last_activity = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ SessionRepository = (*sessionRepository)(nil)
