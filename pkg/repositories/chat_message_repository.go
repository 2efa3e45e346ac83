package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hackett-digital/transform-engine/pkg/database"
	"github.com/hackett-digital/transform-engine/pkg/models"
)

// ChatMessageRepository defines the interface for chat transcript data access.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	// ListByCompany returns the transcript in chronological order.
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.ChatMessage, error)
}

// chatMessageRepository implements ChatMessageRepository using PostgreSQL.
type chatMessageRepository struct {
	q Querier
}

// NewChatMessageRepository creates a new chat message repository.
func NewChatMessageRepository(db *database.DB) ChatMessageRepository {
	return &chatMessageRepository{q: db.Pool}
}

// Create appends one message to a company's transcript.
func (r *chatMessageRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO chat_messages (id, company_id, role, content, confidence, related_phase,
			model_name, is_error, is_fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.q.Exec(ctx, query,
		message.ID,
		message.CompanyID,
		message.Role,
		message.Content,
		message.Confidence,
		message.RelatedPhase,
		message.ModelName,
		message.IsError,
		message.IsFallback,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

// ListByCompany returns all messages for a company, oldest first.
func (r *chatMessageRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.ChatMessage, error) {
	query := `
		SELECT id, company_id, role, content, confidence, related_phase, model_name,
			is_error, is_fallback, created_at
		FROM chat_messages
		WHERE company_id = $1
		ORDER BY created_at ASC`

	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.ChatMessage{}
	for rows.Next() {
		message, err := scanChatMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

func scanChatMessage(row pgx.Row) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := row.Scan(
		&message.ID,
		&message.CompanyID,
		&message.Role,
		&message.Content,
		&message.Confidence,
		&message.RelatedPhase,
		&message.ModelName,
		&message.IsError,
		&message.IsFallback,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

var _ ChatMessageRepository = (*chatMessageRepository)(nil)
