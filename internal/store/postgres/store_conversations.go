package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	db_models "pdfchat-backend/internal/models"
	"pdfchat-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Conversation queries are owner-scoped at the SQL level: the WHERE clause
// matches both id and user_id, so a conversation owned by a different user
// is indistinguishable from one that does not exist. Callers only ever see
// store.ErrNotFound for either case.

const createConversation = `-- name: CreateConversation :one
INSERT INTO conversations (id, user_id, title, messages)
VALUES ($1, $2, $3, $4::jsonb)
RETURNING id, user_id, title, messages, created_at;
`

// CreateConversation inserts the record together with its first turn in a
// single statement. A failure here persists nothing: there is no window in
// which an empty titled conversation exists.
func (s *PostgresStore) CreateConversation(ctx context.Context, arg store.CreateConversationParams) (*db_models.Conversation, error) {
	pair, err := json.Marshal([]db_models.Message{arg.UserMessage, arg.AssistantMessage})
	if err != nil {
		return nil, fmt.Errorf("error marshaling message pair: %w", err)
	}

	row := s.db.QueryRow(ctx, createConversation, arg.ID, arg.UserID, arg.Title, pair)
	var c db_models.Conversation
	err = row.Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Messages,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error inserting conversation: %w", err)
	}
	return &c, nil
}

const appendTurn = `-- name: AppendTurn :one
UPDATE conversations
SET messages = messages || $3::jsonb
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, title, messages, created_at;
`

// AppendTurn appends the user/assistant pair in a single UPDATE so a turn is
// atomic per call: concurrent turns on one conversation interleave at pair
// granularity, each call adds its own pair without overwriting the other's.
func (s *PostgresStore) AppendTurn(ctx context.Context, id, userID uuid.UUID, userMsg, assistantMsg db_models.Message) (*db_models.Conversation, error) {
	pair, err := json.Marshal([]db_models.Message{userMsg, assistantMsg})
	if err != nil {
		return nil, fmt.Errorf("error marshaling message pair: %w", err)
	}

	row := s.db.QueryRow(ctx, appendTurn, id, userID, pair)
	var c db_models.Conversation
	err = row.Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Messages,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error appending turn: %w", err)
	}
	return &c, nil
}

const getConversation = `-- name: GetConversation :one
SELECT id, user_id, title, messages, created_at
FROM conversations
WHERE id = $1 AND user_id = $2;
`

func (s *PostgresStore) GetConversation(ctx context.Context, id, userID uuid.UUID) (*db_models.Conversation, error) {
	row := s.db.QueryRow(ctx, getConversation, id, userID)
	var c db_models.Conversation
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Messages,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning conversation: %w", err)
	}
	return &c, nil
}

const listConversations = `-- name: ListConversations :many
SELECT id, title, created_at
FROM conversations
WHERE user_id = $1
ORDER BY created_at DESC;
`

// ListConversations returns the history projection (no message bodies),
// newest first.
func (s *PostgresStore) ListConversations(ctx context.Context, userID uuid.UUID) ([]db_models.ConversationSummary, error) {
	rows, err := s.db.Query(ctx, listConversations, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying conversations: %w", err)
	}
	defer rows.Close()

	var items []db_models.ConversationSummary
	for rows.Next() {
		var i db_models.ConversationSummary
		if err := rows.Scan(&i.ID, &i.Title, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		items = append(items, i)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}

	return items, nil
}

const deleteConversation = `-- name: DeleteConversation :exec
DELETE FROM conversations
WHERE id = $1 AND user_id = $2;
`

// DeleteConversation removes the whole record. Deleting an id that does not
// exist (or is not owned by userID) returns store.ErrNotFound rather than
// succeeding silently.
func (s *PostgresStore) DeleteConversation(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, deleteConversation, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
