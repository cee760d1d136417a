package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zetedec/lanchat/internal/domain"
)

const messageSelect = `
	SELECT m.id, m.user_id, m.group_id, m.receiver_id, m.content, m.created_at,
		m.updated_at, m.edited, m.pinned, m.reply_to, m.mentions, u.username
	FROM messages m
	JOIN users u ON m.user_id = u.id`

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (user_id, group_id, receiver_id, content, created_at, edited, pinned, reply_to, mentions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	return r.pool.QueryRow(ctx, query,
		msg.AuthorID, msg.GroupID, msg.ReceiverID, msg.Content.Encode(),
		msg.CreatedAt, msg.Edited, msg.Pinned, msg.ReplyTo, msg.Mentions,
	).Scan(&msg.ID)
}

func (r *MessageRepo) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var msg domain.Message
	err := scanMessageRow(r.pool.QueryRow(ctx, messageSelect+" WHERE m.id = $1", id), &msg)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// List translates the filter into a WHERE clause mirroring
// domain.MessageFilter.Matches: exact audience match (private pairs in either
// direction) plus a case-insensitive content substring.
func (r *MessageRepo) List(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	var (
		where string
		args  []any
	)

	switch filter.Audience.Kind {
	case domain.AudienceGroup:
		where = "m.group_id = $1"
		args = []any{filter.Audience.GroupID}
	case domain.AudiencePrivate:
		where = "((m.user_id = $1 AND m.receiver_id = $2) OR (m.user_id = $2 AND m.receiver_id = $1))"
		args = []any{filter.Audience.UserA, filter.Audience.UserB}
	default:
		where = "m.group_id IS NULL AND m.receiver_id IS NULL"
	}

	if filter.Query != "" {
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		where += fmt.Sprintf(` AND m.content ILIKE $%d ESCAPE '\'`, len(args))
	}

	return r.queryMessages(ctx, messageSelect+" WHERE "+where+" ORDER BY m.id", args...)
}

// escapeLike neutralizes LIKE wildcards so the pattern is a literal
// substring, keeping ILIKE in step with domain.MessageFilter.Matches.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *MessageRepo) ListAll(ctx context.Context) ([]domain.Message, error) {
	return r.queryMessages(ctx, messageSelect+" ORDER BY m.id")
}

func (r *MessageRepo) Update(ctx context.Context, msg *domain.Message) error {
	query := `UPDATE messages SET content = $1, updated_at = $2, edited = $3 WHERE id = $4`
	_, err := r.pool.Exec(ctx, query, msg.Content.Encode(), msg.UpdatedAt, msg.Edited, msg.ID)
	return err
}

func (r *MessageRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

func (r *MessageRepo) queryMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := scanMessageRow(rows, &msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func scanMessageRow(row pgx.Row, msg *domain.Message) error {
	var content string
	err := row.Scan(
		&msg.ID, &msg.AuthorID, &msg.GroupID, &msg.ReceiverID, &content,
		&msg.CreatedAt, &msg.UpdatedAt, &msg.Edited, &msg.Pinned,
		&msg.ReplyTo, &msg.Mentions, &msg.AuthorUsername,
	)
	if err != nil {
		return err
	}
	msg.Content = domain.ParseContent(content)
	return nil
}
