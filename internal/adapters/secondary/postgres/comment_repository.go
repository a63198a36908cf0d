package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(pool *pgxpool.Pool) ports.CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
INSERT INTO comments (ticket_id, user_id, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

	return r.pool.QueryRow(ctx, query,
		comment.TicketID,
		pgUUID(comment.UserID),
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.ID)
}

func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]*domain.Comment, error) {
	const query = `
SELECT id, ticket_id, user_id, content, created_at, updated_at
FROM comments
WHERE ticket_id = $1
ORDER BY created_at, id
`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		var (
			comment   domain.Comment
			userID    pgtype.UUID
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&comment.ID, &comment.TicketID, &userID, &comment.Content, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		comment.UserID = uuid.UUID(userID.Bytes)
		comment.CreatedAt = createdAt.Time
		comment.UpdatedAt = updatedAt.Time
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}
