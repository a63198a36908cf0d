package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

const ticketColumns = `t.id, t.title, t.description, t.priority, t.status, t.created_by, t.assigned_to, t.created_at, t.updated_at, t.resolved_at, t.escalation_date`

type TicketRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TicketRepository = (*TicketRepository)(nil)

func NewTicketRepository(pool *pgxpool.Pool) ports.TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
INSERT INTO tickets (title, description, priority, status, created_by, assigned_to, created_at, updated_at, resolved_at, escalation_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id
`

	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		string(ticket.Priority),
		string(ticket.Status),
		pgUUID(ticket.CreatedBy),
		pgUUIDPtr(ticket.AssignedTo),
		ticket.CreatedAt,
		ticket.UpdatedAt,
		pgTimePtr(ticket.ResolvedAt),
		pgTimePtr(ticket.EscalationDate),
	).Scan(&ticket.ID)
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets t WHERE t.id = $1`, ticketColumns)

	ticket, err := scanTicketFrom(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (r *TicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
UPDATE tickets
SET title = $2,
    description = $3,
    priority = $4,
    status = $5,
    assigned_to = $6,
    updated_at = $7,
    resolved_at = $8,
    escalation_date = $9
WHERE id = $1
`

	tag, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		string(ticket.Priority),
		string(ticket.Status),
		pgUUIDPtr(ticket.AssignedTo),
		ticket.UpdatedAt,
		pgTimePtr(ticket.ResolvedAt),
		pgTimePtr(ticket.EscalationDate),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}
	return nil
}

// Delete removes a ticket; comments go with it via the FK cascade.
func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) List(ctx context.Context, scope domain.TicketScope, filter ports.TicketFilter) ([]*domain.Ticket, int64, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 6)

	where, args = appendScope(where, args, scope)

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, string(*filter.Priority))
		where = append(where, fmt.Sprintf("t.priority = $%d", len(args)))
	}

	args = append(args, filter.Limit)
	limitIdx := len(args)
	args = append(args, filter.Offset)
	offsetIdx := len(args)

	query := fmt.Sprintf(`
SELECT %s, COUNT(*) OVER() AS total
FROM tickets t
%s
ORDER BY t.created_at DESC, t.id DESC
LIMIT $%d OFFSET $%d
`, ticketColumns, whereClause(where), limitIdx, offsetIdx)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var total int64
	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		ticket, rowTotal, err := scanTicketWithTotal(rows)
		if err != nil {
			return nil, 0, err
		}
		total = rowTotal
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// ListOverdue returns unresolved tickets whose escalation deadline has
// passed. Already-escalated tickets are excluded.
func (r *TicketRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Ticket, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM tickets t
WHERE t.status IN ('open', 'in_progress')
  AND t.escalation_date IS NOT NULL
  AND t.escalation_date <= $1
ORDER BY t.escalation_date
`, ticketColumns)

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicketFrom(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

func scanTicketFrom(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket         domain.Ticket
		priority       string
		status         string
		createdBy      pgtype.UUID
		assignedTo     pgtype.UUID
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
		resolvedAt     pgtype.Timestamptz
		escalationDate pgtype.Timestamptz
	)

	if err := row.Scan(
		&ticket.ID, &ticket.Title, &ticket.Description, &priority, &status,
		&createdBy, &assignedTo, &createdAt, &updatedAt, &resolvedAt, &escalationDate,
	); err != nil {
		return nil, err
	}

	fillTicket(&ticket, priority, status, createdBy, assignedTo, createdAt, updatedAt, resolvedAt, escalationDate)
	return &ticket, nil
}

func scanTicketWithTotal(rows pgx.Rows) (*domain.Ticket, int64, error) {
	var (
		ticket         domain.Ticket
		priority       string
		status         string
		createdBy      pgtype.UUID
		assignedTo     pgtype.UUID
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
		resolvedAt     pgtype.Timestamptz
		escalationDate pgtype.Timestamptz
		total          int64
	)

	if err := rows.Scan(
		&ticket.ID, &ticket.Title, &ticket.Description, &priority, &status,
		&createdBy, &assignedTo, &createdAt, &updatedAt, &resolvedAt, &escalationDate,
		&total,
	); err != nil {
		return nil, 0, err
	}

	fillTicket(&ticket, priority, status, createdBy, assignedTo, createdAt, updatedAt, resolvedAt, escalationDate)
	return &ticket, total, nil
}

func fillTicket(
	ticket *domain.Ticket,
	priority, status string,
	createdBy, assignedTo pgtype.UUID,
	createdAt, updatedAt, resolvedAt, escalationDate pgtype.Timestamptz,
) {
	ticket.Priority = domain.TicketPriority(priority)
	ticket.Status = domain.TicketStatus(status)
	ticket.CreatedBy = uuid.UUID(createdBy.Bytes)
	ticket.AssignedTo = uuidPtr(assignedTo)
	ticket.CreatedAt = createdAt.Time
	ticket.UpdatedAt = updatedAt.Time
	ticket.ResolvedAt = timePtr(resolvedAt)
	ticket.EscalationDate = timePtr(escalationDate)
}
