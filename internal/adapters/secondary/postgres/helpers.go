package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
)

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgUUIDPtr(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgUUID(*id)
}

func uuidPtr(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	value := uuid.UUID(v.Bytes)
	return &value
}

func pgTimePtr(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func timePtr(v pgtype.Timestamptz) *time.Time {
	if !v.Valid {
		return nil
	}
	value := v.Time
	return &value
}

// appendScope appends the visibility predicate for a ticket scope.
// An admin scope adds nothing; an agent scope matches created-by OR
// assigned-to as a single predicate so overlapping tickets count once.
func appendScope(where []string, args []any, scope domain.TicketScope) ([]string, []any) {
	if scope.All {
		return where, args
	}

	args = append(args, pgUUID(scope.UserID))
	n := len(args)
	if scope.IncludeAssigned {
		where = append(where, fmt.Sprintf("(t.created_by = $%d OR t.assigned_to = $%d)", n, n))
	} else {
		where = append(where, fmt.Sprintf("t.created_by = $%d", n))
	}
	return where, args
}

// appendWindow appends creation-time bounds. Zero bounds are skipped.
func appendWindow(where []string, args []any, window domain.ReportWindow) ([]string, []any) {
	if !window.From.IsZero() {
		args = append(args, window.From)
		where = append(where, fmt.Sprintf("t.created_at >= $%d", len(args)))
	}
	if !window.To.IsZero() {
		args = append(args, window.To)
		where = append(where, fmt.Sprintf("t.created_at <= $%d", len(args)))
	}
	return where, args
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(where, " AND ")
}
