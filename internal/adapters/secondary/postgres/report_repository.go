package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// ReportRepository answers the aggregation queries the report engine
// composes. Counting and averaging happen in SQL; only bounded result
// sets cross the wire.
type ReportRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

func NewReportRepository(pool *pgxpool.Pool) ports.ReportRepository {
	return &ReportRepository{pool: pool}
}

const windowStatsSelect = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE t.status IN ('resolved', 'closed')),
       COUNT(*) FILTER (WHERE t.status = 'escalated'),
       AVG(EXTRACT(EPOCH FROM (t.resolved_at - t.created_at)))
         FILTER (WHERE t.status IN ('resolved', 'closed') AND t.resolved_at IS NOT NULL)
FROM tickets t
`

func (r *ReportRepository) WindowStats(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (domain.WindowStats, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	where, args = appendScope(where, args, scope)
	where, args = appendWindow(where, args, window)

	query := windowStatsSelect + whereClause(where)
	return r.scanWindowStats(ctx, query, args)
}

func (r *ReportRepository) AgentWindowStats(ctx context.Context, agentID uuid.UUID, window domain.ReportWindow) (domain.WindowStats, error) {
	args := []any{pgUUID(agentID)}
	where := []string{"t.assigned_to = $1"}
	where, args = appendWindow(where, args, window)

	query := windowStatsSelect + whereClause(where)
	return r.scanWindowStats(ctx, query, args)
}

func (r *ReportRepository) PriorityWindowStats(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow, priority domain.TicketPriority) (domain.WindowStats, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)
	where, args = appendScope(where, args, scope)
	where, args = appendWindow(where, args, window)

	args = append(args, string(priority))
	where = append(where, fmt.Sprintf("t.priority = $%d", len(args)))

	query := windowStatsSelect + whereClause(where)
	return r.scanWindowStats(ctx, query, args)
}

func (r *ReportRepository) scanWindowStats(ctx context.Context, query string, args []any) (domain.WindowStats, error) {
	var (
		stats      domain.WindowStats
		avgSeconds pgtype.Float8
	)

	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&stats.Total, &stats.Resolved, &stats.Escalated, &avgSeconds); err != nil {
		return domain.WindowStats{}, err
	}

	if avgSeconds.Valid {
		stats.AvgResolutionHours = avgSeconds.Float64 / 3600
	}
	return stats, nil
}

func (r *ReportRepository) CountByStatus(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (map[domain.TicketStatus]int64, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	where, args = appendScope(where, args, scope)
	where, args = appendWindow(where, args, window)

	query := fmt.Sprintf(`
SELECT t.status, COUNT(*)
FROM tickets t
%s
GROUP BY t.status
`, whereClause(where))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.TicketStatus(status)] = count
	}
	return counts, rows.Err()
}

func (r *ReportRepository) CountByPriority(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (map[domain.TicketPriority]int64, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	where, args = appendScope(where, args, scope)
	where, args = appendWindow(where, args, window)

	query := fmt.Sprintf(`
SELECT t.priority, COUNT(*)
FROM tickets t
%s
GROUP BY t.priority
`, whereClause(where))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketPriority]int64)
	for rows.Next() {
		var (
			priority string
			count    int64
		)
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		counts[domain.TicketPriority(priority)] = count
	}
	return counts, rows.Err()
}

// DailyTrends groups the window's tickets by creation day. Resolved
// and escalated counts reflect the tickets' current status, matching
// the other windowed reports.
func (r *ReportRepository) DailyTrends(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) ([]domain.DailyTrend, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	where, args = appendScope(where, args, scope)
	where, args = appendWindow(where, args, window)

	query := fmt.Sprintf(`
SELECT date_trunc('day', t.created_at) AS day,
       COUNT(*) AS tickets_created,
       COUNT(*) FILTER (WHERE t.status IN ('resolved', 'closed')) AS tickets_resolved,
       COUNT(*) FILTER (WHERE t.status = 'escalated') AS tickets_escalated
FROM tickets t
%s
GROUP BY 1
ORDER BY 1
`, whereClause(where))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trends := make([]domain.DailyTrend, 0)
	for rows.Next() {
		var (
			day   time.Time
			trend domain.DailyTrend
		)
		if err := rows.Scan(&day, &trend.TicketsCreated, &trend.TicketsResolved, &trend.TicketsEscalated); err != nil {
			return nil, err
		}
		trend.Day = day
		trends = append(trends, trend)
	}
	return trends, rows.Err()
}

// FirstResponseStats measures the gap between each ticket's creation
// and its earliest comment. Tickets without comments never join the
// sample.
func (r *ReportRepository) FirstResponseStats(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (domain.FirstResponseStats, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	where, args = appendScope(where, args, scope)
	where, args = appendWindow(where, args, window)

	query := fmt.Sprintf(`
SELECT COUNT(*),
       COALESCE(AVG(f.gap_seconds), 0),
       COALESCE(MIN(f.gap_seconds), 0),
       COALESCE(MAX(f.gap_seconds), 0)
FROM (
  SELECT EXTRACT(EPOCH FROM (MIN(c.created_at) - t.created_at)) AS gap_seconds
  FROM tickets t
  JOIN comments c ON c.ticket_id = t.id
  %s
  GROUP BY t.id, t.created_at
) f
`, whereClause(where))

	var (
		stats      domain.FirstResponseStats
		avgSeconds float64
		minSeconds float64
		maxSeconds float64
	)

	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&stats.SampleCount, &avgSeconds, &minSeconds, &maxSeconds); err != nil {
		return domain.FirstResponseStats{}, err
	}

	stats.AvgHours = avgSeconds / 3600
	stats.MinHours = minSeconds / 3600
	stats.MaxHours = maxSeconds / 3600
	return stats, nil
}
