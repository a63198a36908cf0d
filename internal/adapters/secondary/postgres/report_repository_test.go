package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
)

var reportBase = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func seedComment(t *testing.T, ticketID int64, userID uuid.UUID, createdAt time.Time) {
	t.Helper()

	comment := &domain.Comment{
		TicketID:  ticketID,
		UserID:    userID,
		Content:   "fixture comment",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, NewCommentRepository(testPool).Create(context.Background(), comment))
}

func TestReportRepository_WindowStats(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewReportRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)

	resolvedAt2h := reportBase.Add(2 * time.Hour)
	resolvedAt4h := reportBase.Add(4 * time.Hour)
	seedTicket(t, ticketFixture{
		createdBy: creator.ID, status: domain.StatusResolved,
		createdAt: reportBase, resolvedAt: &resolvedAt2h,
	})
	seedTicket(t, ticketFixture{
		createdBy: creator.ID, status: domain.StatusClosed,
		createdAt: reportBase, resolvedAt: &resolvedAt4h,
	})
	seedTicket(t, ticketFixture{createdBy: creator.ID, status: domain.StatusEscalated, createdAt: reportBase})
	seedTicket(t, ticketFixture{createdBy: creator.ID, createdAt: reportBase})

	// Outside the window, must not count.
	seedTicket(t, ticketFixture{createdBy: creator.ID, createdAt: reportBase.Add(-48 * time.Hour)})

	window := domain.RangeWindow(reportBase.Add(-24*time.Hour), reportBase.Add(24*time.Hour))
	stats, err := repo.WindowStats(ctx, domain.TicketScope{All: true}, window)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 2, stats.Resolved)
	assert.EqualValues(t, 1, stats.Escalated)
	assert.InDelta(t, 3.0, stats.AvgResolutionHours, 1e-9)
}

func TestReportRepository_WindowStats_NoResolved(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewReportRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)
	seedTicket(t, ticketFixture{createdBy: creator.ID, createdAt: reportBase})

	stats, err := repo.WindowStats(ctx, domain.TicketScope{All: true}, domain.ReportWindow{})
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.Total)
	assert.Zero(t, stats.Resolved)
	assert.Zero(t, stats.AvgResolutionHours)
}

func TestReportRepository_WindowStats_AgentScopeCountsOverlapOnce(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewReportRepository(testPool)

	agent := seedUser(t, "Agent", "agent@example.com", domain.RoleAgent)
	other := seedUser(t, "Other", "other@example.com", domain.RoleUser)

	// Created by and assigned to the same agent.
	seedTicket(t, ticketFixture{createdBy: agent.ID, assignedTo: &agent.ID, createdAt: reportBase})
	// Merely assigned.
	seedTicket(t, ticketFixture{createdBy: other.ID, assignedTo: &agent.ID, createdAt: reportBase})
	// Unrelated.
	seedTicket(t, ticketFixture{createdBy: other.ID, createdAt: reportBase})

	scope := domain.ScopeFor(agent.ID, domain.RoleAgent)
	stats, err := repo.WindowStats(ctx, scope, domain.ReportWindow{})
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Total)
}

func TestReportRepository_AgentWindowStats(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewReportRepository(testPool)

	agent := seedUser(t, "Agent", "agent@example.com", domain.RoleAgent)
	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)

	resolvedAt := reportBase.Add(90 * time.Minute)
	seedTicket(t, ticketFixture{
		createdBy: creator.ID, assignedTo: &agent.ID, status: domain.StatusResolved,
		createdAt: reportBase, resolvedAt: &resolvedAt,
	})
	seedTicket(t, ticketFixture{createdBy: creator.ID, assignedTo: &agent.ID, createdAt: reportBase})
	// Created by the agent but not assigned to them, must not count here.
	seedTicket(t, ticketFixture{createdBy: agent.ID, createdAt: reportBase})

	stats, err := repo.AgentWindowStats(ctx, agent.ID, domain.ReportWindow{})
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.Resolved)
	assert.InDelta(t, 1.5, stats.AvgResolutionHours, 1e-9)
}

func TestReportRepository_CountByStatusAndPriority(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewReportRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)

	seedTicket(t, ticketFixture{createdBy: creator.ID, status: domain.StatusOpen, priority: domain.PriorityHigh, createdAt: reportBase})
	seedTicket(t, ticketFixture{createdBy: creator.ID, status: domain.StatusOpen, priority: domain.PriorityLow, createdAt: reportBase})
	seedTicket(t, ticketFixture{createdBy: creator.ID, status: domain.StatusClosed, priority: domain.PriorityHigh, createdAt: reportBase})

	scope := domain.TicketScope{All: true}

	byStatus, err := repo.CountByStatus(ctx, scope, domain.ReportWindow{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, byStatus[domain.StatusOpen])
	assert.EqualValues(t, 1, byStatus[domain.StatusClosed])
	assert.NotContains(t, byStatus, domain.StatusResolved)

	byPriority, err := repo.CountByPriority(ctx, scope, domain.ReportWindow{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, byPriority[domain.PriorityHigh])
	assert.EqualValues(t, 1, byPriority[domain.PriorityLow])
}

func TestReportRepository_PriorityWindowStats(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewReportRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)

	resolvedAt := reportBase.Add(time.Hour)
	seedTicket(t, ticketFixture{
		createdBy: creator.ID, priority: domain.PriorityHigh, status: domain.StatusResolved,
		createdAt: reportBase, resolvedAt: &resolvedAt,
	})
	seedTicket(t, ticketFixture{createdBy: creator.ID, priority: domain.PriorityHigh, status: domain.StatusEscalated, createdAt: reportBase})
	seedTicket(t, ticketFixture{createdBy: creator.ID, priority: domain.PriorityLow, createdAt: reportBase})

	stats, err := repo.PriorityWindowStats(ctx, domain.TicketScope{All: true}, domain.ReportWindow{}, domain.PriorityHigh)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.Resolved)
	assert.EqualValues(t, 1, stats.Escalated)
	assert.InDelta(t, 1.0, stats.AvgResolutionHours, 1e-9)
}

func TestReportRepository_DailyTrends(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewReportRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)

	day1 := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)

	resolvedAt := day1.Add(3 * time.Hour)
	seedTicket(t, ticketFixture{createdBy: creator.ID, status: domain.StatusResolved, createdAt: day1, resolvedAt: &resolvedAt})
	seedTicket(t, ticketFixture{createdBy: creator.ID, createdAt: day1.Add(2 * time.Hour)})
	seedTicket(t, ticketFixture{createdBy: creator.ID, status: domain.StatusEscalated, createdAt: day2})

	trends, err := repo.DailyTrends(ctx, domain.TicketScope{All: true}, domain.ReportWindow{})
	require.NoError(t, err)
	require.Len(t, trends, 2)

	// Ascending by day.
	assert.Equal(t, day1.Truncate(24*time.Hour), trends[0].Day.UTC())
	assert.EqualValues(t, 2, trends[0].TicketsCreated)
	assert.EqualValues(t, 1, trends[0].TicketsResolved)
	assert.EqualValues(t, 0, trends[0].TicketsEscalated)

	assert.EqualValues(t, 1, trends[1].TicketsCreated)
	assert.EqualValues(t, 1, trends[1].TicketsEscalated)
}

func TestReportRepository_FirstResponseStats(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewReportRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)
	agent := seedUser(t, "Agent", "agent@example.com", domain.RoleAgent)

	// First response after 30 minutes; a later comment must not move it.
	withComments := seedTicket(t, ticketFixture{createdBy: creator.ID, createdAt: reportBase})
	seedComment(t, withComments.ID, agent.ID, reportBase.Add(30*time.Minute))
	seedComment(t, withComments.ID, creator.ID, reportBase.Add(2*time.Hour))

	// First response after 90 minutes.
	slower := seedTicket(t, ticketFixture{createdBy: creator.ID, createdAt: reportBase})
	seedComment(t, slower.ID, agent.ID, reportBase.Add(90*time.Minute))

	// No comments, excluded from the sample.
	seedTicket(t, ticketFixture{createdBy: creator.ID, createdAt: reportBase})

	stats, err := repo.FirstResponseStats(ctx, domain.TicketScope{All: true}, domain.ReportWindow{})
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.SampleCount)
	assert.InDelta(t, 1.0, stats.AvgHours, 1e-9)
	assert.InDelta(t, 0.5, stats.MinHours, 1e-9)
	assert.InDelta(t, 1.5, stats.MaxHours, 1e-9)
}

func TestReportRepository_FirstResponseStats_Empty(t *testing.T) {
	truncateAll(t)

	stats, err := NewReportRepository(testPool).FirstResponseStats(
		context.Background(), domain.TicketScope{All: true}, domain.ReportWindow{},
	)
	require.NoError(t, err)

	assert.Zero(t, stats.SampleCount)
	assert.Zero(t, stats.AvgHours)
	assert.Zero(t, stats.MinHours)
	assert.Zero(t, stats.MaxHours)
}
