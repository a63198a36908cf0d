package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// ticketFixture describes a ticket to seed. Zero values get sensible
// defaults so tests only spell out what they assert on.
type ticketFixture struct {
	title      string
	priority   domain.TicketPriority
	status     domain.TicketStatus
	createdBy  uuid.UUID
	assignedTo *uuid.UUID
	createdAt  time.Time
	resolvedAt *time.Time
	escalation *time.Time
}

func seedTicket(t *testing.T, f ticketFixture) *domain.Ticket {
	t.Helper()

	if f.title == "" {
		f.title = "fixture ticket"
	}
	if f.priority == "" {
		f.priority = domain.PriorityMedium
	}
	if f.status == "" {
		f.status = domain.StatusOpen
	}
	if f.createdAt.IsZero() {
		f.createdAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	ticket := &domain.Ticket{
		Title:          f.title,
		Description:    "fixture description",
		Priority:       f.priority,
		Status:         f.status,
		CreatedBy:      f.createdBy,
		AssignedTo:     f.assignedTo,
		CreatedAt:      f.createdAt,
		UpdatedAt:      f.createdAt,
		ResolvedAt:     f.resolvedAt,
		EscalationDate: f.escalation,
	}

	require.NoError(t, NewTicketRepository(testPool).Create(context.Background(), ticket))
	require.NotZero(t, ticket.ID)
	return ticket
}

func TestTicketRepository_CreateAndGet(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)
	agent := seedUser(t, "Agent", "agent@example.com", domain.RoleAgent)

	createdAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	deadline := createdAt.Add(4 * time.Hour)
	created := seedTicket(t, ticketFixture{
		title:      "printer on fire",
		priority:   domain.PriorityHigh,
		createdBy:  creator.ID,
		assignedTo: &agent.ID,
		createdAt:  createdAt,
		escalation: &deadline,
	})

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "printer on fire", found.Title)
	assert.Equal(t, domain.PriorityHigh, found.Priority)
	assert.Equal(t, domain.StatusOpen, found.Status)
	assert.Equal(t, creator.ID, found.CreatedBy)
	require.NotNil(t, found.AssignedTo)
	assert.Equal(t, agent.ID, *found.AssignedTo)
	assert.Nil(t, found.ResolvedAt)
	require.NotNil(t, found.EscalationDate)
	assert.True(t, found.EscalationDate.Equal(deadline))
}

func TestTicketRepository_GetByID_NotFound(t *testing.T) {
	truncateAll(t)

	_, err := NewTicketRepository(testPool).GetByID(context.Background(), 99999)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

func TestTicketRepository_Update(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)
	agent := seedUser(t, "Agent", "agent@example.com", domain.RoleAgent)
	ticket := seedTicket(t, ticketFixture{createdBy: creator.ID})

	resolvedAt := time.Now().UTC().Truncate(time.Microsecond)
	ticket.Status = domain.StatusResolved
	ticket.ResolvedAt = &resolvedAt
	ticket.AssignedTo = &agent.ID
	ticket.UpdatedAt = resolvedAt

	require.NoError(t, repo.Update(ctx, ticket))

	found, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, found.Status)
	require.NotNil(t, found.ResolvedAt)
	assert.True(t, found.ResolvedAt.Equal(resolvedAt))
	require.NotNil(t, found.AssignedTo)
	assert.Equal(t, agent.ID, *found.AssignedTo)
}

func TestTicketRepository_Update_NotFound(t *testing.T) {
	truncateAll(t)

	err := NewTicketRepository(testPool).Update(context.Background(), &domain.Ticket{
		ID:       424242,
		Title:    "ghost",
		Priority: domain.PriorityLow,
		Status:   domain.StatusOpen,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}

func TestTicketRepository_Delete(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)
	ticket := seedTicket(t, ticketFixture{createdBy: creator.ID})

	require.NoError(t, repo.Delete(ctx, ticket.ID))

	_, err := repo.GetByID(ctx, ticket.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, ticket.ID), apperrors.ErrTicketNotFound)
}

func TestTicketRepository_List_Scope(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	alice := seedUser(t, "Alice", "alice@example.com", domain.RoleUser)
	bob := seedUser(t, "Bob", "bob@example.com", domain.RoleUser)
	agent := seedUser(t, "Agent", "agent@example.com", domain.RoleAgent)

	seedTicket(t, ticketFixture{title: "alice 1", createdBy: alice.ID})
	seedTicket(t, ticketFixture{title: "bob 1", createdBy: bob.ID, assignedTo: &agent.ID})
	// Created by the agent and assigned to the agent. Must count once.
	seedTicket(t, ticketFixture{title: "agent own", createdBy: agent.ID, assignedTo: &agent.ID})

	filter := ports.TicketFilter{Limit: 25}

	adminTickets, adminTotal, err := repo.List(ctx, domain.TicketScope{All: true}, filter)
	require.NoError(t, err)
	assert.Len(t, adminTickets, 3)
	assert.EqualValues(t, 3, adminTotal)

	userTickets, userTotal, err := repo.List(ctx, domain.ScopeFor(alice.ID, domain.RoleUser), filter)
	require.NoError(t, err)
	require.Len(t, userTickets, 1)
	assert.EqualValues(t, 1, userTotal)
	assert.Equal(t, "alice 1", userTickets[0].Title)

	agentTickets, agentTotal, err := repo.List(ctx, domain.ScopeFor(agent.ID, domain.RoleAgent), filter)
	require.NoError(t, err)
	assert.Len(t, agentTickets, 2)
	assert.EqualValues(t, 2, agentTotal)
}

func TestTicketRepository_List_FilterAndPagination(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedTicket(t, ticketFixture{
			createdBy: creator.ID,
			createdAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	seedTicket(t, ticketFixture{
		createdBy: creator.ID,
		status:    domain.StatusResolved,
		createdAt: base.Add(10 * time.Hour),
	})

	scope := domain.TicketScope{All: true}

	// Newest first, with a stable total across pages.
	page1, total, err := repo.List(ctx, scope, ports.TicketFilter{Limit: 4})
	require.NoError(t, err)
	require.Len(t, page1, 4)
	assert.EqualValues(t, 6, total)
	assert.Equal(t, domain.StatusResolved, page1[0].Status)

	page2, total, err := repo.List(ctx, scope, ports.TicketFilter{Limit: 4, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, page2, 2)
	assert.EqualValues(t, 6, total)

	resolved := domain.StatusResolved
	filtered, filteredTotal, err := repo.List(ctx, scope, ports.TicketFilter{Status: &resolved, Limit: 25})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.EqualValues(t, 1, filteredTotal)
}

func TestTicketRepository_ListOverdue(t *testing.T) {
	truncateAll(t)
	ctx := context.Background()
	repo := NewTicketRepository(testPool)

	creator := seedUser(t, "Creator", "creator@example.com", domain.RoleUser)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	overdue := seedTicket(t, ticketFixture{title: "overdue", createdBy: creator.ID, escalation: &past})
	seedTicket(t, ticketFixture{title: "not yet", createdBy: creator.ID, escalation: &future})
	seedTicket(t, ticketFixture{title: "no deadline", createdBy: creator.ID})
	seedTicket(t, ticketFixture{
		title:      "already escalated",
		createdBy:  creator.ID,
		status:     domain.StatusEscalated,
		escalation: &past,
	})
	seedTicket(t, ticketFixture{
		title:      "closed late",
		createdBy:  creator.ID,
		status:     domain.StatusClosed,
		escalation: &past,
	})

	tickets, err := repo.ListOverdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, overdue.ID, tickets[0].ID)
}
