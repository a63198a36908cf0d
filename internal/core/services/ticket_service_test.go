package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
	"github.com/lorrc/helpdesk-backend/internal/core/mocks"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

func newTicketServiceFixture() (*TicketService, *mocks.MockTicketRepository, *mocks.MockNotifier, *mocks.MockEventBroadcaster) {
	ticketRepo := mocks.NewMockTicketRepository()
	notifier := mocks.NewMockNotifier()
	broadcaster := mocks.NewMockEventBroadcaster()
	svc := NewTicketService(ticketRepo, notifier, broadcaster)
	return svc, ticketRepo, notifier, broadcaster
}

func TestTicketService_CreateTicket(t *testing.T) {
	svc, ticketRepo, notifier, broadcaster := newTicketServiceFixture()
	actor := &domain.User{ID: uuid.New(), Role: domain.RoleUser}

	ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).Return(nil)
	notifier.On("NotifyTicketCreated", mock.Anything, mock.Anything).Return(nil)
	broadcaster.On("BroadcastTicketEvent", EventTicketCreated, mock.Anything).Return()

	ticket, err := svc.CreateTicket(context.Background(), actor, ports.CreateTicketParams{
		Title:    "Monitor flickers",
		Priority: domain.PriorityMedium,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOpen, ticket.Status)
	assert.Equal(t, actor.ID, ticket.CreatedBy)
	require.NotNil(t, ticket.EscalationDate)
	assert.Equal(t, ticket.CreatedAt.Add(4*time.Hour), *ticket.EscalationDate)

	svc.Shutdown()
	ticketRepo.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestTicketService_CreateTicket_ValidationFails(t *testing.T) {
	svc, ticketRepo, _, _ := newTicketServiceFixture()
	actor := &domain.User{ID: uuid.New(), Role: domain.RoleUser}

	_, err := svc.CreateTicket(context.Background(), actor, ports.CreateTicketParams{
		Priority: domain.PriorityLow,
	})
	require.Error(t, err)

	ticketRepo.AssertNotCalled(t, "Create")
}

func TestTicketService_GetTicket_Scoping(t *testing.T) {
	owner := uuid.New()
	assignee := uuid.New()
	stranger := uuid.New()

	ticket := &domain.Ticket{ID: 7, Status: domain.StatusOpen, CreatedBy: owner, AssignedTo: &assignee}

	tests := []struct {
		name    string
		actor   *domain.User
		wantErr error
	}{
		{name: "owner reads own ticket", actor: &domain.User{ID: owner, Role: domain.RoleUser}},
		{name: "assigned agent reads ticket", actor: &domain.User{ID: assignee, Role: domain.RoleAgent}},
		{name: "admin reads any ticket", actor: &domain.User{ID: stranger, Role: domain.RoleAdmin}},
		{name: "unrelated user is refused", actor: &domain.User{ID: stranger, Role: domain.RoleUser}, wantErr: apperrors.ErrForbidden},
		{name: "unrelated agent is refused", actor: &domain.User{ID: stranger, Role: domain.RoleAgent}, wantErr: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ticketRepo, _, _ := newTicketServiceFixture()
			ticketRepo.On("GetByID", mock.Anything, int64(7)).Return(ticket, nil)

			got, err := svc.GetTicket(context.Background(), tt.actor, 7)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ticket, got)
		})
	}
}

func TestTicketService_UpdateTicket_StatusRules(t *testing.T) {
	owner := uuid.New()
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("admin resolves ticket and resolved_at is stamped", func(t *testing.T) {
		svc, ticketRepo, notifier, broadcaster := newTicketServiceFixture()
		ticket := &domain.Ticket{ID: 3, Status: domain.StatusInProgress, CreatedBy: owner}

		ticketRepo.On("GetByID", mock.Anything, int64(3)).Return(ticket, nil)
		ticketRepo.On("Update", mock.Anything, ticket).Return(nil)
		notifier.On("NotifyTicketUpdated", mock.Anything, mock.Anything).Return(nil)
		broadcaster.On("BroadcastTicketEvent", EventTicketUpdated, mock.Anything).Return()

		newStatus := domain.StatusResolved
		updated, err := svc.UpdateTicket(context.Background(), admin, 3, ports.UpdateTicketParams{Status: &newStatus})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusResolved, updated.Status)
		assert.NotNil(t, updated.ResolvedAt)

		svc.Shutdown()
	})

	t.Run("plain user cannot change status", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceFixture()
		ticket := &domain.Ticket{ID: 3, Status: domain.StatusOpen, CreatedBy: owner}
		ticketRepo.On("GetByID", mock.Anything, int64(3)).Return(ticket, nil)

		newStatus := domain.StatusResolved
		actor := &domain.User{ID: owner, Role: domain.RoleUser}
		_, err := svc.UpdateTicket(context.Background(), actor, 3, ports.UpdateTicketParams{Status: &newStatus})
		require.ErrorIs(t, err, apperrors.ErrForbidden)
		ticketRepo.AssertNotCalled(t, "Update")
	})

	t.Run("invalid transition is rejected", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceFixture()
		ticket := &domain.Ticket{ID: 3, Status: domain.StatusClosed, CreatedBy: owner}
		ticketRepo.On("GetByID", mock.Anything, int64(3)).Return(ticket, nil)

		newStatus := domain.StatusOpen
		_, err := svc.UpdateTicket(context.Background(), admin, 3, ports.UpdateTicketParams{Status: &newStatus})
		require.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
	})
}

func TestTicketService_DeleteTicket_AdminOnly(t *testing.T) {
	owner := uuid.New()
	ticket := &domain.Ticket{ID: 9, Status: domain.StatusOpen, CreatedBy: owner}

	t.Run("admin deletes", func(t *testing.T) {
		svc, ticketRepo, _, broadcaster := newTicketServiceFixture()
		ticketRepo.On("GetByID", mock.Anything, int64(9)).Return(ticket, nil)
		ticketRepo.On("Delete", mock.Anything, int64(9)).Return(nil)
		broadcaster.On("BroadcastTicketEvent", EventTicketDeleted, ticket).Return()

		admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}
		require.NoError(t, svc.DeleteTicket(context.Background(), admin, 9))
		ticketRepo.AssertExpectations(t)
	})

	t.Run("owner cannot delete", func(t *testing.T) {
		svc, ticketRepo, _, _ := newTicketServiceFixture()

		actor := &domain.User{ID: owner, Role: domain.RoleUser}
		err := svc.DeleteTicket(context.Background(), actor, 9)
		require.ErrorIs(t, err, apperrors.ErrForbidden)
		ticketRepo.AssertNotCalled(t, "Delete")
	})
}

func TestTicketService_ListTickets_PassesScope(t *testing.T) {
	svc, ticketRepo, _, _ := newTicketServiceFixture()
	agent := &domain.User{ID: uuid.New(), Role: domain.RoleAgent}

	wantScope := domain.TicketScope{UserID: agent.ID, IncludeAssigned: true}
	filter := ports.TicketFilter{Limit: 20}

	ticketRepo.On("List", mock.Anything, wantScope, filter).Return([]*domain.Ticket{}, int64(0), nil)

	_, _, err := svc.ListTickets(context.Background(), agent, filter)
	require.NoError(t, err)
	ticketRepo.AssertExpectations(t)
}
