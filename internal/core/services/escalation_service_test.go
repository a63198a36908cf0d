package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	"github.com/lorrc/helpdesk-backend/internal/core/mocks"
)

func TestEscalationService_Sweep(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	ticketRepo := mocks.NewMockTicketRepository()
	notifier := mocks.NewMockNotifier()
	broadcaster := mocks.NewMockEventBroadcaster()

	overdueOpen := &domain.Ticket{ID: 1, Status: domain.StatusOpen, Priority: domain.PriorityHigh, CreatedBy: uuid.New()}
	alreadyResolved := &domain.Ticket{ID: 2, Status: domain.StatusResolved, Priority: domain.PriorityHigh, CreatedBy: uuid.New()}

	ticketRepo.On("ListOverdue", mock.Anything, now).Return([]*domain.Ticket{overdueOpen, alreadyResolved}, nil)
	ticketRepo.On("Update", mock.Anything, overdueOpen).Return(nil)
	notifier.On("NotifyTicketEscalated", mock.Anything, overdueOpen).Return(nil)
	broadcaster.On("BroadcastTicketEvent", EventTicketEscalated, overdueOpen).Return()

	svc := NewEscalationService(ticketRepo, notifier, broadcaster, fixedClock{now: now}, time.Minute, slog.Default())

	n, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, domain.StatusEscalated, overdueOpen.Status)
	require.NotNil(t, overdueOpen.EscalationDate)
	assert.Equal(t, now, *overdueOpen.EscalationDate)

	// Resolved tickets pass through untouched.
	assert.Equal(t, domain.StatusResolved, alreadyResolved.Status)

	ticketRepo.AssertExpectations(t)
	ticketRepo.AssertNotCalled(t, "Update", mock.Anything, alreadyResolved)
}
