package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
)

func TestNewTicket(t *testing.T) {
	creator := uuid.New()

	tests := []struct {
		name    string
		params  TicketParams
		wantErr bool
	}{
		{
			name: "valid ticket",
			params: TicketParams{
				Title:       "Printer on fire",
				Description: "Third floor printer is smoking",
				Priority:    PriorityHigh,
				CreatedBy:   creator,
			},
			wantErr: false,
		},
		{
			name: "missing title",
			params: TicketParams{
				Priority:  PriorityLow,
				CreatedBy: creator,
			},
			wantErr: true,
		},
		{
			name: "title too long",
			params: TicketParams{
				Title:     string(make([]byte, MaxTitleLength+1)),
				Priority:  PriorityLow,
				CreatedBy: creator,
			},
			wantErr: true,
		},
		{
			name: "unknown priority",
			params: TicketParams{
				Title:     "VPN down",
				Priority:  TicketPriority("urgent"),
				CreatedBy: creator,
			},
			wantErr: true,
		},
		{
			name: "missing creator",
			params: TicketParams{
				Title:    "VPN down",
				Priority: PriorityMedium,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := NewTicket(tt.params)
			if tt.wantErr {
				require.Error(t, err)
				var vErrs *apperrors.ValidationErrors
				require.ErrorAs(t, err, &vErrs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, StatusOpen, ticket.Status)
			assert.Equal(t, tt.params.Priority, ticket.Priority)
			assert.Nil(t, ticket.ResolvedAt)
			assert.Nil(t, ticket.AssignedTo)
		})
	}
}

func TestTicket_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    TicketStatus
		to      TicketStatus
		wantErr error
	}{
		{name: "open to in_progress", from: StatusOpen, to: StatusInProgress},
		{name: "open to resolved", from: StatusOpen, to: StatusResolved},
		{name: "in_progress to escalated", from: StatusInProgress, to: StatusEscalated},
		{name: "resolved reopened", from: StatusResolved, to: StatusOpen},
		{name: "escalated to resolved", from: StatusEscalated, to: StatusResolved},
		{name: "closed is terminal", from: StatusClosed, to: StatusOpen, wantErr: apperrors.ErrInvalidStatusTransition},
		{name: "resolved cannot escalate", from: StatusResolved, to: StatusEscalated, wantErr: apperrors.ErrInvalidStatusTransition},
		{name: "unknown status rejected", from: StatusOpen, to: TicketStatus("archived"), wantErr: apperrors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &Ticket{Status: tt.from}

			err := ticket.UpdateStatus(tt.to)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, ticket.Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, ticket.Status)
		})
	}
}

func TestTicket_UpdateStatus_StampsResolvedAt(t *testing.T) {
	ticket := &Ticket{Status: StatusInProgress}

	require.NoError(t, ticket.UpdateStatus(StatusResolved))
	require.NotNil(t, ticket.ResolvedAt)
	first := *ticket.ResolvedAt

	// Reopen and resolve again; the original timestamp sticks.
	require.NoError(t, ticket.UpdateStatus(StatusOpen))
	require.NoError(t, ticket.UpdateStatus(StatusResolved))
	assert.Equal(t, first, *ticket.ResolvedAt)
}

func TestTicket_Assign(t *testing.T) {
	agent := uuid.New()

	ticket := &Ticket{Status: StatusOpen}
	require.NoError(t, ticket.Assign(agent))
	require.NotNil(t, ticket.AssignedTo)
	assert.Equal(t, agent, *ticket.AssignedTo)

	closed := &Ticket{Status: StatusClosed}
	err := closed.Assign(agent)
	require.ErrorIs(t, err, apperrors.ErrCannotAssignClosed)
	assert.Nil(t, closed.AssignedTo)
}

func TestTicket_Escalate(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name   string
		status TicketStatus
		want   bool
	}{
		{name: "open escalates", status: StatusOpen, want: true},
		{name: "in_progress escalates", status: StatusInProgress, want: true},
		{name: "resolved is skipped", status: StatusResolved, want: false},
		{name: "closed is skipped", status: StatusClosed, want: false},
		{name: "already escalated", status: StatusEscalated, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &Ticket{Status: tt.status}

			got := ticket.Escalate(now)
			assert.Equal(t, tt.want, got)
			if tt.want {
				assert.Equal(t, StatusEscalated, ticket.Status)
				require.NotNil(t, ticket.EscalationDate)
				assert.Equal(t, now, *ticket.EscalationDate)
			} else {
				assert.Equal(t, tt.status, ticket.Status)
				assert.Nil(t, ticket.EscalationDate)
			}
		})
	}
}

func TestTicketPriority_EscalationTimeframe(t *testing.T) {
	assert.Equal(t, 1*time.Hour, PriorityHigh.EscalationTimeframe())
	assert.Equal(t, 4*time.Hour, PriorityMedium.EscalationTimeframe())
	assert.Equal(t, 24*time.Hour, PriorityLow.EscalationTimeframe())
}

func TestTicket_ResolutionDuration(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	resolved := created.Add(90 * time.Minute)

	ticket := &Ticket{CreatedAt: created, ResolvedAt: &resolved}
	d, ok := ticket.ResolutionDuration()
	require.True(t, ok)
	assert.Equal(t, 90*time.Minute, d)

	// A closed ticket that never passed through resolved has no timestamp.
	closed := &Ticket{Status: StatusClosed, CreatedAt: created}
	_, ok = closed.ResolutionDuration()
	assert.False(t, ok)
}
