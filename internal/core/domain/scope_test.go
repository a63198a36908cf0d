package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScopeFor(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name string
		role Role
		want TicketScope
	}{
		{name: "admin sees everything", role: RoleAdmin, want: TicketScope{All: true}},
		{name: "agent sees created or assigned", role: RoleAgent, want: TicketScope{UserID: userID, IncludeAssigned: true}},
		{name: "user sees own only", role: RoleUser, want: TicketScope{UserID: userID}},
		{name: "unknown role falls back to own only", role: Role("superuser"), want: TicketScope{UserID: userID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScopeFor(userID, tt.role))
		})
	}
}

func TestTicketScope_Matches(t *testing.T) {
	agent := uuid.New()
	other := uuid.New()

	ownTicket := &Ticket{CreatedBy: agent}
	assignedTicket := &Ticket{CreatedBy: other, AssignedTo: &agent}
	bothTicket := &Ticket{CreatedBy: agent, AssignedTo: &agent}
	unrelated := &Ticket{CreatedBy: other}

	adminScope := ScopeFor(agent, RoleAdmin)
	agentScope := ScopeFor(agent, RoleAgent)
	userScope := ScopeFor(agent, RoleUser)

	assert.True(t, adminScope.Matches(unrelated))

	assert.True(t, agentScope.Matches(ownTicket))
	assert.True(t, agentScope.Matches(assignedTicket))
	assert.True(t, agentScope.Matches(bothTicket))
	assert.False(t, agentScope.Matches(unrelated))

	assert.True(t, userScope.Matches(ownTicket))
	assert.False(t, userScope.Matches(assignedTicket))
	assert.False(t, userScope.Matches(unrelated))
}

func TestReportWindow_Contains(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	week := LookbackWindow(now, 7)
	assert.True(t, week.Contains(now.Add(-6*24*time.Hour)))
	assert.True(t, week.Contains(now))
	assert.False(t, week.Contains(now.Add(-8*24*time.Hour)))

	ranged := RangeWindow(
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 23, 59, 59, 0, time.UTC),
	)
	assert.True(t, ranged.Contains(time.Date(2026, 3, 5, 23, 59, 59, 0, time.UTC)))
	assert.False(t, ranged.Contains(time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)))

	var all ReportWindow
	assert.True(t, all.Contains(now.AddDate(-10, 0, 0)))
}
