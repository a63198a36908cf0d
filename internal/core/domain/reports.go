package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportWindow bounds a report query by created_at. A zero From or To
// leaves that side unbounded; the zero value matches all of history.
type ReportWindow struct {
	From time.Time
	To   time.Time
}

// LookbackWindow returns the window covering the last `days` days ending
// at now. Every lookback report derives its window through this helper
// so all aggregations within one request share identical "now" semantics.
func LookbackWindow(now time.Time, days int) ReportWindow {
	return ReportWindow{From: now.Add(-time.Duration(days) * 24 * time.Hour)}
}

// RangeWindow returns an explicit inclusive window.
func RangeWindow(from, to time.Time) ReportWindow {
	return ReportWindow{From: from, To: to}
}

// Contains reports whether the instant falls inside the window.
func (w ReportWindow) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && t.After(w.To) {
		return false
	}
	return true
}

// WeeklyStats summarizes ticket activity over the trailing week.
type WeeklyStats struct {
	TotalTickets      int64   `json:"total_tickets"`
	OpenTickets       int64   `json:"open_tickets"`
	InProgressTickets int64   `json:"in_progress_tickets"`
	ResolvedTickets   int64   `json:"resolved_tickets"`
	ClosedTickets     int64   `json:"closed_tickets"`
	EscalatedTickets  int64   `json:"escalated_tickets"`
	HighPriority      int64   `json:"high_priority"`
	MediumPriority    int64   `json:"medium_priority"`
	LowPriority       int64   `json:"low_priority"`
	ResolutionRate    float64 `json:"resolution_rate"`
}

// DailyTrend is one calendar day of ticket activity, grouped by the
// day the tickets were created.
type DailyTrend struct {
	Day              time.Time `json:"day"`
	TicketsCreated   int64     `json:"tickets_created"`
	TicketsResolved  int64     `json:"tickets_resolved"`
	TicketsEscalated int64     `json:"tickets_escalated"`
}

// AgentPerformance summarizes one agent's assigned tickets in a window.
type AgentPerformance struct {
	AgentID            uuid.UUID `json:"agent_id"`
	AgentName          string    `json:"agent_name"`
	Email              string    `json:"email"`
	TotalAssigned      int64     `json:"total_assigned"`
	TotalResolved      int64     `json:"total_resolved"`
	TotalEscalated     int64     `json:"total_escalated"`
	ResolutionRate     float64   `json:"resolution_rate"`
	AvgResolutionHours float64   `json:"avg_resolution_hours"`
}

// PriorityStats summarizes tickets of one priority level in a window.
type PriorityStats struct {
	Priority           TicketPriority `json:"priority"`
	TotalTickets       int64          `json:"total_tickets"`
	ResolvedTickets    int64          `json:"resolved_tickets"`
	EscalatedTickets   int64          `json:"escalated_tickets"`
	ResolutionRate     float64        `json:"resolution_rate"`
	AvgResolutionHours float64        `json:"avg_resolution_hours"`
}

// StatusSlice is one status's share of the current snapshot.
type StatusSlice struct {
	Status     TicketStatus `json:"status"`
	Count      int64        `json:"count"`
	Percentage float64      `json:"percentage"`
}

// ResponseTimeMetrics aggregates first-response times. Tickets without
// comments contribute nothing; all fields are 0 when no ticket qualifies.
type ResponseTimeMetrics struct {
	AvgFirstResponseHours float64 `json:"avg_first_response_hours"`
	MinFirstResponseHours float64 `json:"min_first_response_hours"`
	MaxFirstResponseHours float64 `json:"max_first_response_hours"`
}

// DateRange echoes the requested custom range back to the caller.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// RangeStats summarizes tickets created inside a custom date range.
// OpenedTickets mirrors TotalTickets; the field is kept for wire
// compatibility and carries no separate meaning.
type RangeStats struct {
	TotalTickets     int64     `json:"total_tickets"`
	OpenedTickets    int64     `json:"opened_tickets"`
	ResolvedTickets  int64     `json:"resolved_tickets"`
	EscalatedTickets int64     `json:"escalated_tickets"`
	HighPriority     int64     `json:"high_priority"`
	MediumPriority   int64     `json:"medium_priority"`
	LowPriority      int64     `json:"low_priority"`
	DateRange        DateRange `json:"date_range"`
}

// WindowStats is the raw aggregate a store returns for one ticket
// subset: counts plus the mean resolution time of the resolved-or-closed
// tickets that carry a resolution timestamp. AvgResolutionHours is 0
// when no ticket qualifies.
type WindowStats struct {
	Total              int64
	Resolved           int64
	Escalated          int64
	AvgResolutionHours float64
}

// FirstResponseStats is the raw first-response aggregate for tickets
// with at least one comment.
type FirstResponseStats struct {
	SampleCount int64
	AvgHours    float64
	MinHours    float64
	MaxHours    float64
}
