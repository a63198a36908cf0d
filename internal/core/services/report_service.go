package services

import (
	"context"
	"sort"
	"time"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

const (
	weeklyWindowDays  = 7
	monthlyWindowDays = 30
	reportDateLayout  = "2006-01-02"
	endOfDayHour      = 23
	endOfDayMinSec    = 59
)

// ReportService computes management reports from live ticket data.
// Every report resolves the caller's visibility scope exactly once and
// threads it through each query it runs, so a single response never
// mixes visibility rules.
type ReportService struct {
	reportRepo ports.ReportRepository
	userRepo   ports.UserRepository
	clock      ports.Clock
}

var _ ports.ReportService = (*ReportService)(nil)

// NewReportService creates a new report service.
func NewReportService(reportRepo ports.ReportRepository, userRepo ports.UserRepository, clock ports.Clock) ports.ReportService {
	if clock == nil {
		clock = ports.RealClock{}
	}
	return &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		clock:      clock,
	}
}

// requireAdminScope gates report access and resolves the scope the
// report will query under.
func (s *ReportService) requireAdminScope(actor *domain.User) (domain.TicketScope, error) {
	if actor == nil {
		return domain.TicketScope{}, apperrors.ErrUnauthorized
	}
	if actor.Role != domain.RoleAdmin {
		return domain.TicketScope{}, apperrors.ErrForbidden
	}
	return domain.ScopeFor(actor.ID, actor.Role), nil
}

// WeeklySummary aggregates the trailing seven days of ticket activity.
func (s *ReportService) WeeklySummary(ctx context.Context, actor *domain.User) (*domain.WeeklyStats, error) {
	scope, err := s.requireAdminScope(actor)
	if err != nil {
		return nil, err
	}

	window := domain.LookbackWindow(s.clock.Now(), weeklyWindowDays)

	byStatus, err := s.reportRepo.CountByStatus(ctx, scope, window)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.reportRepo.CountByPriority(ctx, scope, window)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	stats := &domain.WeeklyStats{
		TotalTickets:      total,
		OpenTickets:       byStatus[domain.StatusOpen],
		InProgressTickets: byStatus[domain.StatusInProgress],
		ResolvedTickets:   byStatus[domain.StatusResolved],
		ClosedTickets:     byStatus[domain.StatusClosed],
		EscalatedTickets:  byStatus[domain.StatusEscalated],
		HighPriority:      byPriority[domain.PriorityHigh],
		MediumPriority:    byPriority[domain.PriorityMedium],
		LowPriority:       byPriority[domain.PriorityLow],
	}
	stats.ResolutionRate = resolutionRate(stats.ResolvedTickets+stats.ClosedTickets, total)
	return stats, nil
}

// DailyTrends groups the trailing thirty days of tickets by creation
// day, oldest day first. Days without tickets are absent.
func (s *ReportService) DailyTrends(ctx context.Context, actor *domain.User) ([]domain.DailyTrend, error) {
	scope, err := s.requireAdminScope(actor)
	if err != nil {
		return nil, err
	}

	window := domain.LookbackWindow(s.clock.Now(), monthlyWindowDays)
	return s.reportRepo.DailyTrends(ctx, scope, window)
}

// AgentPerformance reports per-agent assignment outcomes over the
// trailing thirty days. Agents with no assigned tickets still appear
// with zeroed metrics.
func (s *ReportService) AgentPerformance(ctx context.Context, actor *domain.User) ([]domain.AgentPerformance, error) {
	if _, err := s.requireAdminScope(actor); err != nil {
		return nil, err
	}

	agents, err := s.userRepo.ListByRole(ctx, domain.RoleAgent)
	if err != nil {
		return nil, err
	}

	window := domain.LookbackWindow(s.clock.Now(), monthlyWindowDays)

	results := make([]domain.AgentPerformance, 0, len(agents))
	for _, agent := range agents {
		stats, err := s.reportRepo.AgentWindowStats(ctx, agent.ID, window)
		if err != nil {
			return nil, err
		}

		results = append(results, domain.AgentPerformance{
			AgentID:            agent.ID,
			AgentName:          agent.FullName,
			Email:              agent.Email,
			TotalAssigned:      stats.Total,
			TotalResolved:      stats.Resolved,
			TotalEscalated:     stats.Escalated,
			ResolutionRate:     resolutionRate(stats.Resolved, stats.Total),
			AvgResolutionHours: round2(stats.AvgResolutionHours),
		})
	}
	return results, nil
}

// PriorityAnalysis reports outcomes per priority level over the
// trailing thirty days, in fixed high, medium, low order. Every level
// appears even when it has no tickets.
func (s *ReportService) PriorityAnalysis(ctx context.Context, actor *domain.User) ([]domain.PriorityStats, error) {
	scope, err := s.requireAdminScope(actor)
	if err != nil {
		return nil, err
	}

	window := domain.LookbackWindow(s.clock.Now(), monthlyWindowDays)

	results := make([]domain.PriorityStats, 0, len(domain.PriorityOrder))
	for _, priority := range domain.PriorityOrder {
		stats, err := s.reportRepo.PriorityWindowStats(ctx, scope, window, priority)
		if err != nil {
			return nil, err
		}

		results = append(results, domain.PriorityStats{
			Priority:           priority,
			TotalTickets:       stats.Total,
			ResolvedTickets:    stats.Resolved,
			EscalatedTickets:   stats.Escalated,
			ResolutionRate:     resolutionRate(stats.Resolved, stats.Total),
			AvgResolutionHours: round2(stats.AvgResolutionHours),
		})
	}
	return results, nil
}

// StatusDistribution snapshots the current status breakdown across all
// of history, largest count first. Statuses with no tickets are absent.
func (s *ReportService) StatusDistribution(ctx context.Context, actor *domain.User) ([]domain.StatusSlice, error) {
	scope, err := s.requireAdminScope(actor)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.reportRepo.CountByStatus(ctx, scope, domain.ReportWindow{})
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	slices := make([]domain.StatusSlice, 0, len(byStatus))
	for status, count := range byStatus {
		if count == 0 {
			continue
		}
		slices = append(slices, domain.StatusSlice{
			Status:     status,
			Count:      count,
			Percentage: resolutionRate(count, total),
		})
	}

	// Count descending, status name as a deterministic tie-break.
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Status < slices[j].Status
	})
	return slices, nil
}

// ResponseTimes aggregates the gap between ticket creation and the
// first comment, over the trailing thirty days. Tickets without
// comments are excluded; all metrics are 0 when nothing qualifies.
func (s *ReportService) ResponseTimes(ctx context.Context, actor *domain.User) (*domain.ResponseTimeMetrics, error) {
	scope, err := s.requireAdminScope(actor)
	if err != nil {
		return nil, err
	}

	window := domain.LookbackWindow(s.clock.Now(), monthlyWindowDays)

	stats, err := s.reportRepo.FirstResponseStats(ctx, scope, window)
	if err != nil {
		return nil, err
	}

	metrics := &domain.ResponseTimeMetrics{}
	if stats.SampleCount > 0 {
		metrics.AvgFirstResponseHours = round2(stats.AvgHours)
		metrics.MinFirstResponseHours = round2(stats.MinHours)
		metrics.MaxFirstResponseHours = round2(stats.MaxHours)
	}
	return metrics, nil
}

// CustomTimeRange aggregates tickets created inside an explicit date
// range. The end date is inclusive through its final second, UTC.
func (s *ReportService) CustomTimeRange(ctx context.Context, actor *domain.User, params ports.CustomRangeParams) (*domain.RangeStats, error) {
	scope, err := s.requireAdminScope(actor)
	if err != nil {
		return nil, err
	}

	if params.StartDate == "" || params.EndDate == "" {
		return nil, apperrors.ErrDateRangeRequired
	}

	start, err := time.ParseInLocation(reportDateLayout, params.StartDate, time.UTC)
	if err != nil {
		return nil, apperrors.ErrInvalidDateFormat
	}
	endDay, err := time.ParseInLocation(reportDateLayout, params.EndDate, time.UTC)
	if err != nil {
		return nil, apperrors.ErrInvalidDateFormat
	}
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(),
		endOfDayHour, endOfDayMinSec, endOfDayMinSec, 0, time.UTC)

	window := domain.RangeWindow(start, end)

	windowStats, err := s.reportRepo.WindowStats(ctx, scope, window)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.reportRepo.CountByPriority(ctx, scope, window)
	if err != nil {
		return nil, err
	}

	return &domain.RangeStats{
		TotalTickets:     windowStats.Total,
		OpenedTickets:    windowStats.Total,
		ResolvedTickets:  windowStats.Resolved,
		EscalatedTickets: windowStats.Escalated,
		HighPriority:     byPriority[domain.PriorityHigh],
		MediumPriority:   byPriority[domain.PriorityMedium],
		LowPriority:      byPriority[domain.PriorityLow],
		DateRange: domain.DateRange{
			StartDate: params.StartDate,
			EndDate:   params.EndDate,
		},
	}, nil
}
