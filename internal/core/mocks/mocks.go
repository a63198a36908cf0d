package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// MockTicketRepository is a mock implementation of ports.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{}
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketRepository) List(ctx context.Context, scope domain.TicketScope, filter ports.TicketFilter) ([]*domain.Ticket, int64, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Ticket), args.Get(1).(int64), args.Error(2)
}

func (m *MockTicketRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Ticket, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

// MockCommentRepository is a mock implementation of ports.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

// MockReportRepository is a mock implementation of ports.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{}
}

func (m *MockReportRepository) WindowStats(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (domain.WindowStats, error) {
	args := m.Called(ctx, scope, window)
	return args.Get(0).(domain.WindowStats), args.Error(1)
}

func (m *MockReportRepository) CountByStatus(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (map[domain.TicketStatus]int64, error) {
	args := m.Called(ctx, scope, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TicketStatus]int64), args.Error(1)
}

func (m *MockReportRepository) CountByPriority(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (map[domain.TicketPriority]int64, error) {
	args := m.Called(ctx, scope, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TicketPriority]int64), args.Error(1)
}

func (m *MockReportRepository) DailyTrends(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) ([]domain.DailyTrend, error) {
	args := m.Called(ctx, scope, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyTrend), args.Error(1)
}

func (m *MockReportRepository) AgentWindowStats(ctx context.Context, agentID uuid.UUID, window domain.ReportWindow) (domain.WindowStats, error) {
	args := m.Called(ctx, agentID, window)
	return args.Get(0).(domain.WindowStats), args.Error(1)
}

func (m *MockReportRepository) PriorityWindowStats(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow, priority domain.TicketPriority) (domain.WindowStats, error) {
	args := m.Called(ctx, scope, window, priority)
	return args.Get(0).(domain.WindowStats), args.Error(1)
}

func (m *MockReportRepository) FirstResponseStats(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (domain.FirstResponseStats, error) {
	args := m.Called(ctx, scope, window)
	return args.Get(0).(domain.FirstResponseStats), args.Error(1)
}

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyTicketCreated(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockNotifier) NotifyTicketUpdated(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockNotifier) NotifyTicketEscalated(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) BroadcastTicketEvent(eventType string, ticket *domain.Ticket) {
	m.Called(eventType, ticket)
}
