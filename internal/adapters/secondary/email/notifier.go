package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// MockSMTPNotifier is a secondary adapter that mocks sending emails.
// It implements the ports.Notifier interface.
type MockSMTPNotifier struct {
	userRepo ports.UserRepository
	logger   *slog.Logger
}

// NewMockSMTPNotifier creates a new mock notifier.
// It requires a UserRepository to fetch recipient details.
func NewMockSMTPNotifier(userRepo ports.UserRepository, logger *slog.Logger) ports.Notifier {
	return &MockSMTPNotifier{
		userRepo: userRepo,
		logger:   logger.With("component", "email_notifier"),
	}
}

var _ ports.Notifier = (*MockSMTPNotifier)(nil)

func (n *MockSMTPNotifier) NotifyTicketCreated(ctx context.Context, ticket *domain.Ticket) error {
	subject := fmt.Sprintf("Ticket received: #%d", ticket.ID)
	return n.send(ctx, ticket.CreatedBy, ticket, subject)
}

func (n *MockSMTPNotifier) NotifyTicketUpdated(ctx context.Context, ticket *domain.Ticket) error {
	subject := fmt.Sprintf("Your ticket was updated: #%d (%s)", ticket.ID, ticket.Status)
	return n.send(ctx, ticket.CreatedBy, ticket, subject)
}

func (n *MockSMTPNotifier) NotifyTicketEscalated(ctx context.Context, ticket *domain.Ticket) error {
	subject := fmt.Sprintf("Ticket escalated: #%d (%s priority)", ticket.ID, ticket.Priority)

	// The assignee hears about escalations too, when there is one.
	if ticket.AssignedTo != nil {
		_ = n.send(ctx, *ticket.AssignedTo, ticket, subject)
	}
	return n.send(ctx, ticket.CreatedBy, ticket, subject)
}

// send logs the mock email instead of talking to an SMTP server.
func (n *MockSMTPNotifier) send(ctx context.Context, recipientID uuid.UUID, ticket *domain.Ticket, subject string) error {
	user, err := n.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		n.logger.Error("failed to get user for notification",
			"user_id", recipientID,
			"ticket_id", ticket.ID,
			"error", err,
		)
		return err
	}

	n.logger.Info("mock email sent",
		"to_name", user.FullName,
		"to_email", user.Email,
		"subject", subject,
		"ticket_id", ticket.ID,
	)
	return nil
}
