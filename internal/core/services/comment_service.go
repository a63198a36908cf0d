package services

import (
	"context"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// CommentService implements business logic for ticket comments.
// Visibility follows the parent ticket: whoever may see the ticket may
// read and write its comments.
type CommentService struct {
	commentRepo ports.CommentRepository
	ticketRepo  ports.TicketRepository
}

var _ ports.CommentService = (*CommentService)(nil)

// NewCommentService creates a new comment service
func NewCommentService(commentRepo ports.CommentRepository, ticketRepo ports.TicketRepository) ports.CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
	}
}

// AddComment appends a comment to a ticket the actor can see.
func (s *CommentService) AddComment(ctx context.Context, actor *domain.User, ticketID int64, content string) (*domain.Comment, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	scope := domain.ScopeFor(actor.ID, actor.Role)
	if !scope.Matches(ticket) {
		return nil, apperrors.ErrForbidden
	}

	comment, err := domain.NewComment(domain.CommentParams{
		TicketID: ticketID,
		UserID:   actor.ID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a ticket's comments oldest first.
func (s *CommentService) ListComments(ctx context.Context, actor *domain.User, ticketID int64) ([]*domain.Comment, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	scope := domain.ScopeFor(actor.ID, actor.Role)
	if !scope.Matches(ticket) {
		return nil, apperrors.ErrForbidden
	}

	return s.commentRepo.ListByTicket(ctx, ticketID)
}
