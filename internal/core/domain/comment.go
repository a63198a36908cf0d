package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
)

// MaxCommentLength caps comment content.
const MaxCommentLength = 5000

// Comment belongs to exactly one ticket. Deleting the ticket deletes
// its comments; there is no standalone deletion path.
type Comment struct {
	ID        int64
	TicketID  int64
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentParams holds the input for creating a comment.
type CommentParams struct {
	TicketID int64
	UserID   uuid.UUID
	Content  string
}

// Validate checks comment creation parameters.
func (p *CommentParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.Content == "" {
		errs.Add("content", "Content is required")
	} else if len(p.Content) > MaxCommentLength {
		errs.Add("content", "Content exceeds maximum length")
	}

	if p.TicketID <= 0 {
		errs.Add("ticketId", "Ticket ID is required")
	}

	if p.UserID == uuid.Nil {
		errs.Add("userId", "Author ID is required")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// NewComment creates a validated comment.
func NewComment(params CommentParams) (*Comment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Comment{
		TicketID:  params.TicketID,
		UserID:    params.UserID,
		Content:   params.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
