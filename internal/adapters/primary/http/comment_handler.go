package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/helpdesk-backend/internal/adapters/primary/validation"
	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// CommentHandler handles HTTP requests for ticket comments
type CommentHandler struct {
	commentService ports.CommentService
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService ports.CommentService, errorHandler *ErrorHandler, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "comment"),
	}
}

// Router sets up routes for comments nested under a ticket.
func (h *CommentHandler) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.HandleListComments)
	r.Post("/", h.HandleAddComment)
	return r
}

// CreateCommentRequest defines the expected JSON body for adding a comment
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Validate validates the create comment request
func (r *CreateCommentRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("content", r.Content).
		MaxLength("content", r.Content, domain.MaxCommentLength)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// CommentDTO defines the JSON response for comments.
type CommentDTO struct {
	ID        int64  `json:"id"`
	TicketID  int64  `json:"ticketId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

func toCommentDTO(comment *domain.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		UserID:    comment.UserID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	}
}

// HandleListComments handles GET /tickets/{ticketID}/comments
func (h *CommentHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	ticketID, err := parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	comments, err := h.commentService.ListComments(r.Context(), actorFromClaims(claims), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	dtos := make([]CommentDTO, 0, len(comments))
	for _, comment := range comments {
		dtos = append(dtos, toCommentDTO(comment))
	}

	WriteList(w, dtos)
}

// HandleAddComment handles POST /tickets/{ticketID}/comments
func (h *CommentHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	ticketID, err := parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[CreateCommentRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	comment, err := h.commentService.AddComment(r.Context(), actorFromClaims(claims), ticketID, req.Content)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("comment added",
		"ticket_id", ticketID,
		"comment_id", comment.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toCommentDTO(comment))
}
