package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lorrc/helpdesk-backend/internal/adapters/primary/validation"
	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

const maxTicketsPerPage = 100

// TicketHandler handles HTTP requests for tickets
type TicketHandler struct {
	ticketService  ports.TicketService
	commentHandler *CommentHandler
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	ticketService ports.TicketService,
	commentHandler *CommentHandler,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *TicketHandler {
	return &TicketHandler{
		ticketService:  ticketService,
		commentHandler: commentHandler,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "ticket"),
	}
}

// Router sets up a new chi Router for all ticket-related routes.
func (h *TicketHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all ticket endpoints.
func (h *TicketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListTickets)
	r.Post("/", h.HandleCreateTicket)

	r.Route("/{ticketID}", func(r chi.Router) {
		r.Get("/", h.HandleGetTicket)
		r.Patch("/", h.HandleUpdateTicket)
		r.Delete("/", h.HandleDeleteTicket)

		if h.commentHandler != nil {
			r.Mount("/comments", h.commentHandler.Router())
		}
	})
}

// --- Request/Response DTOs ---

// CreateTicketRequest defines the expected JSON body for creating a ticket
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Validate validates the create ticket request
func (r *CreateTicketRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("title", r.Title).
		MaxLength("title", r.Title, domain.MaxTitleLength)

	v.MaxLength("description", r.Description, domain.MaxDescriptionLength)

	v.Required("priority", r.Priority).
		OneOf("priority", r.Priority, []string{"low", "medium", "high"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateTicketRequest defines the expected JSON body for a partial
// ticket update. Absent fields are left unchanged.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	AssignedTo  *string `json:"assignedTo"`
}

// Validate validates the update ticket request
func (r *UpdateTicketRequest) Validate() error {
	v := validation.NewValidator()

	if r.Title != nil {
		v.Required("title", *r.Title).
			MaxLength("title", *r.Title, domain.MaxTitleLength)
	}
	if r.Description != nil {
		v.MaxLength("description", *r.Description, domain.MaxDescriptionLength)
	}
	if r.Priority != nil {
		v.OneOf("priority", *r.Priority, []string{"low", "medium", "high"})
	}
	if r.Status != nil {
		v.OneOf("status", *r.Status, []string{"open", "in_progress", "resolved", "closed", "escalated"})
	}
	if r.AssignedTo != nil {
		_, err := uuid.Parse(*r.AssignedTo)
		v.Custom("assignedTo", err == nil, "Must be a valid UUID")
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// TicketDTO defines the JSON response for tickets.
type TicketDTO struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	CreatedBy      string  `json:"createdBy"`
	AssignedTo     *string `json:"assignedTo"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
	ResolvedAt     *string `json:"resolvedAt"`
	EscalationDate *string `json:"escalationDate"`
}

func toTicketDTO(ticket *domain.Ticket) TicketDTO {
	var assignedTo *string
	if ticket.AssignedTo != nil {
		value := ticket.AssignedTo.String()
		assignedTo = &value
	}

	var resolvedAt *string
	if ticket.ResolvedAt != nil {
		value := ticket.ResolvedAt.Format(time.RFC3339)
		resolvedAt = &value
	}

	var escalationDate *string
	if ticket.EscalationDate != nil {
		value := ticket.EscalationDate.Format(time.RFC3339)
		escalationDate = &value
	}

	return TicketDTO{
		ID:             ticket.ID,
		Title:          ticket.Title,
		Description:    ticket.Description,
		Status:         string(ticket.Status),
		Priority:       string(ticket.Priority),
		CreatedBy:      ticket.CreatedBy.String(),
		AssignedTo:     assignedTo,
		CreatedAt:      ticket.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      ticket.UpdatedAt.Format(time.RFC3339),
		ResolvedAt:     resolvedAt,
		EscalationDate: escalationDate,
	}
}

func toTicketDTOs(tickets []*domain.Ticket) []TicketDTO {
	response := make([]TicketDTO, 0, len(tickets))
	for _, ticket := range tickets {
		response = append(response, toTicketDTO(ticket))
	}
	return response
}

// --- Handlers ---

// HandleListTickets handles GET /tickets
func (h *TicketHandler) HandleListTickets(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	pagination := validation.ParsePagination(r, maxTicketsPerPage)

	v := validation.NewValidator()
	filter := ports.TicketFilter{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	}

	if status := validation.ParseStringQueryParam(r, "status"); status != nil {
		parsed := domain.TicketStatus(*status)
		v.Custom("status", parsed.IsValid(), "Must be a valid ticket status")
		filter.Status = &parsed
	}
	if priority := validation.ParseStringQueryParam(r, "priority"); priority != nil {
		parsed := domain.TicketPriority(*priority)
		v.Custom("priority", parsed.IsValid(), "Must be a valid ticket priority")
		filter.Priority = &parsed
	}

	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	tickets, total, err := h.ticketService.ListTickets(r.Context(), actorFromClaims(claims), filter)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WritePaginated(w, toTicketDTOs(tickets), pagination.Limit, pagination.Offset, total)
}

// HandleCreateTicket handles POST /tickets
func (h *TicketHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.CreateTicket(r.Context(), actorFromClaims(claims), ports.CreateTicketParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TicketPriority(req.Priority),
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket created",
		"ticket_id", ticket.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toTicketDTO(ticket))
}

// HandleGetTicket handles GET /tickets/{ticketID}
func (h *TicketHandler) HandleGetTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	ticketID, err := parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ticket, err := h.ticketService.GetTicket(r.Context(), actorFromClaims(claims), ticketID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleUpdateTicket handles PATCH /tickets/{ticketID}
func (h *TicketHandler) HandleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	ticketID, err := parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateTicketRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.UpdateTicketParams{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Priority != nil {
		priority := domain.TicketPriority(*req.Priority)
		params.Priority = &priority
	}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		params.Status = &status
	}
	if req.AssignedTo != nil {
		assigneeID, parseErr := uuid.Parse(*req.AssignedTo)
		if parseErr != nil {
			h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(parseErr, "Invalid assignee ID"))
			return
		}
		params.AssignedTo = &assigneeID
	}

	ticket, err := h.ticketService.UpdateTicket(r.Context(), actorFromClaims(claims), ticketID, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket updated",
		"ticket_id", ticket.ID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toTicketDTO(ticket))
}

// HandleDeleteTicket handles DELETE /tickets/{ticketID}
func (h *TicketHandler) HandleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	ticketID, err := parseTicketID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.ticketService.DeleteTicket(r.Context(), actorFromClaims(claims), ticketID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("ticket deleted",
		"ticket_id", ticketID,
		"user_id", claims.UserID,
	)

	WriteNoContent(w)
}

// parseTicketID extracts and validates the ticket ID path parameter.
func parseTicketID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "ticketID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError(err, "Invalid ticket ID")
	}
	return id, nil
}
