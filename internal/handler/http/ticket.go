package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/ticket"
	"github.com/staffdeck/staffdeck-backend-go/internal/handler/http/response"
)

type TicketHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type ticketHandlerImpl struct {
	ticketService ticket.TicketService
}

func NewTicketHandler(ticketService ticket.TicketService) TicketHandler {
	return &ticketHandlerImpl{
		ticketService: ticketService,
	}
}

// Create implements TicketHandler.
func (h *ticketHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req ticket.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.ticketService.CreateTicket(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Ticket created", result)
}

// Get implements TicketHandler.
func (h *ticketHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.ticketService.GetTicket(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements TicketHandler.
func (h *ticketHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter ticket.TicketFilter

	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("priority"); v != "" {
		filter.Priority = &v
	}
	if v := r.URL.Query().Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	result, err := h.ticketService.ListTickets(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Tickets, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// UpdateStatus implements TicketHandler.
func (h *ticketHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req ticket.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.ticketService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket updated", result)
}
