package ticket

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/employee"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/ticket"
)

type TicketServiceImpl struct {
	ticket.TicketRepository
	employee.EmployeeRepository
}

// CreateTicket implements ticket.TicketService.
func (s *TicketServiceImpl) CreateTicket(ctx context.Context, req ticket.CreateTicketRequest) (ticket.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	created, err := s.TicketRepository.Create(ctx, ticket.Ticket{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Subject:    req.Subject,
		Message:    req.Message,
		Status:     ticket.StatusOpen,
		Priority:   ticket.Priority(strings.ToLower(req.Priority)),
	})
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	created.EmployeeName = &emp.FullName
	return toResponse(created), nil
}

// GetTicket implements ticket.TicketService.
func (s *TicketServiceImpl) GetTicket(ctx context.Context, id string) (ticket.TicketResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	t, err := s.TicketRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	return toResponse(t), nil
}

// ListTickets implements ticket.TicketService.
func (s *TicketServiceImpl) ListTickets(ctx context.Context, filter ticket.TicketFilter) (ticket.ListTicketResponse, error) {
	if err := filter.Validate(); err != nil {
		return ticket.ListTicketResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return ticket.ListTicketResponse{}, err
	}

	tickets, total, err := s.TicketRepository.List(ctx, filter, companyID)
	if err != nil {
		return ticket.ListTicketResponse{}, err
	}

	resp := ticket.ListTicketResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Tickets:    make([]ticket.TicketResponse, 0, len(tickets)),
	}

	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, toResponse(t))
	}

	start := (filter.Page-1)*filter.Limit + 1
	end := start + len(tickets) - 1
	if total == 0 {
		start = 0
		end = 0
	}
	resp.Showing = fmt.Sprintf("Showing %d-%d of %d tickets", start, end, total)

	return resp, nil
}

// UpdateStatus implements ticket.TicketService.
func (s *TicketServiceImpl) UpdateStatus(ctx context.Context, req ticket.UpdateStatusRequest) (ticket.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	t, err := s.TicketRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	next := ticket.Status(strings.ToLower(req.Status))
	if t.Status == ticket.StatusClosed {
		return ticket.TicketResponse{}, ticket.ErrTicketAlreadyClosed
	}
	if !ticket.CanTransition(t.Status, next) {
		return ticket.TicketResponse{}, ticket.ErrInvalidTransition
	}

	t.Status = next
	if req.Reply != nil {
		t.Reply = req.Reply
		t.RepliedBy = &userID
	}

	if err := s.TicketRepository.Update(ctx, t); err != nil {
		return ticket.TicketResponse{}, err
	}

	return toResponse(t), nil
}

func toResponse(t ticket.Ticket) ticket.TicketResponse {
	resp := ticket.TicketResponse{
		ID:         t.ID,
		EmployeeID: t.EmployeeID,
		Subject:    t.Subject,
		Message:    t.Message,
		Status:     string(t.Status),
		Priority:   string(t.Priority),
		Reply:      t.Reply,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  t.UpdatedAt.Format(time.RFC3339),
	}
	if t.EmployeeName != nil {
		resp.EmployeeName = *t.EmployeeName
	}
	return resp
}

func claimsFromContext(ctx context.Context) (companyID string, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return companyID, userID, nil
}

func NewTicketService(ticketRepo ticket.TicketRepository, employeeRepo employee.EmployeeRepository) ticket.TicketService {
	return &TicketServiceImpl{
		TicketRepository:   ticketRepo,
		EmployeeRepository: employeeRepo,
	}
}
