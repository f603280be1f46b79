package ticket

import "context"

// TicketService defines business logic for support tickets
type TicketService interface {
	// CreateTicket opens a new support ticket
	CreateTicket(ctx context.Context, req CreateTicketRequest) (TicketResponse, error)

	// GetTicket retrieves a single ticket by ID
	GetTicket(ctx context.Context, id string) (TicketResponse, error)

	// ListTickets retrieves tickets with filters and pagination
	ListTickets(ctx context.Context, filter TicketFilter) (ListTicketResponse, error)

	// UpdateStatus moves a ticket through its lifecycle with transition rules
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (TicketResponse, error)
}
