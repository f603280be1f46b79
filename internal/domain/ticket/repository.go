package ticket

import "context"

// TicketRepository defines data access methods for support tickets.
type TicketRepository interface {
	// Create creates a new ticket
	Create(ctx context.Context, t Ticket) (Ticket, error)

	// GetByID retrieves a ticket by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Ticket, error)

	// List retrieves tickets with filters and pagination
	List(ctx context.Context, filter TicketFilter, companyID string) ([]Ticket, int64, error)

	// Update updates status, reply and replied_by
	Update(ctx context.Context, t Ticket) error
}
