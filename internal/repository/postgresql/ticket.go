package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/ticket"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/database"
)

type ticketRepository struct {
	db *database.DB
}

// Create implements ticket.TicketRepository.
func (r *ticketRepository) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tickets (company_id, employee_id, subject, message, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.CompanyID, t.EmployeeID, t.Subject, t.Message, t.Status, t.Priority,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	return t, nil
}

// GetByID implements ticket.TicketRepository.
func (r *ticketRepository) GetByID(ctx context.Context, id string, companyID string) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.company_id, t.employee_id, t.subject, t.message, t.status,
			   t.priority, t.reply, t.replied_by, t.created_at, t.updated_at, e.full_name
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1 AND t.company_id = $2
	`

	var t ticket.Ticket
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&t.ID, &t.CompanyID, &t.EmployeeID, &t.Subject, &t.Message, &t.Status,
		&t.Priority, &t.Reply, &t.RepliedBy, &t.CreatedAt, &t.UpdatedAt, &t.EmployeeName,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket: %w", err)
	}

	return t, nil
}

// List implements ticket.TicketRepository.
func (r *ticketRepository) List(ctx context.Context, filter ticket.TicketFilter, companyID string) ([]ticket.Ticket, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause dynamically
	whereClauses := []string{"t.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("t.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("t.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Priority != nil && *filter.Priority != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("t.priority = $%d", argIdx))
		args = append(args, *filter.Priority)
		argIdx++
	}

	whereSQL := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tickets t WHERE %s", whereSQL)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(`
		SELECT t.id, t.company_id, t.employee_id, t.subject, t.message, t.status,
			   t.priority, t.reply, t.replied_by, t.created_at, t.updated_at, e.full_name
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id
		WHERE %s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereSQL, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		var t ticket.Ticket
		err := rows.Scan(
			&t.ID, &t.CompanyID, &t.EmployeeID, &t.Subject, &t.Message, &t.Status,
			&t.Priority, &t.Reply, &t.RepliedBy, &t.CreatedAt, &t.UpdatedAt, &t.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, total, nil
}

// Update implements ticket.TicketRepository.
func (r *ticketRepository) Update(ctx context.Context, t ticket.Ticket) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tickets
		SET status = $1, reply = $2, replied_by = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, t.Status, t.Reply, t.RepliedBy, t.ID, t.CompanyID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ticket.ErrTicketNotFound
		}
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	return nil
}

func NewTicketRepository(db *database.DB) ticket.TicketRepository {
	return &ticketRepository{db: db}
}
