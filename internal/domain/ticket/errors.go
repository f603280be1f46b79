package ticket

import "errors"

var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrInvalidTransition   = errors.New("ticket status transition not allowed")
	ErrTicketAlreadyClosed = errors.New("ticket is already closed")
)
