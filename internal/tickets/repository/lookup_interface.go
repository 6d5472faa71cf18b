package repository

import "helpdesk-backend/internal/tickets/domain"

// LookupRepository serves the static dropdown tables.
type LookupRepository interface {
	Statuses() ([]domain.TicketStatus, error)
	Technicians() ([]domain.Technician, error)
	Priorities() ([]domain.Priority, error)
	SupportTypes() ([]domain.SupportType, error)
	TicketTypes() ([]domain.TicketType, error)
}
