package dto

import "helpdesk-backend/internal/tickets/domain"

// Lookups bundles the dropdown tables for the console in one payload.
type Lookups struct {
	Statuses     []domain.TicketStatus `json:"statuses"`
	Technicians  []domain.Technician   `json:"technicians"`
	Priorities   []domain.Priority     `json:"priorities"`
	SupportTypes []domain.SupportType  `json:"support_types"`
	TicketTypes  []domain.TicketType   `json:"ticket_types"`
}
