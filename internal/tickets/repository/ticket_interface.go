package repository

import (
	"helpdesk-backend/internal/tickets/domain"
)

// TicketFilter carries the optional ticket search parameters. View narrows
// the search to one of the console views before the field filters apply.
type TicketFilter struct {
	View        string
	Query       string
	Status      *int
	AssignedTo  *int
	SupportType *int
	TicketType  *int
	Priority    *int
	Limit       int
	Offset      int
}

// TicketRepository is the store surface for inbox records and tickets.
type TicketRepository interface {
	// GetKnownMessageIDs returns every stored provider message id as a set.
	GetKnownMessageIDs() (map[string]struct{}, error)
	GetByID(id uint) (*domain.Ticket, error)
	GetByMessageID(messageID string) (*domain.Ticket, error)
	GetByConversationID(conversationID string) (*domain.Ticket, error)
	// FindBySubjectAndSender returns the newest recent ticket from the same
	// sender whose subject contains the given (normalized) subject.
	FindBySubjectAndSender(subject, fromEmail string, days int) (*domain.Ticket, error)
	// FindRecentBySender returns the sender's newest ticket created within
	// the window, or nil.
	FindRecentBySender(fromEmail string, days int) (*domain.Ticket, error)
	Insert(ticket *domain.Ticket) error
	// UpdateByMessageID applies the given column updates and returns the
	// refreshed row, or nil when no such message exists.
	UpdateByMessageID(messageID string, fields map[string]interface{}) (*domain.Ticket, error)
	AppendReply(reply *domain.TicketReply) error
	// TouchLastActivity bumps the ticket's updated_at timestamp.
	TouchLastActivity(ticketID uint) error
	ListInbox(limit, offset int, status *int) ([]*domain.Ticket, error)
	ListTickets(view string, limit, offset int, technicianID *int) ([]*domain.Ticket, error)
	Filter(filter TicketFilter) ([]*domain.Ticket, error)
}
