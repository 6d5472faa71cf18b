package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"helpdesk-backend/internal/tickets/domain"
	"helpdesk-backend/internal/tickets/dto"
	"helpdesk-backend/internal/tickets/repository"
)

// TicketUsecase covers the console operations on stored records: listing,
// triage, field updates, lookups and provider round-trips for replies,
// confirmations, threads and attachments.
type TicketUsecase interface {
	ListInbox(limit, offset int, status *int) ([]*domain.Ticket, error)
	GetTicket(id uint) (*domain.Ticket, error)
	Discard(messageID string) (*domain.Ticket, error)
	ConvertToTicket(messageID string) (*domain.Ticket, error)
	UpdateTicketField(id uint, req dto.UpdateTicketFieldRequest) (*domain.Ticket, error)
	ListTickets(view string, limit, offset int, technicianID *int) ([]*domain.Ticket, error)
	Filter(req dto.TicketFilterRequest) ([]*domain.Ticket, error)
	Lookups() (*dto.Lookups, error)
	Reply(ctx context.Context, ticketID uint, comment string) error
	SendConfirmation(ctx context.Context, ticketID uint) error
	ConversationThread(ctx context.Context, ticketID uint) ([]domain.MailMessage, error)
	Attachments(ctx context.Context, ticketID uint) ([]domain.Attachment, error)
}

// updatableFields is the only set of columns the update endpoint may touch.
var updatableFields = map[string]struct{}{
	"assigned_to":  {},
	"priority":     {},
	"support_type": {},
	"ticket_type":  {},
	"status":       {},
	"due_date":     {},
}

type ticketUsecase struct {
	tickets      repository.TicketRepository
	lookups      repository.LookupRepository
	tokenManager *TokenManager
	provider     domain.MailProvider
	mailboxUser  string
}

func NewTicketUsecase(
	tickets repository.TicketRepository,
	lookups repository.LookupRepository,
	tokenManager *TokenManager,
	provider domain.MailProvider,
	mailboxUser string,
) TicketUsecase {
	return &ticketUsecase{
		tickets:      tickets,
		lookups:      lookups,
		tokenManager: tokenManager,
		provider:     provider,
		mailboxUser:  mailboxUser,
	}
}

func (u *ticketUsecase) ListInbox(limit, offset int, status *int) ([]*domain.Ticket, error) {
	if limit <= 0 {
		limit = 50
	}
	return u.tickets.ListInbox(limit, offset, status)
}

func (u *ticketUsecase) GetTicket(id uint) (*domain.Ticket, error) {
	return u.tickets.GetByID(id)
}

func (u *ticketUsecase) Discard(messageID string) (*domain.Ticket, error) {
	return u.tickets.UpdateByMessageID(messageID, map[string]interface{}{
		"status":     domain.StatusDiscarded,
		"updated_at": time.Now(),
	})
}

func (u *ticketUsecase) ConvertToTicket(messageID string) (*domain.Ticket, error) {
	return u.tickets.UpdateByMessageID(messageID, map[string]interface{}{
		"is_ticket":  1,
		"status":     domain.StatusOpen,
		"updated_at": time.Now(),
	})
}

func (u *ticketUsecase) UpdateTicketField(id uint, req dto.UpdateTicketFieldRequest) (*domain.Ticket, error) {
	if _, ok := updatableFields[req.Field]; !ok {
		return nil, &dto.ValidationError{Field: req.Field, Reason: "field is not updatable"}
	}
	ticket, err := u.tickets.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, nil
	}

	value, err := coerceFieldValue(req.Field, req.Value)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		req.Field:    value,
		"updated_at": time.Now(),
	}
	if req.Field == "status" {
		status, ok := value.(int)
		if !ok {
			return nil, &dto.ValidationError{Field: "status", Reason: "expected an integer"}
		}
		if status < domain.StatusDiscarded || status > domain.StatusCompleted {
			return nil, &dto.ValidationError{Field: "status", Reason: "unknown status"}
		}
		if status == domain.StatusCompleted {
			fields["closed_at"] = time.Now()
		}
	}
	return u.tickets.UpdateByMessageID(ticket.MessageID, fields)
}

func coerceFieldValue(field string, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if field == "due_date" {
		s, ok := value.(string)
		if !ok {
			return nil, &dto.ValidationError{Field: field, Reason: "expected an RFC 3339 timestamp"}
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, &dto.ValidationError{Field: field, Reason: "expected an RFC 3339 timestamp"}
		}
		return t, nil
	}
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return nil, &dto.ValidationError{Field: field, Reason: "expected an integer"}
	}
}

func (u *ticketUsecase) ListTickets(view string, limit, offset int, technicianID *int) ([]*domain.Ticket, error) {
	if limit <= 0 {
		limit = 50
	}
	if view == "technician" && technicianID == nil {
		return nil, &dto.ValidationError{Field: "technician_id", Reason: "required for the technician view"}
	}
	return u.tickets.ListTickets(view, limit, offset, technicianID)
}

func (u *ticketUsecase) Filter(req dto.TicketFilterRequest) ([]*domain.Ticket, error) {
	return u.tickets.Filter(repository.TicketFilter{
		View:        req.View,
		Query:       req.Query,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		SupportType: req.SupportType,
		TicketType:  req.TicketType,
		Priority:    req.Priority,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
}

func (u *ticketUsecase) Lookups() (*dto.Lookups, error) {
	statuses, err := u.lookups.Statuses()
	if err != nil {
		return nil, err
	}
	technicians, err := u.lookups.Technicians()
	if err != nil {
		return nil, err
	}
	priorities, err := u.lookups.Priorities()
	if err != nil {
		return nil, err
	}
	supportTypes, err := u.lookups.SupportTypes()
	if err != nil {
		return nil, err
	}
	ticketTypes, err := u.lookups.TicketTypes()
	if err != nil {
		return nil, err
	}
	return &dto.Lookups{
		Statuses:     statuses,
		Technicians:  technicians,
		Priorities:   priorities,
		SupportTypes: supportTypes,
		TicketTypes:  ticketTypes,
	}, nil
}

// Reply sends an agent comment back into the original thread and records it
// as outbound history on the ticket.
func (u *ticketUsecase) Reply(ctx context.Context, ticketID uint, comment string) error {
	ticket, err := u.tickets.GetByID(ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return &dto.ValidationError{Field: "ticket_id", Reason: "ticket not found"}
	}

	token, err := u.tokenManager.EnsureValidToken(ctx)
	if err != nil {
		return err
	}
	if err := u.provider.Reply(ctx, token, ticket.MessageID, comment); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	reply := &domain.TicketReply{
		ID:           uuid.New().String(),
		TicketID:     ticket.ID,
		FromEmail:    u.mailboxUser,
		Subject:      ticket.Subject,
		BodyContent:  comment,
		ReceivedDate: time.Now(),
		Direction:    domain.ReplyDirectionOutbound,
		CreatedAt:    time.Now(),
	}
	if err := u.tickets.AppendReply(reply); err != nil {
		return err
	}
	return u.tickets.TouchLastActivity(ticket.ID)
}

// SendConfirmation mails the requester that their message was registered.
func (u *ticketUsecase) SendConfirmation(ctx context.Context, ticketID uint) error {
	ticket, err := u.tickets.GetByID(ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return &dto.ValidationError{Field: "ticket_id", Reason: "ticket not found"}
	}

	token, err := u.tokenManager.EnsureValidToken(ctx)
	if err != nil {
		return err
	}
	mail := domain.OutboundMail{
		ToEmail: ticket.FromEmail,
		ToName:  ticket.FromName,
		Subject: fmt.Sprintf("Ticket #%d received: %s", ticket.ID, ticket.Subject),
		HTMLBody: fmt.Sprintf(
			"<p>Hello %s,</p><p>We received your request <b>%s</b> and registered it as ticket #%d. Our team will get back to you shortly.</p>",
			ticket.FromName, ticket.Subject, ticket.ID,
		),
	}
	return u.provider.SendMail(ctx, token, mail)
}

func (u *ticketUsecase) ConversationThread(ctx context.Context, ticketID uint) ([]domain.MailMessage, error) {
	ticket, err := u.tickets.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, &dto.ValidationError{Field: "ticket_id", Reason: "ticket not found"}
	}

	token, err := u.tokenManager.EnsureValidToken(ctx)
	if err != nil {
		return nil, err
	}

	conversationID := ticket.ConversationID
	if conversationID == "" {
		// Older rows may predate conversation tracking; ask the provider.
		msg, err := u.provider.GetMessage(ctx, token, ticket.MessageID)
		if err != nil {
			return nil, err
		}
		if msg == nil || msg.ConversationID == "" {
			return []domain.MailMessage{}, nil
		}
		conversationID = msg.ConversationID
	}
	return u.provider.ListConversation(ctx, token, conversationID)
}

func (u *ticketUsecase) Attachments(ctx context.Context, ticketID uint) ([]domain.Attachment, error) {
	ticket, err := u.tickets.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, &dto.ValidationError{Field: "ticket_id", Reason: "ticket not found"}
	}
	if !ticket.HasAttachments {
		return []domain.Attachment{}, nil
	}

	token, err := u.tokenManager.EnsureValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return u.provider.ListAttachments(ctx, token, ticket.MessageID)
}
