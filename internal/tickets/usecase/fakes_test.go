package usecase

import (
	"context"
	"strings"
	"time"

	"helpdesk-backend/internal/tickets/domain"
	"helpdesk-backend/internal/tickets/repository"
)

type fakeTicketRepo struct {
	tickets   []*domain.Ticket
	replies   []*domain.TicketReply
	touched   []uint
	updates   []map[string]interface{}
	filters   []repository.TicketFilter
	insertErr error
	convErr   error
	nextID    uint
}

var _ repository.TicketRepository = (*fakeTicketRepo)(nil)

func (f *fakeTicketRepo) GetKnownMessageIDs() (map[string]struct{}, error) {
	known := make(map[string]struct{})
	for _, t := range f.tickets {
		known[t.MessageID] = struct{}{}
	}
	for _, r := range f.replies {
		if r.MessageID != "" {
			known[r.MessageID] = struct{}{}
		}
	}
	return known, nil
}

func (f *fakeTicketRepo) GetByID(id uint) (*domain.Ticket, error) {
	for _, t := range f.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) GetByMessageID(messageID string) (*domain.Ticket, error) {
	for _, t := range f.tickets {
		if t.MessageID == messageID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) GetByConversationID(conversationID string) (*domain.Ticket, error) {
	if f.convErr != nil {
		return nil, f.convErr
	}
	for _, t := range f.tickets {
		if t.ConversationID == conversationID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) FindBySubjectAndSender(subject, fromEmail string, days int) (*domain.Ticket, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	for _, t := range f.tickets {
		if strings.Contains(t.Subject, subject) &&
			t.FromEmail == fromEmail &&
			t.Status == domain.StatusOpen &&
			t.CreatedAt.After(cutoff) {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) FindRecentBySender(fromEmail string, days int) (*domain.Ticket, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	for _, t := range f.tickets {
		if t.FromEmail == fromEmail && t.CreatedAt.After(cutoff) {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) Insert(ticket *domain.Ticket) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	ticket.ID = f.nextID
	f.tickets = append(f.tickets, ticket)
	return nil
}

func (f *fakeTicketRepo) UpdateByMessageID(messageID string, fields map[string]interface{}) (*domain.Ticket, error) {
	f.updates = append(f.updates, fields)
	for _, t := range f.tickets {
		if t.MessageID != messageID {
			continue
		}
		if v, ok := fields["subject"].(string); ok {
			t.Subject = v
		}
		if v, ok := fields["body_preview"].(string); ok {
			t.BodyPreview = v
		}
		if v, ok := fields["content_hash"].(string); ok {
			t.ContentHash = v
		}
		if v, ok := fields["status"].(int); ok {
			t.Status = v
		}
		if v, ok := fields["is_ticket"].(int); ok {
			t.IsTicket = v
		}
		return t, nil
	}
	return nil, nil
}

func (f *fakeTicketRepo) AppendReply(reply *domain.TicketReply) error {
	f.replies = append(f.replies, reply)
	return nil
}

func (f *fakeTicketRepo) TouchLastActivity(ticketID uint) error {
	f.touched = append(f.touched, ticketID)
	return nil
}

func (f *fakeTicketRepo) ListInbox(limit, offset int, status *int) ([]*domain.Ticket, error) {
	return f.tickets, nil
}

func (f *fakeTicketRepo) ListTickets(view string, limit, offset int, technicianID *int) ([]*domain.Ticket, error) {
	return f.tickets, nil
}

func (f *fakeTicketRepo) Filter(filter repository.TicketFilter) ([]*domain.Ticket, error) {
	f.filters = append(f.filters, filter)
	return f.tickets, nil
}

type finalizeCall struct {
	stats        domain.SyncStats
	status       string
	errorMessage string
}

type fakeSyncLogRepo struct {
	created   []string
	finalized map[string]finalizeCall
	last      *domain.SyncLog
}

var _ repository.SyncLogRepository = (*fakeSyncLogRepo)(nil)

func (f *fakeSyncLogRepo) Create(syncType string) (string, error) {
	id := syncType + "-log"
	f.created = append(f.created, id)
	return id, nil
}

func (f *fakeSyncLogRepo) Finalize(logID string, stats domain.SyncStats, status, errorMessage string) error {
	if f.finalized == nil {
		f.finalized = make(map[string]finalizeCall)
	}
	f.finalized[logID] = finalizeCall{stats: stats, status: status, errorMessage: errorMessage}
	return nil
}

func (f *fakeSyncLogRepo) LastSuccessful() (*domain.SyncLog, error) {
	return f.last, nil
}

type fakeTokenRepo struct {
	active      *domain.GraphToken
	deactivated []uint
	saved       []*domain.GraphToken
}

var _ repository.TokenRepository = (*fakeTokenRepo)(nil)

func (f *fakeTokenRepo) GetActiveToken() (*domain.GraphToken, error) {
	return f.active, nil
}

func (f *fakeTokenRepo) DeactivateToken(id uint) error {
	f.deactivated = append(f.deactivated, id)
	if f.active != nil && f.active.ID == id {
		f.active = nil
	}
	return nil
}

func (f *fakeTokenRepo) SaveToken(value string, expiresAt time.Time) (*domain.GraphToken, error) {
	token := &domain.GraphToken{ID: uint(len(f.saved) + 100), Token: value, ExpiresAt: expiresAt, Active: true}
	f.saved = append(f.saved, token)
	f.active = token
	return token, nil
}

type fakeIssuer struct {
	cred  *domain.IssuedCredential
	err   error
	calls int
}

var _ domain.TokenIssuer = (*fakeIssuer)(nil)

func (f *fakeIssuer) RequestToken(ctx context.Context) (*domain.IssuedCredential, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cred, nil
}

type fakeProvider struct {
	folderID  string
	folderErr error
	messages  []domain.MailMessage
	listErr   error

	replied  []string
	sent     []domain.OutboundMail
	replyErr error
}

var _ domain.MailProvider = (*fakeProvider)(nil)

func (f *fakeProvider) GetFolderID(ctx context.Context, token, folderName string) (string, error) {
	if f.folderErr != nil {
		return "", f.folderErr
	}
	return f.folderID, nil
}

func (f *fakeProvider) ListMessages(ctx context.Context, token, folderID string) ([]domain.MailMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.messages, nil
}

func (f *fakeProvider) GetMessage(ctx context.Context, token, messageID string) (*domain.MailMessage, error) {
	for i := range f.messages {
		if f.messages[i].MessageID == messageID {
			return &f.messages[i], nil
		}
	}
	return nil, nil
}

func (f *fakeProvider) ListConversation(ctx context.Context, token, conversationID string) ([]domain.MailMessage, error) {
	var out []domain.MailMessage
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeProvider) ListAttachments(ctx context.Context, token, messageID string) ([]domain.Attachment, error) {
	return nil, nil
}

func (f *fakeProvider) Reply(ctx context.Context, token, messageID, htmlComment string) error {
	if f.replyErr != nil {
		return f.replyErr
	}
	f.replied = append(f.replied, messageID)
	return nil
}

func (f *fakeProvider) SendMail(ctx context.Context, token string, mail domain.OutboundMail) error {
	f.sent = append(f.sent, mail)
	return nil
}
