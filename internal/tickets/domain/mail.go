package domain

import (
	"context"
	"time"
)

// MailMessage is a provider message mapped into an explicit record at the API
// boundary. It is transient: sync maps it into a Ticket or a TicketReply.
type MailMessage struct {
	MessageID        string
	ConversationID   string
	Subject          string
	FromEmail        string
	FromName         string
	ReceivedDate     time.Time
	BodyPreview      string
	BodyContent      string
	HasAttachments   bool
	AttachmentsCount int
}

// Attachment describes a message attachment as listed by the provider.
type Attachment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// OutboundMail is a new message sent through the provider on behalf of the
// helpdesk mailbox.
type OutboundMail struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string
}

// MailProvider is the remote mailbox API surface the sync engine and the
// ticket operations consume. The bearer credential is passed explicitly into
// every call; providers hold no token state.
type MailProvider interface {
	GetFolderID(ctx context.Context, token, folderName string) (string, error)
	// ListMessages pulls every page of the folder. On a mid-pagination
	// failure it returns the messages accumulated so far together with a nil
	// error; an error is returned only when nothing could be fetched.
	ListMessages(ctx context.Context, token, folderID string) ([]MailMessage, error)
	GetMessage(ctx context.Context, token, messageID string) (*MailMessage, error)
	ListConversation(ctx context.Context, token, conversationID string) ([]MailMessage, error)
	ListAttachments(ctx context.Context, token, messageID string) ([]Attachment, error)
	Reply(ctx context.Context, token, messageID, htmlComment string) error
	SendMail(ctx context.Context, token string, mail OutboundMail) error
}

// TokenIssuer mints a fresh credential from the identity provider.
type TokenIssuer interface {
	RequestToken(ctx context.Context) (*IssuedCredential, error)
}
