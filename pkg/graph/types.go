package graph

import (
	"time"

	"helpdesk-backend/internal/tickets/domain"
)

// Wire shapes for the Microsoft Graph REST API. Payloads are decoded once
// here and mapped into explicit domain records.

type emailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type messageBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphMessage struct {
	ID               string       `json:"id"`
	ConversationID   string       `json:"conversationId"`
	Subject          string       `json:"subject"`
	From             *recipient   `json:"from"`
	ReceivedDateTime *time.Time   `json:"receivedDateTime"`
	BodyPreview      string       `json:"bodyPreview"`
	Body             *messageBody `json:"body"`
	HasAttachments   bool         `json:"hasAttachments"`
}

type listMessagesResponse struct {
	Value    []graphMessage `json:"value"`
	NextLink string         `json:"@odata.nextLink"`
}

type folderResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type graphAttachment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type listAttachmentsResponse struct {
	Value []graphAttachment `json:"value"`
}

type replyPayload struct {
	Comment string `json:"comment"`
}

type sendMailPayload struct {
	Message outboundMessage `json:"message"`
}

type outboundMessage struct {
	Subject      string      `json:"subject"`
	Body         messageBody `json:"body"`
	ToRecipients []recipient `json:"toRecipients"`
}

func (m graphMessage) toDomain() domain.MailMessage {
	msg := domain.MailMessage{
		MessageID:      m.ID,
		ConversationID: m.ConversationID,
		Subject:        m.Subject,
		BodyPreview:    m.BodyPreview,
		HasAttachments: m.HasAttachments,
	}
	if m.From != nil {
		msg.FromEmail = m.From.EmailAddress.Address
		msg.FromName = m.From.EmailAddress.Name
	}
	if m.ReceivedDateTime != nil {
		msg.ReceivedDate = *m.ReceivedDateTime
	} else {
		msg.ReceivedDate = time.Now()
	}
	if m.Body != nil {
		msg.BodyContent = m.Body.Content
	}
	return msg
}
