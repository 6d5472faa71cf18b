package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"helpdesk-backend/internal/tickets/domain"
)

// Client talks to the Microsoft Graph mailbox API for a single shared
// mailbox. The bearer credential is passed into every call; the client keeps
// no token state.
type Client struct {
	baseURL    string
	mailbox    string
	pageSize   int
	maxPages   int
	httpClient *http.Client
}

func NewClient(baseURL, mailbox string, pageSize, maxPages int) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		mailbox:  mailbox,
		pageSize: pageSize,
		maxPages: maxPages,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetFolderID resolves a well-known or named mail folder to its id.
func (c *Client) GetFolderID(ctx context.Context, token, folderName string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/mailFolders/%s", c.baseURL, c.mailbox, url.PathEscape(folderName))

	var folder folderResponse
	if err := c.getJSON(ctx, token, endpoint, &folder); err != nil {
		return "", fmt.Errorf("failed to resolve folder %q: %w", folderName, err)
	}
	return folder.ID, nil
}

// ListMessages pulls the folder page by page, following @odata.nextLink.
// Pagination stops on an empty page, a missing continuation link, or the
// configured page cap. A non-success response aborts pagination but the
// messages accumulated so far are returned.
func (c *Client) ListMessages(ctx context.Context, token, folderID string) ([]domain.MailMessage, error) {
	endpoint := fmt.Sprintf(
		"%s/%s/mailFolders/%s/messages?$top=%d&$select=from,subject,receivedDateTime,bodyPreview,body,conversationId,id,hasAttachments",
		c.baseURL, c.mailbox, folderID, c.pageSize)

	var messages []domain.MailMessage
	for page := 0; endpoint != "" && page < c.maxPages; page++ {
		var resp listMessagesResponse
		if err := c.getJSON(ctx, token, endpoint, &resp); err != nil {
			if len(messages) == 0 {
				return nil, err
			}
			log.Printf("[Graph] message listing aborted after %d messages: %v", len(messages), err)
			return messages, nil
		}

		if len(resp.Value) == 0 {
			break
		}
		for _, m := range resp.Value {
			messages = append(messages, m.toDomain())
		}
		endpoint = resp.NextLink
	}

	return messages, nil
}

// GetMessage fetches one message by provider id.
func (c *Client) GetMessage(ctx context.Context, token, messageID string) (*domain.MailMessage, error) {
	endpoint := fmt.Sprintf("%s/%s/messages/%s", c.baseURL, c.mailbox, url.PathEscape(messageID))

	var m graphMessage
	if err := c.getJSON(ctx, token, endpoint, &m); err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}
	msg := m.toDomain()
	return &msg, nil
}

// ListConversation returns the mailbox messages belonging to one
// conversation. Graph's $filter on conversationId is unreliable for shared
// mailboxes, so recent messages are listed and filtered locally.
func (c *Client) ListConversation(ctx context.Context, token, conversationID string) ([]domain.MailMessage, error) {
	endpoint := fmt.Sprintf(
		"%s/%s/messages?$top=%d&$orderby=receivedDateTime desc&$select=id,conversationId,subject,from,receivedDateTime,bodyPreview,body,hasAttachments",
		c.baseURL, c.mailbox, c.pageSize)

	var resp listMessagesResponse
	if err := c.getJSON(ctx, token, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to list conversation messages: %w", err)
	}

	var messages []domain.MailMessage
	for _, m := range resp.Value {
		if m.ConversationID == conversationID {
			messages = append(messages, m.toDomain())
		}
	}
	return messages, nil
}

// ListAttachments lists the attachments of a message.
func (c *Client) ListAttachments(ctx context.Context, token, messageID string) ([]domain.Attachment, error) {
	endpoint := fmt.Sprintf("%s/%s/messages/%s/attachments", c.baseURL, c.mailbox, url.PathEscape(messageID))

	var resp listAttachmentsResponse
	if err := c.getJSON(ctx, token, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to list attachments for %s: %w", messageID, err)
	}

	attachments := make([]domain.Attachment, 0, len(resp.Value))
	for _, a := range resp.Value {
		attachments = append(attachments, domain.Attachment{
			ID:          a.ID,
			Name:        a.Name,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}
	return attachments, nil
}

// Reply posts an HTML comment as a reply to an existing message.
func (c *Client) Reply(ctx context.Context, token, messageID, htmlComment string) error {
	endpoint := fmt.Sprintf("%s/%s/messages/%s/reply", c.baseURL, c.mailbox, url.PathEscape(messageID))
	return c.postJSON(ctx, token, endpoint, replyPayload{Comment: htmlComment})
}

// SendMail sends a brand-new message from the shared mailbox.
func (c *Client) SendMail(ctx context.Context, token string, mail domain.OutboundMail) error {
	endpoint := fmt.Sprintf("%s/%s/sendMail", c.baseURL, c.mailbox)
	payload := sendMailPayload{
		Message: outboundMessage{
			Subject: mail.Subject,
			Body: messageBody{
				ContentType: "HTML",
				Content:     mail.HTMLBody,
			},
			ToRecipients: []recipient{
				{EmailAddress: emailAddress{Address: mail.ToEmail, Name: mail.ToName}},
			},
		},
	}
	return c.postJSON(ctx, token, endpoint, payload)
}

func (c *Client) getJSON(ctx context.Context, token, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, URL: endpoint, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, token, endpoint string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, URL: endpoint, Body: string(respBody)}
	}
	return nil
}
