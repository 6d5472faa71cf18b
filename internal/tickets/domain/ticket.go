package domain

import "time"

// Ticket statuses (estado) used by the inbox/ticket flows.
const (
	StatusDiscarded  = 0
	StatusOpen       = 1
	StatusInProgress = 2
	StatusCompleted  = 3
)

// Reply history directions.
const (
	ReplyDirectionInbound  = "inbound"
	ReplyDirectionOutbound = "outbound"
)

// Ticket is one mailbox message tracked by the helpdesk. There is exactly one
// row per logical conversation thread; replies are appended to TicketReply and
// never create a second row.
type Ticket struct {
	ID               uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	MessageID        string     `json:"message_id" gorm:"uniqueIndex;not null"`
	ConversationID   string     `json:"conversation_id" gorm:"index"`
	Subject          string     `json:"subject"`
	FromEmail        string     `json:"from_email" gorm:"index"`
	FromName         string     `json:"from_name"`
	ReceivedDate     time.Time  `json:"received_date"`
	BodyPreview      string     `json:"body_preview" gorm:"type:text"`
	BodyContent      string     `json:"body_content" gorm:"type:text"`
	ContentHash      string     `json:"content_hash"`
	Status           int        `json:"status" gorm:"not null;default:1"`
	IsTicket         int        `json:"is_ticket" gorm:"not null;default:0"`
	AssignedTo       *int       `json:"assigned_to"`
	Priority         *int       `json:"priority"`
	SupportType      *int       `json:"support_type"`
	TicketType       *int       `json:"ticket_type"`
	DueDate          *time.Time `json:"due_date"`
	ClosedAt         *time.Time `json:"closed_at"`
	HasAttachments   bool       `json:"has_attachments"`
	AttachmentsCount int        `json:"attachments_count"`
	Active           int        `json:"active" gorm:"not null;default:1"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TicketReply is one entry in a ticket's reply history, inbound (a thread
// reply picked up during sync) or outbound (an agent reply sent through the
// provider).
type TicketReply struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	TicketID     uint      `json:"ticket_id" gorm:"index;not null"`
	MessageID    string    `json:"message_id"`
	FromEmail    string    `json:"from_email"`
	FromName     string    `json:"from_name"`
	Subject      string    `json:"subject"`
	BodyContent  string    `json:"body_content" gorm:"type:text"`
	ReceivedDate time.Time `json:"received_date"`
	Direction    string    `json:"direction" gorm:"not null"` // "inbound" or "outbound"
	CreatedAt    time.Time `json:"created_at"`
}
