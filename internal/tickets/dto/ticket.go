package dto

import "fmt"

// UpdateTicketFieldRequest changes one ticket attribute at a time.
type UpdateTicketFieldRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

// ReplyRequest is the body of an agent reply to a ticket.
type ReplyRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// TicketFilterRequest is the query surface of the ticket search endpoint.
type TicketFilterRequest struct {
	View        string `form:"view"`
	Query       string `form:"q"`
	Status      *int   `form:"status"`
	AssignedTo  *int   `form:"assigned_to"`
	SupportType *int   `form:"support_type"`
	TicketType  *int   `form:"ticket_type"`
	Priority    *int   `form:"priority"`
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}

// ValidationError reports a rejected request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
