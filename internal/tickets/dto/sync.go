package dto

import "helpdesk-backend/internal/tickets/domain"

// SyncResult is the payload returned by the sync trigger endpoint.
type SyncResult struct {
	SyncLogID string           `json:"sync_log_id"`
	SyncType  string           `json:"sync_type"`
	Status    string           `json:"status"`
	Stats     domain.SyncStats `json:"stats"`
	// Tickets is the mailbox view after the run; on a failed run it is the
	// last known stored data.
	Tickets []*domain.Ticket `json:"tickets"`
}
