package repository

import "helpdesk-backend/internal/tickets/domain"

// SyncLogRepository records synchronization runs. Every created log is
// finalized exactly once, success or failure.
type SyncLogRepository interface {
	Create(syncType string) (string, error)
	Finalize(logID string, stats domain.SyncStats, status, errorMessage string) error
	// LastSuccessful returns the most recent successful run, or nil.
	LastSuccessful() (*domain.SyncLog, error)
}
