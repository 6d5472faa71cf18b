package domain

import "time"

// Sync run types and terminal states.
const (
	SyncTypeFull        = "full"
	SyncTypeIncremental = "incremental"

	SyncStatusRunning = "running"
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// SyncStats aggregates what a single run did to the store.
type SyncStats struct {
	New              int `json:"new"`
	Updated          int `json:"updated"`
	Unchanged        int `json:"unchanged"`
	RepliesProcessed int `json:"replies_processed"`
}

// SyncLog records one synchronization run. A row is created when the run
// starts and finalized exactly once when it ends, success or failure.
type SyncLog struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	SyncType         string     `json:"sync_type" gorm:"not null"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at"`
	Status           string     `json:"status" gorm:"not null;index"`
	NewCount         int        `json:"new_count"`
	UpdatedCount     int        `json:"updated_count"`
	UnchangedCount   int        `json:"unchanged_count"`
	RepliesProcessed int        `json:"replies_processed"`
	ErrorMessage     string     `json:"error_message" gorm:"type:text"`
}
