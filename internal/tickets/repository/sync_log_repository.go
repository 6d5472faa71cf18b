package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"helpdesk-backend/internal/tickets/domain"
)

type syncLogRepository struct {
	db    *gorm.DB
	retry *Retrier
}

func NewSyncLogRepository(db *gorm.DB, retry *Retrier) SyncLogRepository {
	return &syncLogRepository{db: db, retry: retry}
}

func (r *syncLogRepository) Create(syncType string) (string, error) {
	entry := &domain.SyncLog{
		ID:        uuid.New().String(),
		SyncType:  syncType,
		StartedAt: time.Now(),
		Status:    domain.SyncStatusRunning,
	}
	err := r.retry.Do("sync_log.create", func() error {
		return r.db.Create(entry).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to create sync log: %w", err)
	}
	return entry.ID, nil
}

func (r *syncLogRepository) Finalize(logID string, stats domain.SyncStats, status, errorMessage string) error {
	now := time.Now()
	fields := map[string]interface{}{
		"finished_at":       &now,
		"status":            status,
		"new_count":         stats.New,
		"updated_count":     stats.Updated,
		"unchanged_count":   stats.Unchanged,
		"replies_processed": stats.RepliesProcessed,
		"error_message":     errorMessage,
	}
	err := r.retry.Do("sync_log.finalize", func() error {
		return r.db.Model(&domain.SyncLog{}).Where("id = ?", logID).Updates(fields).Error
	})
	if err != nil {
		return fmt.Errorf("failed to finalize sync log %s: %w", logID, err)
	}
	return nil
}

func (r *syncLogRepository) LastSuccessful() (*domain.SyncLog, error) {
	var entry domain.SyncLog
	err := r.retry.Do("sync_log.last_successful", func() error {
		return r.db.Where("status = ?", domain.SyncStatusSuccess).
			Order("started_at DESC").First(&entry).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last successful sync: %w", err)
	}
	return &entry, nil
}
