package repository

import (
	"fmt"

	"gorm.io/gorm"

	"helpdesk-backend/internal/tickets/domain"
)

type lookupRepository struct {
	db    *gorm.DB
	retry *Retrier
}

func NewLookupRepository(db *gorm.DB, retry *Retrier) LookupRepository {
	return &lookupRepository{db: db, retry: retry}
}

func (r *lookupRepository) Statuses() ([]domain.TicketStatus, error) {
	var rows []domain.TicketStatus
	err := r.retry.Do("lookup.statuses", func() error {
		return r.db.Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return rows, nil
}

func (r *lookupRepository) Technicians() ([]domain.Technician, error) {
	var rows []domain.Technician
	err := r.retry.Do("lookup.technicians", func() error {
		return r.db.Where("active = ?", 1).Order("name").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}
	return rows, nil
}

func (r *lookupRepository) Priorities() ([]domain.Priority, error) {
	var rows []domain.Priority
	err := r.retry.Do("lookup.priorities", func() error {
		return r.db.Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list priorities: %w", err)
	}
	return rows, nil
}

func (r *lookupRepository) SupportTypes() ([]domain.SupportType, error) {
	var rows []domain.SupportType
	err := r.retry.Do("lookup.support_types", func() error {
		return r.db.Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list support types: %w", err)
	}
	return rows, nil
}

func (r *lookupRepository) TicketTypes() ([]domain.TicketType, error) {
	var rows []domain.TicketType
	err := r.retry.Do("lookup.ticket_types", func() error {
		return r.db.Order("id").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket types: %w", err)
	}
	return rows, nil
}
