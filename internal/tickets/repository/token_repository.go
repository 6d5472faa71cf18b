package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk-backend/internal/tickets/domain"
)

type tokenRepository struct {
	db    *gorm.DB
	retry *Retrier
}

func NewTokenRepository(db *gorm.DB, retry *Retrier) TokenRepository {
	return &tokenRepository{db: db, retry: retry}
}

func (r *tokenRepository) GetActiveToken() (*domain.GraphToken, error) {
	var token domain.GraphToken
	err := r.retry.Do("token.get_active", func() error {
		return r.db.Where("active = ?", true).Order("id DESC").First(&token).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active token: %w", err)
	}
	return &token, nil
}

func (r *tokenRepository) DeactivateToken(id uint) error {
	err := r.retry.Do("token.deactivate", func() error {
		return r.db.Model(&domain.GraphToken{}).Where("id = ?", id).Update("active", false).Error
	})
	if err != nil {
		return fmt.Errorf("failed to deactivate token %d: %w", id, err)
	}
	return nil
}

func (r *tokenRepository) SaveToken(value string, expiresAt time.Time) (*domain.GraphToken, error) {
	token := &domain.GraphToken{
		Token:     value,
		ExpiresAt: expiresAt,
		Active:    true,
		CreatedAt: time.Now(),
	}
	err := r.retry.Do("token.save", func() error {
		return r.db.Create(token).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}
	return token, nil
}
