package repository

import (
	"time"

	"helpdesk-backend/internal/tickets/domain"
)

// TokenRepository persists provider credentials. Only the newest active row
// is ever authoritative.
type TokenRepository interface {
	// GetActiveToken returns the most recently issued active token, or nil
	// when none exists.
	GetActiveToken() (*domain.GraphToken, error)
	// DeactivateToken marks an expired token inactive; it is never reactivated.
	DeactivateToken(id uint) error
	// SaveToken persists a freshly issued credential as the new active token.
	SaveToken(value string, expiresAt time.Time) (*domain.GraphToken, error)
}
