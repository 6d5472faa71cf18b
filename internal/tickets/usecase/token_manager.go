package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"helpdesk-backend/internal/tickets/domain"
	"helpdesk-backend/internal/tickets/repository"
)

// TokenManager hands out a credential that is valid right now, minting a new
// one through the issuer when the stored token is missing or expired.
type TokenManager struct {
	tokens repository.TokenRepository
	issuer domain.TokenIssuer
}

func NewTokenManager(tokens repository.TokenRepository, issuer domain.TokenIssuer) *TokenManager {
	return &TokenManager{tokens: tokens, issuer: issuer}
}

// EnsureValidToken returns the active stored token when it has not expired
// yet. An expired token is deactivated before a replacement is requested, so
// it can never be served again even if minting fails.
func (m *TokenManager) EnsureValidToken(ctx context.Context) (string, error) {
	stored, err := m.tokens.GetActiveToken()
	if err != nil {
		return "", fmt.Errorf("failed to load stored token: %w", err)
	}
	if stored != nil {
		if time.Now().Before(stored.ExpiresAt) {
			return stored.Token, nil
		}
		log.Printf("[Token] stored token %d expired at %s, requesting a new one", stored.ID, stored.ExpiresAt.Format(time.RFC3339))
		if err := m.tokens.DeactivateToken(stored.ID); err != nil {
			return "", fmt.Errorf("failed to deactivate expired token: %w", err)
		}
	}

	issued, err := m.issuer.RequestToken(ctx)
	if err != nil {
		return "", err
	}
	if _, err := m.tokens.SaveToken(issued.Token, issued.ExpiresAt); err != nil {
		return "", fmt.Errorf("failed to persist issued token: %w", err)
	}
	return issued.Token, nil
}
