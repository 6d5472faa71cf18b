package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helpdesk-backend/internal/tickets/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Issuer mints application credentials via the OAuth2 client-credentials
// grant against the tenant's token endpoint.
type Issuer struct {
	conf *clientcredentials.Config
}

func NewIssuer(loginURL, tenantID, clientID, clientSecret string, scopes []string) *Issuer {
	return &Issuer{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(loginURL, "/"), tenantID),
			Scopes:       scopes,
		},
	}
}

// RequestToken asks the identity provider for a fresh credential. The expiry
// comes from the server-provided lifetime.
func (i *Issuer) RequestToken(ctx context.Context) (*domain.IssuedCredential, error) {
	token, err := i.conf.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, &AuthError{
				StatusCode: retrieveErr.Response.StatusCode,
				Body:       string(retrieveErr.Body),
			}
		}
		return nil, &AuthError{Err: err}
	}

	return &domain.IssuedCredential{
		Token:     token.AccessToken,
		ExpiresAt: token.Expiry,
	}, nil
}
