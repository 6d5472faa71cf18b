package graph

import "fmt"

// APIError is a non-success response from the Graph API. During pagination it
// aborts the current fetch but already-accumulated results are kept.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph request failed: %d %s: %s", e.StatusCode, e.URL, e.Body)
}

// AuthError means the identity provider refused to issue a credential. Sync
// runs degrade to serving stored data when this happens.
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token request failed: %v", e.Err)
	}
	return fmt.Sprintf("token request failed: %d: %s", e.StatusCode, e.Body)
}

func (e *AuthError) Unwrap() error { return e.Err }
