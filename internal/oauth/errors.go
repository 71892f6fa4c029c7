package oauth

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when the client ID or secret is empty.
var ErrMissingCredentials = errors.New("client ID and client secret are required")

// AuthError is returned when the token endpoint exchange fails or its
// response carries no access token.
type AuthError struct {
	// StatusCode is the token endpoint's HTTP status, zero for transport failures.
	StatusCode int
	// Body is the raw token endpoint response, if any.
	Body string
	// Err is the underlying cause.
	Err error
}

func (e *AuthError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("failed to obtain OAuth2 token: status %d: %s", e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("failed to obtain OAuth2 token: status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("failed to obtain OAuth2 token: %v", e.Err)
	default:
		return "failed to obtain OAuth2 token"
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
