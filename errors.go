package postcard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/postcardcloud/postcard-go/internal/api"
	"github.com/postcardcloud/postcard-go/internal/oauth"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingCredentials is returned when the client ID or secret is empty.
	ErrMissingCredentials = errors.New("client ID and client secret are required")

	// ErrMissingCampaignKey is returned when no campaign key is given and
	// no default campaign is configured.
	ErrMissingCampaignKey = errors.New("campaign key is required: pass one or configure a default campaign")

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication matches every *AuthenticationError.
	ErrAuthentication = errors.New("authentication failed")

	// ErrUnauthorized is returned when the API rejects the bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrPostcardNotFound matches provider error code 4003.
	ErrPostcardNotFound = errors.New("postcard not found")

	// ErrAlreadyApproved matches provider error code 6000.
	ErrAlreadyApproved = errors.New("postcard already approved")

	// ErrQuotaExceeded matches provider error code 2000.
	ErrQuotaExceeded = errors.New("campaign quota exceeded")
)

// PostcardError is implemented by all errors returned by this package.
type PostcardError interface {
	error
	PostcardError() // marker method
}

// ValidationError lists the local validation failures of one input.
// No request is sent when validation fails.
type ValidationError struct {
	// Subject names the validated input, e.g. "Recipient address".
	Subject  string
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Subject, strings.Join(e.Messages, ", "))
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PostcardError implements the PostcardError interface.
func (e *ValidationError) PostcardError() {}

// validationError returns a *ValidationError for msgs, or nil if msgs is empty.
func validationError(subject string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Subject: subject, Messages: msgs}
}

// AuthenticationError is returned when no access token could be obtained.
type AuthenticationError struct {
	// StatusCode is the token endpoint status, or 0 if none was received.
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthenticationError) Error() string {
	return (&oauth.AuthError{StatusCode: e.StatusCode, Body: e.Body, Err: e.Err}).Error()
}

// Unwrap returns the underlying error.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// PostcardError implements the PostcardError interface.
func (e *AuthenticationError) PostcardError() {}

// APIError is a failed response from the postcard API, including 200
// responses whose body carries provider errors.
type APIError struct {
	StatusCode int
	Message    string
	// Errors holds the provider error entries, if the body had any.
	Errors []CodeMessage
	// BodyPreview is the start of an HTML or undecodable body.
	BodyPreview string
	RequestID   string
	Err         error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("Postcard API Error %d", e.StatusCode)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("%s (request_id: %s)", msg, e.RequestID)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// PostcardError implements the PostcardError interface.
func (e *APIError) PostcardError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		if target == ErrUnauthorized {
			return true
		}
	case 404:
		if target == ErrNotFound {
			return true
		}
	case 429:
		if target == ErrRateLimited {
			return true
		}
	}

	switch target {
	case ErrPostcardNotFound:
		return e.HasCode(CodePostcardNotFound)
	case ErrAlreadyApproved:
		return e.HasCode(CodePostcardAlreadyApproved)
	case ErrQuotaExceeded:
		return e.HasCode(CodeCampaignQuotaExceeded)
	}
	return false
}

// HasCode reports whether the provider returned code.
func (e *APIError) HasCode(code ErrorCode) bool {
	for _, m := range e.Errors {
		if m.Code == code {
			return true
		}
	}
	return false
}

// NetworkError represents a network-level failure, including cancellation
// and deadline expiry.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// PostcardError implements the PostcardError interface.
func (e *NetworkError) PostcardError() {}

// TimeoutError represents an operation that exceeded its deadline.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %v", e.Operation, e.Timeout)
}

// Is implements errors.Is for sentinel error matching.
func (e *TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// PostcardError implements the PostcardError interface.
func (e *TimeoutError) PostcardError() {}

// SendError reports which step of Client.Send failed.
type SendError struct {
	// Stage is one of "recipient", "create", "branding text",
	// "branding QR code", "branding image", "branding stamp" or "approve".
	Stage   string
	CardKey CardKey
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send postcard (%s): %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *SendError) Unwrap() error {
	return e.Err
}

// PostcardError implements the PostcardError interface.
func (e *SendError) PostcardError() {}

// wrapError converts internal errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode:  apiErr.StatusCode,
			Message:     apiErr.Message,
			Errors:      codeMessages(apiErr.Errors),
			BodyPreview: apiErr.BodyPreview,
			RequestID:   apiErr.RequestID,
			Err:         apiErr.Err,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	var authErr *oauth.AuthError
	if errors.As(err, &authErr) {
		return &AuthenticationError{
			StatusCode: authErr.StatusCode,
			Body:       authErr.Body,
			Err:        authErr.Err,
		}
	}

	if errors.Is(err, oauth.ErrMissingCredentials) {
		return ErrMissingCredentials
	}

	return err
}
