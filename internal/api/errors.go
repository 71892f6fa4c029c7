package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrUnauthorized indicates the bearer token was rejected (401).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates the requested resource does not exist (404).
	ErrNotFound = errors.New("not found")
	// ErrRateLimited indicates the rate limit has been exceeded (429).
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrPostcardNotFound indicates provider error code 4003.
	ErrPostcardNotFound = errors.New("postcard not found")
	// ErrAlreadyApproved indicates provider error code 6000.
	ErrAlreadyApproved = errors.New("postcard already approved")
	// ErrQuotaExceeded indicates provider error code 2000.
	ErrQuotaExceeded = errors.New("campaign quota exceeded")
)

// Provider codes mapped to sentinels.
const (
	codeQuotaExceeded    = 2000
	codePostcardNotFound = 4003
	codeAlreadyApproved  = 6000
)

// CodeMessage is one entry of a provider errors or warnings array.
type CodeMessage struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func (m CodeMessage) String() string {
	return fmt.Sprintf("[%d] %s", m.Code, m.Description)
}

// UnmarshalJSON accepts the code as a JSON number or a numeric string.
// A code that cannot be read as a number decodes as 0.
func (m *CodeMessage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code        json.RawMessage `json:"code"`
		Description json.RawMessage `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = CodeMessage{
		Code:        parseCode(raw.Code),
		Description: rawText(raw.Description),
	}
	return nil
}

func parseCode(raw json.RawMessage) int {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// rawText returns a JSON string value, or the raw JSON of any other value.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// decodeCodeMessages reads provider error entries one by one. An entry
// that is not an object is kept as its raw text.
func decodeCodeMessages(entries []json.RawMessage) []CodeMessage {
	out := make([]CodeMessage, 0, len(entries))
	for _, e := range entries {
		var m CodeMessage
		if err := json.Unmarshal(e, &m); err != nil {
			m = CodeMessage{Description: rawText(e)}
		}
		out = append(out, m)
	}
	return out
}

// APIError is a classified failure response from the postcard API.
type APIError struct {
	StatusCode int
	// Message is the human-readable failure summary.
	Message string
	// Errors holds the provider error entries for JSON failures.
	Errors []CodeMessage
	// BodyPreview is the first 2000 characters of the body for HTML and
	// undecodable responses.
	BodyPreview string
	Kind        Kind
	RequestID   string
	// Err is an underlying cause, if any.
	Err error
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

func (e *APIError) Unwrap() error {
	return e.Err
}

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

	for _, m := range e.Errors {
		switch {
		case m.Code == codePostcardNotFound && target == ErrPostcardNotFound,
			m.Code == codeAlreadyApproved && target == ErrAlreadyApproved,
			m.Code == codeQuotaExceeded && target == ErrQuotaExceeded:
			return true
		}
	}
	return false
}

// HasCode reports whether the provider returned the given error code.
func (e *APIError) HasCode(code int) bool {
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

func (e *NetworkError) Unwrap() error {
	return e.Err
}
