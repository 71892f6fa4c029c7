package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// BodyPreviewLimit is the number of characters of a body kept in messages.
const BodyPreviewLimit = 2000

// Kind is the outcome of classifying a response.
type Kind int

const (
	// KindSuccess is a successful response.
	KindSuccess Kind = iota
	// KindHTMLError is an HTML error page.
	KindHTMLError
	// KindJSONError is a JSON body with a non-empty errors array.
	KindJSONError
	// KindStatusError is a failure status without usable error details,
	// including undecodable JSON.
	KindStatusError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindHTMLError:
		return "html_error"
	case KindJSONError:
		return "json_error"
	case KindStatusError:
		return "status_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ClassifyInput is what Classify needs to know about a response.
type ClassifyInput struct {
	TokenEndpoint bool
	StatusCode    int
	ContentType   string
	Body          []byte
}

// Classification is the result of Classify.
type Classification struct {
	Kind        Kind
	Errors      []CodeMessage
	Message     string
	BodyPreview string
}

// Failed reports whether the response is a failure.
func (c Classification) Failed() bool {
	return c.Kind != KindSuccess
}

// IsTokenEndpoint reports whether rawURL addresses the OAuth2 token endpoint.
func IsTokenEndpoint(rawURL string) bool {
	return strings.Contains(rawURL, "/OAuth/token")
}

// Classify decides whether a response is a success or a failure.
func Classify(in ClassifyInput) Classification {
	failedStatus := in.StatusCode >= 400

	if in.TokenEndpoint {
		if failedStatus {
			return statusError(in)
		}
		return Classification{Kind: KindSuccess}
	}

	switch {
	case strings.Contains(in.ContentType, "text/html"):
		if !failedStatus {
			return Classification{Kind: KindSuccess}
		}
		preview := bodyPreview(in.Body)
		return Classification{
			Kind:        KindHTMLError,
			Message:     fmt.Sprintf("Postcard API Error %d %s", in.StatusCode, preview),
			BodyPreview: preview,
		}

	case strings.Contains(in.ContentType, "application/json"):
		var payload struct {
			Errors []json.RawMessage `json:"errors"`
		}
		if err := json.Unmarshal(in.Body, &payload); err != nil {
			if !failedStatus {
				return Classification{Kind: KindSuccess}
			}
			preview := bodyPreview(in.Body)
			return Classification{
				Kind:        KindStatusError,
				Message:     fmt.Sprintf("Postcard API Error %d %s", in.StatusCode, preview),
				BodyPreview: preview,
			}
		}
		if len(payload.Errors) > 0 {
			entries := decodeCodeMessages(payload.Errors)
			return Classification{
				Kind:    KindJSONError,
				Errors:  entries,
				Message: "Swiss Post API Error: " + JoinCodeMessages(entries),
			}
		}
	}

	if failedStatus {
		return statusError(in)
	}
	return Classification{Kind: KindSuccess}
}

func statusError(in ClassifyInput) Classification {
	preview := bodyPreview(in.Body)
	msg := fmt.Sprintf("Postcard API Error %d", in.StatusCode)
	if preview != "" {
		msg += " " + preview
	}
	return Classification{Kind: KindStatusError, Message: msg, BodyPreview: preview}
}

// JoinCodeMessages renders entries as "[code] description" joined by ", ".
func JoinCodeMessages(msgs []CodeMessage) string {
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

// bodyPreview returns at most BodyPreviewLimit characters of body.
func bodyPreview(body []byte) string {
	s := strings.ToValidUTF8(string(body), "�")
	if utf8.RuneCountInString(s) <= BodyPreviewLimit {
		return s
	}
	n := 0
	for i := range s {
		if n == BodyPreviewLimit {
			return s[:i]
		}
		n++
	}
	return s
}
