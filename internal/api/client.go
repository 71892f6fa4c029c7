package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/postcardcloud/postcard-go/internal/metrics"
)

const (
	// DefaultBaseURL is the provider integration environment.
	DefaultBaseURL = "https://apiint.post.ch/pcc/"
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the delay before the first retry.
	DefaultRetryDelay = 500 * time.Millisecond
)

// TokenSource supplies bearer tokens.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	// Clear drops the current token so the next AccessToken call
	// re-authenticates.
	Clear(ctx context.Context) error
}

// Config holds the configuration for creating a new API client.
type Config struct {
	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string
	// Tokens supplies bearer tokens. Required.
	Tokens TokenSource
	// HTTPClient is used for requests. If nil, a client with Timeout is created.
	HTTPClient *http.Client
	// Timeout applies when HTTPClient is nil. Defaults to DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the number of retries. Zero selects DefaultMaxRetries;
	// a negative value disables retries.
	MaxRetries int
	// RetryDelay is the delay before the first retry. Defaults to DefaultRetryDelay.
	RetryDelay time.Duration
	// RetryOn lists retryable status codes. Empty selects DefaultRetryOn.
	RetryOn []int
	// Limiter throttles outgoing requests when set.
	Limiter *rate.Limiter
	// Logger receives debug events. Defaults to discarding.
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	retry      *RetryConfig
	limiter    *rate.Limiter
	logger     *slog.Logger
	metrics    metrics.Recorder
}

// NewClient creates a new API client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Tokens == nil {
		return nil, errors.New("token source is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	retry := DefaultRetryConfig()
	switch {
	case cfg.MaxRetries < 0:
		retry.MaxRetries = 0
	case cfg.MaxRetries > 0:
		retry.MaxRetries = cfg.MaxRetries
	}
	if cfg.RetryDelay > 0 {
		retry.BaseDelay = cfg.RetryDelay
	}
	if len(cfg.RetryOn) > 0 {
		retry.RetryableOn = retryOn(cfg.RetryOn)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rec := cfg.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     cfg.Tokens,
		httpClient: httpClient,
		retry:      retry,
		limiter:    cfg.Limiter,
		logger:     logger,
		metrics:    rec,
	}, nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// MultipartFile is a file upload sent as multipart/form-data.
type MultipartFile struct {
	// FieldName is the form field, "image" or "stamp".
	FieldName string
	// FileName defaults to the base name of Path.
	FileName string
	Path     string
}

// Request describes one API call.
type Request struct {
	// Operation names the call for logs and metrics.
	Operation string
	Method    string
	Path      string
	Query     url.Values
	// JSON is encoded as the request body when set.
	JSON any
	// Multipart is sent instead of JSON when set.
	Multipart *MultipartFile
}

type encodedBody struct {
	data        []byte
	contentType string
}

func (r Request) encode() (encodedBody, error) {
	switch {
	case r.Multipart != nil:
		return encodeMultipart(r.Multipart)
	case r.JSON != nil:
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return encodedBody{}, fmt.Errorf("failed to marshal request body: %w", err)
		}
		return encodedBody{data: data, contentType: "application/json"}, nil
	default:
		return encodedBody{contentType: "application/json"}, nil
	}
}

func encodeMultipart(f *MultipartFile) (encodedBody, error) {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return encodedBody{}, fmt.Errorf("failed to read upload: %w", err)
	}

	name := f.FileName
	if name == "" {
		name = filepath.Base(f.Path)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.FieldName, name))
	h.Set("Content-Type", http.DetectContentType(content))

	part, err := w.CreatePart(h)
	if err != nil {
		return encodedBody{}, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return encodedBody{}, fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := w.Close(); err != nil {
		return encodedBody{}, fmt.Errorf("failed to close multipart body: %w", err)
	}

	return encodedBody{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

type response struct {
	statusCode  int
	contentType string
	body        []byte
	url         string
	requestID   string
}

// Do sends r, classifies the response and decodes a successful body into
// result when result is non-nil.
func (c *Client) Do(ctx context.Context, r Request, result any) error {
	start := time.Now()
	err := c.do(ctx, r, result)
	c.metrics.RecordRequest(r.Operation, metrics.Outcome(err), time.Since(start))
	return err
}

func (c *Client) do(ctx context.Context, r Request, result any) error {
	body, err := r.encode()
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, r, body)
	if err != nil {
		return err
	}

	if resp.statusCode == http.StatusUnauthorized {
		c.logger.DebugContext(ctx, "unauthorized, refreshing token", "operation", r.Operation)
		if err := c.tokens.Clear(ctx); err != nil {
			c.logger.DebugContext(ctx, "token clear failed", "error", err)
		}
		if resp, err = c.send(ctx, r, body); err != nil {
			return err
		}
	}

	cls := Classify(ClassifyInput{
		TokenEndpoint: IsTokenEndpoint(resp.url),
		StatusCode:    resp.statusCode,
		ContentType:   resp.contentType,
		Body:          resp.body,
	})
	c.logger.DebugContext(ctx, "postcard api response",
		"operation", r.Operation,
		"status", resp.statusCode,
		"kind", cls.Kind.String(),
		"request_id", resp.requestID,
	)

	if cls.Failed() {
		return &APIError{
			StatusCode:  resp.statusCode,
			Message:     cls.Message,
			Errors:      cls.Errors,
			BodyPreview: cls.BodyPreview,
			Kind:        cls.Kind,
			RequestID:   resp.requestID,
		}
	}

	if result == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// send performs the request with retries for network errors and retryable
// statuses. The returned response has its body fully read.
func (c *Client) send(ctx context.Context, r Request, body encodedBody) (*response, error) {
	fullURL := c.baseURL + r.Path
	if len(r.Query) > 0 {
		fullURL += "?" + r.Query.Encode()
	}

	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &NetworkError{Err: err, URL: fullURL, Attempt: attempt + 1}
			}
		}

		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, &NetworkError{Err: ctxErr, URL: fullURL, Attempt: attempt + 1}
			}
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, r.Method, fullURL, bytes.NewReader(body.data))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		requestID := uuid.NewString()
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", body.contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-Request-ID", requestID)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		var data []byte
		if err == nil {
			data, err = io.ReadAll(resp.Body)
			resp.Body.Close()
		}

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, &NetworkError{Err: ctxErr, URL: fullURL, Attempt: attempt + 1}
			}
			if c.retry.ShouldRetryError(attempt, err) {
				c.logger.DebugContext(ctx, "request failed, retrying",
					"operation", r.Operation, "attempt", attempt+1, "error", err)
				if werr := c.retry.Wait(ctx, attempt, 0); werr != nil {
					return nil, &NetworkError{Err: werr, URL: fullURL, Attempt: attempt + 1}
				}
				continue
			}
			return nil, &NetworkError{Err: err, URL: fullURL, Attempt: attempt + 1}
		}

		c.logger.DebugContext(ctx, "postcard api request",
			"operation", r.Operation,
			"method", r.Method,
			"path", r.Path,
			"status", resp.StatusCode,
			"duration", time.Since(start),
			"attempt", attempt+1,
		)

		if c.retry.ShouldRetry(attempt, resp.StatusCode) {
			if werr := c.retry.Wait(ctx, attempt, RetryAfter(resp.Header.Get("Retry-After"), time.Now())); werr != nil {
				return nil, &NetworkError{Err: werr, URL: fullURL, Attempt: attempt + 1}
			}
			continue
		}

		return &response{
			statusCode:  resp.StatusCode,
			contentType: resp.Header.Get("Content-Type"),
			body:        data,
			url:         fullURL,
			requestID:   requestID,
		}, nil
	}
}
