// Package validation is a client for the MailboxValidator email verification
// API. It exposes the three remote operations (single validation, disposable
// check, free-provider check) and classifies responses into success records,
// service rejections, and transport errors.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clearlist-hq/clearlist-verifier/pkg/httpclient"
)

const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.mailboxvalidator.com"

	pathSingleValidation = "/v2/validation/single"
	pathDisposableEmail  = "/v2/email/disposable"
	pathFreeEmail        = "/v2/email/free"

	// sourceTag identifies this client implementation to the service.
	sourceTag = "go"

	defaultTimeout = 15 * time.Second
)

// Client performs validation operations against the API. It holds no mutable
// state and is safe for concurrent use when its transport is; the default
// resty transport pools connections and is.
type Client struct {
	httpClient httpclient.Client
	baseURL    string
	apiKey     string
	log        Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient injects a transport, e.g. a mock in tests.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the API host, e.g. a stub server in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if u := strings.TrimSpace(baseURL); u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLogger attaches a logger for the unclassified-status path.
func WithLogger(log Logger) Option {
	return func(c *Client) { c.log = ensureLogger(log) }
}

// New builds a Client for the given API key. The email address and key are
// not validated locally; a malformed address or invalid key is forwarded and
// surfaces as a service-level rejection, not a local error.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: httpclient.NewRestyClient(defaultTimeout),
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		log:        noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateEmail runs the Single Validation API for the given address.
func (c *Client) ValidateEmail(ctx context.Context, emailAddress string) (Result[SingleValidationRecord], error) {
	return call[SingleValidationRecord](ctx, c, pathSingleValidation, emailAddress)
}

// CheckDisposable runs the Disposable Email API for the given address.
func (c *Client) CheckDisposable(ctx context.Context, emailAddress string) (Result[DisposableEmailRecord], error) {
	return call[DisposableEmailRecord](ctx, c, pathDisposableEmail, emailAddress)
}

// CheckFreeEmail runs the Free Email API for the given address.
func (c *Client) CheckFreeEmail(ctx context.Context, emailAddress string) (Result[FreeEmailRecord], error) {
	return call[FreeEmailRecord](ctx, c, pathFreeEmail, emailAddress)
}

// ValidateEmail is a convenience wrapper constructing a one-off client.
func ValidateEmail(ctx context.Context, emailAddress, apiKey string) (Result[SingleValidationRecord], error) {
	return New(apiKey).ValidateEmail(ctx, emailAddress)
}

// CheckDisposable is a convenience wrapper constructing a one-off client.
func CheckDisposable(ctx context.Context, emailAddress, apiKey string) (Result[DisposableEmailRecord], error) {
	return New(apiKey).CheckDisposable(ctx, emailAddress)
}

// CheckFreeEmail is a convenience wrapper constructing a one-off client.
func CheckFreeEmail(ctx context.Context, emailAddress, apiKey string) (Result[FreeEmailRecord], error) {
	return New(apiKey).CheckFreeEmail(ctx, emailAddress)
}

// call is the single request path shared by all three operations; they differ
// only in endpoint path and record type.
func call[R Record](ctx context.Context, c *Client, path, emailAddress string) (Result[R], error) {
	query := url.Values{}
	query.Set("email", emailAddress)
	query.Set("key", c.apiKey)
	query.Set("format", "json")
	query.Set("source", sourceTag)

	resp, err := c.httpClient.Get(ctx, c.baseURL+path, query, nil)
	if err != nil {
		return Result[R]{}, fmt.Errorf("request %s: %w", path, err)
	}

	status := resp.StatusCode()
	body := resp.Body()

	switch status {
	case http.StatusOK:
		var rec R
		if err := json.Unmarshal(body, &rec); err != nil {
			return Result[R]{}, fmt.Errorf("decode %s response: %w", path, err)
		}
		if err := rec.validate(); err != nil {
			return Result[R]{}, fmt.Errorf("decode %s response: %w", path, err)
		}
		return Result[R]{Record: &rec, StatusCode: status}, nil

	case http.StatusBadRequest, http.StatusUnauthorized:
		var env errorEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return Result[R]{}, fmt.Errorf("decode %s error response: %w", path, err)
		}
		if env.Error == (APIError{}) {
			return Result[R]{}, fmt.Errorf("decode %s error response: status %d body lacks error payload: %s", path, status, responseSnippet(body))
		}
		return Result[R]{APIError: &env.Error, StatusCode: status}, nil

	default:
		// Statuses outside the documented set yield an empty result rather
		// than an error; existing consumers rely on this.
		c.log.WarnObj("api returned unclassified status", "api_response", map[string]any{
			"path":   path,
			"status": status,
			"body":   responseSnippet(body),
		})
		return Result[R]{StatusCode: status}, nil
	}
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
