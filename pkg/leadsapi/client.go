// Package leadsapi is the HTTP client of the lead service REST API.
package leadsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/logger"
	"github.com/jordanlanch/leadmanager/pkg/metrics"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/jordanlanch/leadmanager/pkg/session"
)

var (
	// ErrEmptyBaseURL is returned when the client has no base URL
	ErrEmptyBaseURL = errors.New("lead service base URL is empty")
	// ErrEmptyID is returned when a lead ID is required but empty
	ErrEmptyID = errors.New("lead id is empty")
)

// APIError is a non-2xx response from the lead service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("lead service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("lead service returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known statuses onto domain errors so callers can use the
// domain.IsX helpers
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewUnauthorizedError()
	case http.StatusNotFound:
		return domain.NewNotFoundError("lead")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewValidationError(e.Message)
	case http.StatusConflict:
		return domain.NewConflictError(e.Message)
	}
	return nil
}

// Client talks to the lead service
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      session.Provider
	validate   *validator.Validate
	log        logger.Logger
	metrics    *metrics.ClientMetrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics sets the client metrics
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the API rooted at baseURL (e.g. http://localhost:5000/api).
// creds supplies the bearer token for lead routes.
func New(baseURL string, creds session.Provider, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		creds:      creds,
		validate:   models.NewValidator(),
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListLeads fetches one page of leads
func (c *Client) ListLeads(ctx context.Context, req models.LeadListRequest) (*models.LeadListResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var resp models.LeadListResponse
	if err := c.do(ctx, "list_leads", http.MethodGet, "/leads", req.Values(), nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetLead fetches a single lead
func (c *Client) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	var lead models.Lead
	if err := c.do(ctx, "get_lead", http.MethodGet, "/leads/"+url.PathEscape(id), nil, nil, true, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// SeedLeads asks the service to replace its leads with generated samples
func (c *Client) SeedLeads(ctx context.Context) (*models.SeedResponse, error) {
	var resp models.SeedResponse
	if err := c.do(ctx, "seed_leads", http.MethodPost, "/leads/seed", nil, nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAnalytics fetches dashboard analytics. Both the {"data": {...}} envelope
// and a bare analytics object are accepted.
func (c *Client) GetAnalytics(ctx context.Context) (*models.Analytics, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "get_analytics", http.MethodGet, "/leads/analytics", nil, nil, true, &raw); err != nil {
		return nil, err
	}
	return decodeAnalytics(raw)
}

func decodeAnalytics(raw json.RawMessage) (*models.Analytics, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode analytics: %w", err)
	}

	body := raw
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		body = envelope.Data
	}

	var analytics models.Analytics
	if err := json.Unmarshal(body, &analytics); err != nil {
		return nil, fmt.Errorf("failed to decode analytics: %w", err)
	}
	return &analytics, nil
}

// CreateLead creates a lead
func (c *Client) CreateLead(ctx context.Context, input models.LeadInput) (*models.Lead, error) {
	if err := c.validate.Struct(input); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var lead models.Lead
	if err := c.do(ctx, "create_lead", http.MethodPost, "/leads", nil, input, true, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLead replaces the editable fields of a lead
func (c *Client) UpdateLead(ctx context.Context, id string, input models.LeadInput) (*models.Lead, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if err := c.validate.Struct(input); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var lead models.Lead
	if err := c.do(ctx, "update_lead", http.MethodPut, "/leads/"+url.PathEscape(id), nil, input, true, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var resp models.AuthResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, req, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns its token
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var resp models.AuthResponse
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", nil, req, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs a request and decodes a 2xx JSON response into dest
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body any, auth bool, dest any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordAPIRequest(endpoint, err == nil, time.Since(start))
	}()

	if c.baseURL == "" {
		return ErrEmptyBaseURL
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		token, err := c.creds.Token(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("lead service request failed", "endpoint", endpoint, "error", err)
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
		c.log.Warn("lead service returned an error", "endpoint", endpoint, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	c.log.Debug("lead service request completed", "endpoint", endpoint, "status", resp.StatusCode, "duration", time.Since(start))

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// errorMessage extracts the message of an error body, which may carry
// "message", "error" or both
func errorMessage(data []byte) string {
	var body models.ErrorResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
