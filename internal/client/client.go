// Package client is a typed REST client for the garage API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"garage_admin/internal/domain/entities"
)

const (
	defaultTimeout = 30 * time.Second

	headerIdempotencyKey = "Idempotency-Key"
)

// ErrValidation wraps failures detected before any request is sent.
var ErrValidation = errors.New("validation failed")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// Client holds the session token and one typed accessor per resource.
// It performs no retries.
type Client struct {
	baseURL string
	http    *http.Client
	token   string

	Customers *Resource[entities.Customer]
	Vehicles  *Resource[entities.Vehicle]
	Services  *Resource[entities.Service]
	JobItems  *Resource[entities.JobItem]
	JobCards  *Resource[entities.JobCard]
	Payments  *Resource[entities.Payment]
	// Invoices are created and edited through CreateInvoice and UpdateInvoice.
	Invoices *Collection[entities.Invoice]
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Customers = newResource[entities.Customer](c, "/customers")
	c.Vehicles = newResource[entities.Vehicle](c, "/vehicles")
	c.Services = newResource[entities.Service](c, "/services")
	c.JobItems = newResource[entities.JobItem](c, "/jobitems")
	c.JobCards = newResource[entities.JobCard](c, "/jobcards")
	c.Payments = newResource[entities.Payment](c, "/payments")
	c.Invoices = &Collection[entities.Invoice]{c: c, path: "/invoices"}
	return c
}

func (c *Client) Token() string { return c.token }

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  entities.User `json:"user"`
}

// Login exchanges credentials for a session token and keeps it for the
// following calls.
func (c *Client) Login(ctx context.Context, email, password string) (entities.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return entities.User{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &out); err != nil {
		return entities.User{}, err
	}
	c.token = out.Token
	return out.User, nil
}

func (c *Client) Me(ctx context.Context) (entities.User, error) {
	var u entities.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u)
	return u, err
}

func (c *Client) do(ctx context.Context, method, path string, header http.Header, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
