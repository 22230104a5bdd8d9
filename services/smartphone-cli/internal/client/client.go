// Package client talks to the smartphone REST API.
package client

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
)

const DeleteCodeHeader = "x-delete-code"

// Smartphone is a record as the API returns it. Fields are free-form.
type Smartphone map[string]interface{}

func (p Smartphone) ID() string { return p.str("id") }
func (p Smartphone) Nom() string { return p.str("nom") }
func (p Smartphone) Marque() string { return p.str("marque") }

func (p Smartphone) str(key string) string {
	s, _ := p[key].(string)
	return s
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// Client has no timeout of its own; callers bound requests through ctx.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New takes the collection URL, e.g. http://localhost:5000/api/smartphones.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}

	c := &Client{baseURL: baseURL, httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) List(ctx context.Context) ([]Smartphone, error) {
	var phones []Smartphone
	if err := c.do(ctx, http.MethodGet, "", nil, nil, &phones); err != nil {
		return nil, err
	}
	if phones == nil {
		phones = []Smartphone{}
	}
	return phones, nil
}

func (c *Client) Get(ctx context.Context, id string) (Smartphone, error) {
	var phone Smartphone
	if err := c.do(ctx, http.MethodGet, id, nil, nil, &phone); err != nil {
		return nil, err
	}
	return phone, nil
}

func (c *Client) Create(ctx context.Context, phone Smartphone) (Smartphone, error) {
	var created Smartphone
	if err := c.do(ctx, http.MethodPost, "", phone, nil, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, id string, phone Smartphone) (Smartphone, error) {
	var updated Smartphone
	if err := c.do(ctx, http.MethodPut, id, phone, nil, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id, code string) error {
	header := http.Header{}
	header.Set(DeleteCodeHeader, code)
	return c.do(ctx, http.MethodDelete, id, nil, header, nil)
}

func (c *Client) do(ctx context.Context, method, id string, body interface{}, header http.Header, out interface{}) error {
	target := c.baseURL
	if id != "" {
		target += "/" + url.PathEscape(id)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// errorMessage pulls "error" (or "message") out of an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
