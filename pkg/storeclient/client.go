package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	envViteURL = "VITE_URL"
	envAPIURL  = "API_URL"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// Client talks to one storefront API base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a Client for the provided base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("storeclient: base URL is required")
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("storeclient: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromEnv builds a Client from VITE_URL, falling back to API_URL.
func NewFromEnv(opts ...Option) (*Client, error) {
	base := strings.TrimSpace(os.Getenv(envViteURL))
	if base == "" {
		base = strings.TrimSpace(os.Getenv(envAPIURL))
	}
	if base == "" {
		return nil, fmt.Errorf("storeclient: %s or %s must be set", envViteURL, envAPIURL)
	}
	return New(base, opts...)
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, "login", http.MethodPost, "/user/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, "getProducts", http.MethodGet, "/product/getProducts", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCart fetches the raw cart of userID.
func (c *Client) GetCart(ctx context.Context, token, userID string) (*CartResponse, error) {
	var out CartResponse
	path := "/cart/getCart/" + url.PathEscape(userID)
	if err := c.do(ctx, "getCart", http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddItem(ctx context.Context, token, userID, productID string, quantity int, size string) (*MutationResponse, error) {
	var out MutationResponse
	path := "/cart/addItem/" + url.PathEscape(userID)
	body := map[string]interface{}{"productID": productID, "quantity": quantity, "size": size}
	if err := c.do(ctx, "addItem", http.MethodPost, path, token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteItem removes itemID from the cart of userID.
func (c *Client) DeleteItem(ctx context.Context, token, userID, itemID string) (*MutationResponse, error) {
	var out MutationResponse
	path := "/cart/deleteItem/" + url.PathEscape(userID)
	body := map[string]string{"itemID": itemID}
	if err := c.do(ctx, "deleteItem", http.MethodPatch, path, token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("storeclient: encode %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("storeclient: build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
			Body:       data,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage pulls {"error": "..."} out of the body, falling back to the
// plain-text body and then to the status text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(status)
}
