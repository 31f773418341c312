// Package hyperstack provides a minimal client for the Hyperstack compute API.
// Only the calls the cloud adapter needs are implemented.
package hyperstack

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"cloud-adapter/internal/errors"
)

const (
	// DefaultAPIURL is the public compute API endpoint
	DefaultAPIURL = "https://infrahub-api.nexgencloud.com/v1"

	// APIKeyPath is where the API key is stored
	APIKeyPath = "~/.hyperstack/api_key"

	// APIKeysURL is the console page that issues API keys
	APIKeysURL = "https://console.hyperstack.cloud/api-keys"

	defaultTimeout = 30 * time.Second
)

// Instance is a virtual machine as reported by the compute API
type Instance struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Flavor      Named  `json:"flavor"`
	Environment Named  `json:"environment"`
}

// Named is a nested object the API identifies by name
type Named struct {
	Name string `json:"name"`
}

type listInstancesResponse struct {
	Status    bool       `json:"status"`
	Message   string     `json:"message"`
	Instances []Instance `json:"instances"`
}

// APIError is a non-2xx response from the compute API
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("hyperstack api: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("hyperstack api: HTTP %d: %s", e.StatusCode, e.Message)
}

// Client talks to the compute API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a client authenticated with apiKey
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultAPIURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromFile reads the API key from path ("~" is expanded)
func NewClientFromFile(path string, opts ...ClientOption) (*Client, error) {
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeCredentials, err, "read api key %s", path)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return nil, errors.Newf(errors.TypeCredentials, "api key file %s is empty", path)
	}
	return NewClient(key, opts...), nil
}

// ListInstances returns the caller's virtual machines
func (c *Client) ListInstances(ctx context.Context) ([]Instance, error) {
	var resp listInstancesResponse
	if err := c.get(ctx, "/core/virtual-machines", &resp); err != nil {
		return nil, err
	}
	return resp.Instances, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("api_key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// IsConnectivityError reports whether err means the API could not be
// reached at all: refused or reset connections, DNS failures and timeouts.
// Cancellation by the caller is not a connectivity error.
func IsConnectivityError(err error) bool {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return false
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return false
	}
	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if stderrors.As(err, &opErr) {
		return true
	}
	if stderrors.Is(err, syscall.ECONNREFUSED) || stderrors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	return stderrors.As(err, &urlErr) && stderrors.Is(urlErr.Err, io.EOF)
}

// ExpandPath resolves a leading "~" to the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.TypeConfig, "resolve home directory", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
