package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// APIKeyEnv names the environment variable FromEnv reads the bearer token from.
const APIKeyEnv = "API_KEY"

// maxErrorBody caps how much of an error response is kept in a StatusError.
const maxErrorBody = 1 << 20

// Config controls retries, timeouts and authentication.
type Config struct {
	// Retry is the number of retries after the first attempt.
	Retry int
	// Timeout bounds each attempt and is the lower retry interval.
	Timeout time.Duration
	// MaxRetryInterval is the upper retry interval.
	MaxRetryInterval time.Duration
	// APIKey, when set, is sent as a bearer token on every request.
	APIKey string
	// Logger receives one line per attempt; nil discards them.
	Logger *log.Logger
}

// DefaultConfig returns 3 retries, a 60s timeout and a 600s retry cap.
func DefaultConfig() Config {
	return Config{
		Retry:            3,
		Timeout:          60 * time.Second,
		MaxRetryInterval: 600 * time.Second,
	}
}

// Client sends JSON requests with retries and bearer authentication.
type Client struct {
	rc     *retryablehttp.Client
	apiKey string
}

// New builds a client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.Retry < 0 {
		return nil, fmt.Errorf("httpclient: negative retry count %d", cfg.Retry)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("httpclient: timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.MaxRetryInterval < cfg.Timeout {
		return nil, fmt.Errorf("httpclient: max retry interval %s below timeout %s", cfg.MaxRetryInterval, cfg.Timeout)
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.RetryMax = cfg.Retry
	rc.RetryWaitMin = cfg.Timeout
	rc.RetryWaitMax = cfg.MaxRetryInterval
	rc.Backoff = JitterBackoff
	// Keep the final response so its body can be reported.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if cfg.Logger != nil {
		rc.Logger = cfg.Logger
		rc.RequestLogHook = func(l retryablehttp.Logger, req *http.Request, attempt int) {
			if l != nil {
				l.Printf("[http] %s %s attempt=%d", req.Method, req.URL.Redacted(), attempt+1)
			}
		}
	} else {
		rc.Logger = nil
	}

	return &Client{rc: rc, apiKey: cfg.APIKey}, nil
}

// FromEnv builds a client without retries, taking the bearer token from API_KEY if set.
func FromEnv() (*Client, error) {
	cfg := DefaultConfig()
	cfg.Retry = 0
	cfg.APIKey = os.Getenv(APIKeyEnv)
	return New(cfg)
}

// WithAPIKey builds a client without retries that authenticates with apiKey.
func WithAPIKey(apiKey string) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Retry = 0
	cfg.APIKey = apiKey
	return New(cfg)
}

// StandardClient returns an *http.Client that routes through the retrying transport.
func (c *Client) StandardClient() *http.Client { return c.rc.StandardClient() }

// StatusError is returned for 4xx and 5xx responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Send issues method to url with body JSON-encoded (nil sends no body) and
// decodes a successful response into out (nil discards it).
func (c *Client) Send(ctx context.Context, method, url string, body, out any) error {
	req, err := c.newRequest(ctx, method, url, body)
	if err != nil {
		return err
	}
	resp, err := c.rc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(text)),
		}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, url, err)
	}
	return nil
}

// TakeData sends a request and decodes the JSON response body into a T.
func TakeData[T any](ctx context.Context, c *Client, method, url string, body any) (T, error) {
	var out T
	if err := c.Send(ctx, method, url, body, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, body any) (*retryablehttp.Request, error) {
	var payload any
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = b
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}
