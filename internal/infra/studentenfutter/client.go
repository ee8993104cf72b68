package studentenfutter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studentenfutter/internal/domain"
)

const DefaultBaseURL = "https://api.studentenfutter-os.de"

// ErrMalformedMenu marks a response that arrived but could not be read as a
// menu: a non-2xx status or a body that is not a JSON array of items.
var ErrMalformedMenu = errors.New("malformed menu response")

// ConnectivityError wraps any transport failure reaching the feed.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return "menu feed unreachable: " + e.Err.Error()
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

func NewClient(authToken string, timeout time.Duration) *Client {
	return NewClientWithURL(DefaultBaseURL, authToken, timeout)
}

func NewClientWithURL(baseURL, authToken string, timeout time.Duration) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &Client{
		baseURL:    baseURL,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// TodayMenu fetches /lunches/today once. It does not retry.
func (c *Client) TodayMenu(ctx context.Context) ([]domain.MenuItem, error) {
	body, err := c.fetch(ctx, "/lunches/today")
	if err != nil {
		return nil, err
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: decoding items: %v", ErrMalformedMenu, err)
	}

	return items, nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &ConnectivityError{Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrMalformedMenu, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
