package pushover

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.pushover.net/1/messages.json"

// Client alerts the operator when the menu feed cannot be reached.
type Client struct {
	token      string
	userKey    string
	title      string
	endpoint   string
	httpClient *http.Client
}

func NewClient(token, userKey, title string) *Client {
	return NewClientWithURL(token, userKey, title, defaultEndpoint)
}

func NewClientWithURL(token, userKey, title, endpoint string) *Client {
	if title == "" {
		title = "Studentenfutter"
	}
	return &Client{
		token:      token,
		userKey:    userKey,
		title:      title,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) Notify(ctx context.Context, message string) error {
	if c.token == "" || c.userKey == "" {
		return nil
	}

	data := url.Values{}
	data.Set("token", c.token)
	data.Set("user", c.userKey)
	data.Set("title", c.title)
	data.Set("message", truncate(message, 1024))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pushover error %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return nil
}

// truncate keeps message within Pushover's limit without splitting a rune.
func truncate(message string, limit int) string {
	if len(message) <= limit {
		return message
	}
	cut := message[:limit]
	for len(cut) > 0 && !utf8Start(message[len(cut)]) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}
