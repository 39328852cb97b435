package todos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// Client talks to the todos REST collection on behalf of a single user.
type Client struct {
	baseURL   *url.URL
	userID    int64
	http      *http.Client
	userAgent string
}

const (
	DefaultBaseURL        = "http://127.0.0.1:3005"
	DefaultRequestTimeout = 5 * time.Second
	defaultUserAgent      = "todoterm/dev"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient swaps the underlying http.Client. The configured timeout is
// kept when the replacement has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		if hc.Timeout == 0 {
			hc.Timeout = c.http.Timeout
		}
		c.http = hc
	}
}

// NewClient builds a Client for the collection rooted at baseURL.
func NewClient(baseURL string, userID int64, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, fmt.Errorf("user id must be positive, got %d", userID)
	}
	c := &Client{
		baseURL: base,
		userID:  userID,
		http: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UserID returns the user the client is scoped to.
func (c *Client) UserID() int64 {
	if c == nil {
		return 0
	}
	return c.userID
}

// BaseURL returns the normalized collection root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// List retrieves every todo owned by the client's user.
func (c *Client) List(ctx context.Context) ([]Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("userId", strconv.FormatInt(c.userID, 10))
	var items []Item
	if err := c.do(ctx, http.MethodGet, "todos", values, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Create persists a new, incomplete todo and returns the stored record.
func (c *Client) Create(ctx context.Context, title string) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	body := CreateRequest{Title: title, UserID: c.userID, Completed: false}
	var item Item
	if err := c.do(ctx, http.MethodPost, "todos", nil, body, &item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete removes the todo with the given id. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return fmt.Errorf("item id required")
	}
	return c.do(ctx, http.MethodDelete, "todos/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// SetCompleted updates the completed flag of a todo and returns the stored record.
func (c *Client) SetCompleted(ctx context.Context, id int64, completed bool) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return Item{}, fmt.Errorf("item id required")
	}
	body := UpdateRequest{Completed: &completed}
	var item Item
	if err := c.do(ctx, http.MethodPatch, "todos/"+strconv.FormatInt(id, 10), nil, body, &item); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (c *Client) do(ctx context.Context, method, rel string, query url.Values, body, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path = path.Join("/", c.baseURL.Path, rel)
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Method: method, Path: reqURL.Path, Code: resp.StatusCode}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
