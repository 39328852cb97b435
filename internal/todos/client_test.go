package todos

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestNewClient_RejectsNonPositiveUser(t *testing.T) {
	if _, err := NewClient("127.0.0.1:1", 0); err == nil {
		t.Fatalf("NewClient returned nil error for user 0")
	}
}

func TestClient_RoundTripsEndpoints(t *testing.T) {
	t.Parallel()

	var (
		gotUserID    string
		gotCreate    CreateRequest
		gotPatch     map[string]any
		gotDeleteURL string
		gotUserAgent string
		gotCT        string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/todos":
			gotUserID = r.URL.Query().Get("userId")
			_ = json.NewEncoder(w).Encode([]Item{
				{ID: 1, UserID: 7, Title: "A"},
				{ID: 2, UserID: 7, Title: "B", Completed: true},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/todos":
			gotCT = r.Header.Get("Content-Type")
			_ = json.NewDecoder(r.Body).Decode(&gotCreate)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(Item{ID: 5, UserID: gotCreate.UserID, Title: gotCreate.Title})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/todos/2":
			_ = json.NewDecoder(r.Body).Decode(&gotPatch)
			_ = json.NewEncoder(w).Encode(Item{ID: 2, UserID: 7, Title: "B", Completed: false})
		case r.Method == http.MethodDelete:
			gotDeleteURL = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", 7, WithUserAgent("todoterm/test"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	items, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 2 || items[0].ID != 1 || !items[1].Completed {
		t.Fatalf("List items = %#v, want ids 1,2 with 2 completed", items)
	}
	if gotUserID != "7" {
		t.Fatalf("userId query = %q, want 7", gotUserID)
	}

	created, err := c.Create(ctx, "Buy milk")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 5 || created.Title != "Buy milk" || created.Completed {
		t.Fatalf("Create item = %#v, want id 5 Buy milk", created)
	}
	if gotCreate.UserID != 7 || gotCreate.Title != "Buy milk" || gotCreate.Completed {
		t.Fatalf("Create body = %#v, want user 7 title Buy milk incomplete", gotCreate)
	}
	if !strings.HasPrefix(gotCT, "application/json") {
		t.Fatalf("Content-Type = %q, want application/json", gotCT)
	}

	updated, err := c.SetCompleted(ctx, 2, false)
	if err != nil {
		t.Fatalf("SetCompleted returned error: %v", err)
	}
	if updated.Completed {
		t.Fatalf("SetCompleted item = %#v, want completed=false", updated)
	}
	if v, ok := gotPatch["completed"]; !ok || v != false {
		t.Fatalf("PATCH body = %#v, want completed=false", gotPatch)
	}
	if _, ok := gotPatch["title"]; ok {
		t.Fatalf("PATCH body = %#v, want no title", gotPatch)
	}

	if err := c.Delete(ctx, 5); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if gotDeleteURL != "/api/todos/5" {
		t.Fatalf("DELETE path = %q, want /api/todos/5", gotDeleteURL)
	}

	if gotUserAgent != "todoterm/test" {
		t.Fatalf("User-Agent = %q, want todoterm/test", gotUserAgent)
	}
}

func TestClient_ListEmptyBodyIsEmptySlice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "null")
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 1)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	items, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("List = %#v, want empty non-nil slice", items)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case http.MethodPost:
			http.Error(w, "nope", http.StatusInternalServerError)
		case http.MethodDelete:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 1)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("List error = %v, want decode response error", err)
	}

	_, err = c.Create(context.Background(), "x")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("Create error = %v, want StatusError 500", err)
	}

	err = c.Delete(context.Background(), 3)
	if !errors.As(err, &statusErr) || !statusErr.NotFound() {
		t.Fatalf("Delete error = %v, want StatusError 404", err)
	}
}

func TestClient_RejectsInvalidIDsAndNilReceiver(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", 1)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Delete(context.Background(), 0); err == nil {
		t.Fatalf("Delete(0) returned nil error")
	}
	if _, err := c.SetCompleted(context.Background(), -1, true); err == nil {
		t.Fatalf("SetCompleted(-1) returned nil error")
	}

	var nilClient *Client
	if _, err := nilClient.List(context.Background()); err == nil {
		t.Fatalf("nil client List returned nil error")
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url, 1, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("List error = %v, want execute request error", err)
	}
}

type countingTransport struct {
	next  http.RoundTripper
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.RoundTrip(r)
}

func TestClient_WithHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "[]")
	}))
	t.Cleanup(server.Close)

	transport := &countingTransport{next: server.Client().Transport}
	hc := &http.Client{Transport: transport}

	c, err := NewClient(server.URL, 1, WithTimeout(2*time.Second), WithHTTPClient(hc))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if transport.calls != 1 {
		t.Fatalf("transport calls = %d, want 1", transport.calls)
	}
	if hc.Timeout != 2*time.Second {
		t.Fatalf("timeout = %v, want the configured 2s", hc.Timeout)
	}
}
