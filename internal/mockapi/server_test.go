package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/todoterm/internal/todos"
)

func newTestServer(t *testing.T, opts Options, seed ...todos.Item) (*httptest.Server, *Repository) {
	t.Helper()
	repo := NewRepository(seed...)
	srv := httptest.NewServer(NewServer(repo, opts).Handler())
	t.Cleanup(srv.Close)
	return srv, repo
}

func TestServer_ListScopesByUser(t *testing.T) {
	srv, _ := newTestServer(t, Options{Logger: zerolog.Nop()},
		todos.Item{ID: 1, UserID: 1, Title: "A"},
		todos.Item{ID: 2, UserID: 2, Title: "B"},
		todos.Item{ID: 3, UserID: 1, Title: "C", Completed: true},
	)

	resp, err := http.Get(srv.URL + "/todos?userId=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var items []todos.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.Equal(t, []todos.Item{
		{ID: 1, UserID: 1, Title: "A"},
		{ID: 3, UserID: 1, Title: "C", Completed: true},
	}, items)
}

func TestServer_ListEmptyIsArray(t *testing.T) {
	srv, _ := newTestServer(t, Options{Logger: zerolog.Nop()})

	resp, err := http.Get(srv.URL + "/todos?userId=7")
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestServer_ListRequiresNumericUser(t *testing.T) {
	srv, _ := newTestServer(t, Options{Logger: zerolog.Nop()})

	for _, q := range []string{"", "?userId=abc"} {
		resp, err := http.Get(srv.URL + "/todos" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestServer_Create(t *testing.T) {
	srv, repo := newTestServer(t, Options{Logger: zerolog.Nop()}, todos.Item{ID: 4, UserID: 1, Title: "A"})

	body := `{"title":"Buy milk","userId":1,"completed":false}`
	resp, err := http.Post(srv.URL+"/todos", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item todos.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	assert.Equal(t, todos.Item{ID: 5, UserID: 1, Title: "Buy milk"}, item)
	assert.Equal(t, 2, repo.Len())
}

func TestServer_CreateRejectsBadInput(t *testing.T) {
	srv, repo := newTestServer(t, Options{Logger: zerolog.Nop()})

	for _, body := range []string{`{"title":"   ","userId":1}`, `not json`} {
		resp, err := http.Post(srv.URL+"/todos", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
	assert.Equal(t, 0, repo.Len())
}

func TestServer_DeleteAndPatch(t *testing.T) {
	srv, repo := newTestServer(t, Options{Logger: zerolog.Nop()}, todos.Item{ID: 1, UserID: 1, Title: "A"})

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/todos/1", strings.NewReader(`{"completed":true}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	var item todos.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	resp.Body.Close()
	assert.True(t, item.Completed)
	assert.Equal(t, "A", item.Title)

	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/todos/1", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, repo.Len())

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_WithClient(t *testing.T) {
	srv, _ := newTestServer(t, Options{Logger: zerolog.Nop()})
	client, err := todos.NewClient(srv.URL, 3)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := client.Create(ctx, "Write tests")
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.UserID)

	updated, err := client.SetCompleted(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	items, err := client.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []todos.Item{updated}, items)

	require.NoError(t, client.Delete(ctx, created.ID))

	err = client.Delete(ctx, created.ID)
	var statusErr *todos.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.True(t, statusErr.NotFound())
}

func TestServer_FailRate(t *testing.T) {
	srv, _ := newTestServer(t, Options{
		Logger:   zerolog.Nop(),
		FailRate: 0.5,
		Float64:  func() float64 { return 0.1 },
	})

	resp, err := http.Get(srv.URL + "/todos?userId=1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServer_Latency(t *testing.T) {
	srv, _ := newTestServer(t, Options{Logger: zerolog.Nop(), Latency: 50 * time.Millisecond})

	start := time.Now()
	resp, err := http.Get(srv.URL + "/todos?userId=1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

func TestServer_LogsRequests(t *testing.T) {
	var buf lockedBuffer
	srv, _ := newTestServer(t, Options{Logger: zerolog.New(&buf)})

	resp, err := http.Get(srv.URL + "/todos?userId=1")
	require.NoError(t, err)
	resp.Body.Close()

	require.Eventually(t, func() bool { return len(buf.Bytes()) > 0 }, time.Second, 5*time.Millisecond)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "mockapi", entry["cmp"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/todos", entry["path"])
	assert.EqualValues(t, 200, entry["status"])
}

func TestServer_LogsAbandonedRequest(t *testing.T) {
	var buf lockedBuffer
	srv, _ := newTestServer(t, Options{Logger: zerolog.New(&buf), Latency: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/todos?userId=1", nil)
	require.NoError(t, err)
	_, err = http.DefaultClient.Do(req)
	require.Error(t, err)

	require.Eventually(t, func() bool { return len(buf.Bytes()) > 0 }, 2*time.Second, 5*time.Millisecond)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.EqualValues(t, 499, entry["status"])
	assert.Equal(t, "warn", entry["level"])
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServer(NewRepository(), Options{Logger: zerolog.Nop()}).Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/todos?userId=1")
	require.NoError(t, err)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: 1
  userId: 1
  title: Buy milk
- id: 2
  userId: 1
  title: Walk dog
  completed: true
`), 0o644))

	items, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, []todos.Item{
		{ID: 1, UserID: 1, Title: "Buy milk"},
		{ID: 2, UserID: 1, Title: "Walk dog", Completed: true},
	}, items)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
