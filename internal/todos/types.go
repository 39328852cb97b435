package todos

import (
	"fmt"
	"net/http"
	"strings"
)

// Item mirrors a todo resource as served by the backend.
type Item struct {
	ID        int64  `json:"id" yaml:"id"`
	UserID    int64  `json:"userId" yaml:"userId"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// IsPersisted reports whether the item carries a server-assigned id.
// Placeholders built while a create is in flight use id 0.
func (i Item) IsPersisted() bool {
	return i.ID > 0
}

// CreateRequest is the POST /todos payload.
type CreateRequest struct {
	Title     string `json:"title"`
	UserID    int64  `json:"userId"`
	Completed bool   `json:"completed"`
}

// UpdateRequest is the PATCH /todos/{id} payload. Nil fields are left as-is.
type UpdateRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// StatusError reports a response with a 4xx or 5xx status code.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Code)
}

// NotFound reports whether the backend answered 404.
func (e *StatusError) NotFound() bool {
	return e.Code == http.StatusNotFound
}

// CountActive returns the number of items that are not completed.
func CountActive(items []Item) int {
	n := 0
	for _, item := range items {
		if !item.Completed {
			n++
		}
	}
	return n
}

// CountCompleted returns the number of completed items.
func CountCompleted(items []Item) int {
	return len(items) - CountActive(items)
}

// NormalizeTitle trims surrounding whitespace from a title.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}
