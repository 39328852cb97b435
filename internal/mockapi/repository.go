package mockapi

import (
	"errors"
	"strings"
	"sync"

	"github.com/five82/todoterm/internal/todos"
)

var (
	// ErrNotFound is returned for ids the repository does not hold.
	ErrNotFound = errors.New("todo not found")
	// ErrInvalidTitle is returned for blank titles.
	ErrInvalidTitle = errors.New("title should not be empty")
)

// Repository is an in-memory, insertion-ordered todo store.
type Repository struct {
	mu     sync.RWMutex
	items  []todos.Item
	nextID int64
}

// NewRepository creates a repository holding seed. Ids are assigned after the
// highest seeded id, starting at 1.
func NewRepository(seed ...todos.Item) *Repository {
	r := &Repository{nextID: 1}
	for _, item := range seed {
		if item.ID <= 0 {
			item.ID = r.nextID
		}
		if r.indexLocked(item.ID) >= 0 {
			continue
		}
		r.items = append(r.items, item)
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
	}
	return r
}

// List returns the items owned by userID in insertion order.
func (r *Repository) List(userID int64) []todos.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]todos.Item, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out
}

// Create stores a new item and returns it with its assigned id.
func (r *Repository) Create(req todos.CreateRequest) (todos.Item, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return todos.Item{}, ErrInvalidTitle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item := todos.Item{
		ID:        r.nextID,
		UserID:    req.UserID,
		Title:     title,
		Completed: req.Completed,
	}
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

// Update applies the non-nil fields of req to the item with id.
func (r *Repository) Update(id int64, req todos.UpdateRequest) (todos.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return todos.Item{}, ErrNotFound
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return todos.Item{}, ErrInvalidTitle
		}
		r.items[idx].Title = title
	}
	if req.Completed != nil {
		r.items[idx].Completed = *req.Completed
	}
	return r.items[idx], nil
}

// Delete removes the item with id.
func (r *Repository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return nil
}

// Len returns the number of stored items across all users.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Repository) indexLocked(id int64) int {
	for i, item := range r.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
