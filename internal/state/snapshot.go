package state

import (
	"github.com/five82/todoterm/internal/todos"
)

// Snapshot is the complete client-side state of the todo list. Transition
// methods are pure: they return a new Snapshot and never write through the
// receiver's slice or map.
type Snapshot struct {
	Items     []todos.Item
	Transient *todos.Item
	Pending   map[int64]struct{}
	Loading   bool
	Loaded    bool
	Filter    todos.Filter
	Notice    Notice
}

// Visible returns the items selected by the current filter.
func (s Snapshot) Visible() []todos.Item {
	return todos.Apply(s.Items, s.Filter)
}

// ActiveCount returns the number of incomplete items.
func (s Snapshot) ActiveCount() int {
	return todos.CountActive(s.Items)
}

// CompletedCount returns the number of completed items.
func (s Snapshot) CompletedCount() int {
	return todos.CountCompleted(s.Items)
}

// CanClearCompleted reports whether clear-completed is enabled.
func (s Snapshot) CanClearCompleted() bool {
	return !s.Loading && s.CompletedCount() > 0
}

// IsPending reports whether id awaits a delete or update response.
func (s Snapshot) IsPending(id int64) bool {
	_, ok := s.Pending[id]
	return ok
}

// Find returns the item with the given id.
func (s Snapshot) Find(id int64) (todos.Item, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return todos.Item{}, false
}

// HasError reports whether an error banner is set.
func (s Snapshot) HasError() bool {
	return s.Notice.Active()
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	dup := s
	dup.Items = cloneItems(s.Items)
	dup.Pending = clonePending(s.Pending)
	if s.Transient != nil {
		t := *s.Transient
		dup.Transient = &t
	}
	return dup
}

// LoadStarted marks the initial fetch as in flight.
func (s Snapshot) LoadStarted() Snapshot {
	s = s.Clone()
	s.Loading = true
	return s
}

// LoadSucceeded replaces the list with the server's items. Duplicate ids keep
// their first occurrence.
func (s Snapshot) LoadSucceeded(items []todos.Item) Snapshot {
	s = s.Clone()
	s.Items = dedupe(items)
	s.Loaded = true
	s.Loading = false
	return s
}

// LoadFailed raises load-failed and leaves the list untouched.
func (s Snapshot) LoadFailed() Snapshot {
	s = s.Clone().withNotice(ErrorLoad)
	s.Loading = false
	return s
}

// EmptyTitle raises empty-title without touching anything else.
func (s Snapshot) EmptyTitle() Snapshot {
	return s.Clone().withNotice(ErrorEmptyTitle)
}

// CreateStarted installs the placeholder shown while the create is in flight.
func (s Snapshot) CreateStarted(title string, userID int64) Snapshot {
	s = s.Clone()
	s.Transient = &todos.Item{ID: 0, UserID: userID, Title: title, Completed: false}
	s.Loading = true
	return s
}

// CreateSucceeded appends the stored item and drops the placeholder. An id
// that is already listed is replaced in place so the list stays unique.
func (s Snapshot) CreateSucceeded(item todos.Item) Snapshot {
	s = s.Clone()
	if idx := indexOf(s.Items, item.ID); idx >= 0 {
		s.Items[idx] = item
	} else {
		s.Items = append(s.Items, item)
	}
	s.Transient = nil
	s.Loading = false
	return s
}

// CreateFailed drops the placeholder without appending anything.
func (s Snapshot) CreateFailed() Snapshot {
	s = s.Clone().withNotice(ErrorCreate)
	s.Transient = nil
	s.Loading = false
	return s
}

// DeleteStarted marks id as pending.
func (s Snapshot) DeleteStarted(id int64) Snapshot {
	s = s.Clone()
	s.Loading = true
	s.Pending[id] = struct{}{}
	return s
}

// DeleteSucceeded removes the item and its pending marker together.
func (s Snapshot) DeleteSucceeded(id int64) Snapshot {
	s = s.Clone()
	if idx := indexOf(s.Items, id); idx >= 0 {
		s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
	}
	delete(s.Pending, id)
	s.Loading = false
	return s
}

// DeleteFailed keeps the item and empties the whole pending set, abandoning
// busy tracking for any other overlapping deletes.
func (s Snapshot) DeleteFailed(id int64) Snapshot {
	s = s.Clone().withNotice(ErrorDelete)
	s.Pending = map[int64]struct{}{}
	s.Loading = false
	return s
}

// ToggleStarted marks id as pending while its completed flag is updated.
func (s Snapshot) ToggleStarted(id int64) Snapshot {
	s = s.Clone()
	s.Loading = true
	s.Pending[id] = struct{}{}
	return s
}

// ToggleSucceeded stores the server's copy of the item under the requested
// id. Fields the response leaves empty keep their local values.
func (s Snapshot) ToggleSucceeded(id int64, item todos.Item) Snapshot {
	s = s.Clone()
	if idx := indexOf(s.Items, id); idx >= 0 {
		current := s.Items[idx]
		item.ID = id
		if item.UserID == 0 {
			item.UserID = current.UserID
		}
		if item.Title == "" {
			item.Title = current.Title
		}
		s.Items[idx] = item
	}
	delete(s.Pending, id)
	s.Loading = false
	return s
}

// ToggleFailed leaves the item unchanged and raises update-failed.
func (s Snapshot) ToggleFailed(id int64) Snapshot {
	s = s.Clone().withNotice(ErrorUpdate)
	delete(s.Pending, id)
	s.Loading = false
	return s
}

// WithFilter changes the display filter.
func (s Snapshot) WithFilter(f todos.Filter) Snapshot {
	s = s.Clone()
	s.Filter = f
	return s
}

// Dismissed clears the error banner. Seq is kept so later notices still
// advance it.
func (s Snapshot) Dismissed() Snapshot {
	s = s.Clone()
	s.Notice = Notice{Seq: s.Notice.Seq}
	return s
}

func (s Snapshot) withNotice(kind ErrorKind) Snapshot {
	s.Notice = Notice{Kind: kind, Message: kind.Message(), Seq: s.Notice.Seq + 1}
	return s
}

func indexOf(items []todos.Item, id int64) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func dedupe(items []todos.Item) []todos.Item {
	seen := make(map[int64]struct{}, len(items))
	out := make([]todos.Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

func cloneItems(items []todos.Item) []todos.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]todos.Item, len(items))
	copy(dup, items)
	return dup
}

func clonePending(pending map[int64]struct{}) map[int64]struct{} {
	dup := make(map[int64]struct{}, len(pending))
	for id := range pending {
		dup[id] = struct{}{}
	}
	return dup
}
