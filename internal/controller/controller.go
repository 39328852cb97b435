// Package controller reconciles the todo list state with the REST backend.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/todoterm/internal/logging"
	"github.com/five82/todoterm/internal/state"
	"github.com/five82/todoterm/internal/todos"
)

var (
	// ErrEmptyTitle is returned when a create is attempted with a blank title.
	ErrEmptyTitle = errors.New("title should not be empty")
	// ErrCreateInFlight is returned while a previous create is unresolved.
	ErrCreateInFlight = errors.New("a todo is already being added")
	// ErrUnknownItem is returned for ids that are not in the list.
	ErrUnknownItem = errors.New("todo not found")
	// ErrPending is returned for ids that already await a response.
	ErrPending = errors.New("todo is busy")
	// ErrMissingID is returned when a create response carries no usable id.
	ErrMissingID = errors.New("server returned a todo without an id")
)

// Resource is the backend the controller reconciles against.
// *todos.Client implements it.
type Resource interface {
	List(ctx context.Context) ([]todos.Item, error)
	Create(ctx context.Context, title string) (todos.Item, error)
	Delete(ctx context.Context, id int64) error
	SetCompleted(ctx context.Context, id int64, completed bool) (todos.Item, error)
}

var _ Resource = (*todos.Client)(nil)

// Controller owns the store and runs each operation's state machine.
// Methods may be called from any goroutine.
type Controller struct {
	api    Resource
	store  *state.Store
	userID int64
	log    zerolog.Logger

	// guards the create placeholder and pending ids between the check and
	// the Started transition
	admit sync.Mutex
	wg    sync.WaitGroup
}

// New builds a Controller. userID stamps the create placeholder.
func New(api Resource, store *state.Store, userID int64, logger zerolog.Logger) *Controller {
	if store == nil {
		store = state.NewStore(0)
	}
	return &Controller{
		api:    api,
		store:  store,
		userID: userID,
		log:    logging.Component(logger, "controller"),
	}
}

// Store exposes the underlying state store.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// Changes signals after every state transition.
func (c *Controller) Changes() <-chan struct{} {
	return c.store.Changes()
}

// Load fetches the list and replaces local state with it.
func (c *Controller) Load(ctx context.Context) error {
	c.store.Apply(state.Snapshot.LoadStarted)

	items, err := c.api.List(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("load todos failed")
		c.store.Apply(state.Snapshot.LoadFailed)
		return err
	}

	c.log.Debug().Int("count", len(items)).Msg("todos loaded")
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		return s.LoadSucceeded(items)
	})
	return nil
}

// Create validates the title, shows a placeholder while the request is in
// flight, and appends the stored item on success. The returned error lets the
// caller keep the typed text when the create did not go through; state has
// already been reconciled either way.
func (c *Controller) Create(ctx context.Context, title string) (todos.Item, error) {
	title = todos.NormalizeTitle(title)
	if title == "" {
		c.store.Apply(state.Snapshot.EmptyTitle)
		return todos.Item{}, ErrEmptyTitle
	}

	c.admit.Lock()
	if c.store.Snapshot().Transient != nil {
		c.admit.Unlock()
		return todos.Item{}, ErrCreateInFlight
	}
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		return s.CreateStarted(title, c.userID)
	})
	c.admit.Unlock()

	item, err := c.api.Create(ctx, title)
	if err == nil && !item.IsPersisted() {
		err = ErrMissingID
	}
	if err != nil {
		c.log.Error().Err(err).Str("title", title).Msg("create todo failed")
		c.store.Apply(state.Snapshot.CreateFailed)
		return todos.Item{}, err
	}

	c.log.Info().Int64("id", item.ID).Msg("todo created")
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		return s.CreateSucceeded(item)
	})
	return item, nil
}

// Delete removes id from the backend and then from the list.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.admitPending(id, state.Snapshot.DeleteStarted); err != nil {
		return err
	}
	return c.deleteAdmitted(ctx, id)
}

func (c *Controller) deleteAdmitted(ctx context.Context, id int64) error {
	if err := c.api.Delete(ctx, id); err != nil {
		c.log.Error().Err(err).Int64("id", id).Msg("delete todo failed")
		c.store.Apply(func(s state.Snapshot) state.Snapshot {
			return s.DeleteFailed(id)
		})
		return err
	}

	c.log.Info().Int64("id", id).Msg("todo deleted")
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		return s.DeleteSucceeded(id)
	})
	return nil
}

// ClearCompleted issues one independent delete per completed item and returns
// how many were started. Items already awaiting a response are skipped. It
// does not wait; each delete reconciles on its own.
func (c *Controller) ClearCompleted(ctx context.Context) int {
	completed := todos.Apply(c.store.Snapshot().Items, todos.FilterCompleted)
	issued := 0
	for _, item := range completed {
		if err := c.admitPending(item.ID, state.Snapshot.DeleteStarted); err != nil {
			continue
		}
		issued++
		c.wg.Add(1)
		go func(id int64) {
			defer c.wg.Done()
			_ = c.deleteAdmitted(ctx, id)
		}(item.ID)
	}
	if issued > 0 {
		c.log.Info().Int("count", issued).Msg("clearing completed todos")
	}
	return issued
}

// Toggle flips the completed flag of id on the backend and stores the result.
func (c *Controller) Toggle(ctx context.Context, id int64) error {
	var current todos.Item
	err := c.admitPending(id, func(s state.Snapshot, id int64) state.Snapshot {
		current, _ = s.Find(id)
		return s.ToggleStarted(id)
	})
	if err != nil {
		return err
	}

	item, err := c.api.SetCompleted(ctx, id, !current.Completed)
	if err != nil {
		c.log.Error().Err(err).Int64("id", id).Msg("toggle todo failed")
		c.store.Apply(func(s state.Snapshot) state.Snapshot {
			return s.ToggleFailed(id)
		})
		return err
	}

	c.log.Info().Int64("id", id).Bool("completed", item.Completed).Msg("todo updated")
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		return s.ToggleSucceeded(id, item)
	})
	return nil
}

// SetFilter changes the display filter.
func (c *Controller) SetFilter(f todos.Filter) {
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		return s.WithFilter(f)
	})
}

// DismissError clears the error banner and cancels its auto-clear.
func (c *Controller) DismissError() {
	c.store.Dismiss()
}

// Wait blocks until every delete started by ClearCompleted has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) admitPending(id int64, start func(state.Snapshot, int64) state.Snapshot) error {
	c.admit.Lock()
	defer c.admit.Unlock()

	snap := c.store.Snapshot()
	if _, ok := snap.Find(id); !ok {
		c.log.Debug().Int64("id", id).Msg("ignoring unknown todo")
		return ErrUnknownItem
	}
	if snap.IsPending(id) {
		c.log.Debug().Int64("id", id).Msg("ignoring busy todo")
		return ErrPending
	}
	c.store.Apply(func(s state.Snapshot) state.Snapshot {
		return start(s, id)
	})
	return nil
}
