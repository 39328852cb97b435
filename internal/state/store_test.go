package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/todoterm/internal/todos"
)

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore(0)
	assert.Equal(t, 3000*time.Millisecond, s.ErrorTimeout())

	snap := s.Snapshot()
	assert.NotNil(t, snap.Pending)
	assert.Empty(t, snap.Items)
	assert.Equal(t, todos.FilterAll, snap.Filter)
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	s := NewStore(time.Second)
	s.Apply(func(sn Snapshot) Snapshot {
		return sn.LoadSucceeded([]todos.Item{{ID: 1, Title: "A"}})
	})
	s.Apply(func(sn Snapshot) Snapshot { return sn.DeleteStarted(1) })

	snap := s.Snapshot()
	snap.Items[0].Title = "changed"
	delete(snap.Pending, 1)

	again := s.Snapshot()
	assert.Equal(t, "A", again.Items[0].Title)
	assert.True(t, again.IsPending(1))
}

func TestStore_ApplySignalsChanges(t *testing.T) {
	s := NewStore(time.Second)
	s.Apply(func(sn Snapshot) Snapshot { return sn.WithFilter(todos.FilterActive) })
	s.Apply(func(sn Snapshot) Snapshot { return sn.WithFilter(todos.FilterCompleted) })

	select {
	case <-s.Changes():
	default:
		t.Fatal("expected a change signal")
	}
	select {
	case <-s.Changes():
		t.Fatal("bursts should coalesce into one signal")
	default:
	}
	assert.Equal(t, todos.FilterCompleted, s.Snapshot().Filter)
}

func TestStore_NoticeAutoClears(t *testing.T) {
	s := NewStore(30 * time.Millisecond)
	t.Cleanup(s.Close)

	s.Apply(Snapshot.EmptyTitle)
	require.True(t, s.Snapshot().HasError())

	require.Eventually(t, func() bool {
		return !s.Snapshot().HasError()
	}, time.Second, 5*time.Millisecond)
}

func TestStore_ReplacementRestartsDelay(t *testing.T) {
	s := NewStore(150 * time.Millisecond)
	t.Cleanup(s.Close)

	s.Apply(Snapshot.EmptyTitle)
	time.Sleep(100 * time.Millisecond)
	s.Apply(func(sn Snapshot) Snapshot { return sn.CreateStarted("x", 1).CreateFailed() })

	// The first deadline has passed; the replacement must still be visible.
	time.Sleep(100 * time.Millisecond)
	snap := s.Snapshot()
	require.True(t, snap.HasError())
	assert.Equal(t, ErrorCreate, snap.Notice.Kind)

	require.Eventually(t, func() bool {
		return !s.Snapshot().HasError()
	}, time.Second, 5*time.Millisecond)
}

func TestStore_DismissCancelsTimer(t *testing.T) {
	s := NewStore(40 * time.Millisecond)
	t.Cleanup(s.Close)

	s.Apply(Snapshot.EmptyTitle)
	s.Dismiss()
	assert.False(t, s.Snapshot().HasError())

	s.mu.RLock()
	timer := s.timer
	s.mu.RUnlock()
	assert.Nil(t, timer)
}

func TestStore_StaleTimerDoesNotClearNewerNotice(t *testing.T) {
	s := NewStore(time.Hour)
	t.Cleanup(s.Close)

	s.Apply(Snapshot.EmptyTitle)
	stale := s.Snapshot().Notice.Seq
	s.Apply(Snapshot.EmptyTitle)

	s.expire(stale)
	assert.True(t, s.Snapshot().HasError())
}

func TestStore_ConcurrentTransitions(t *testing.T) {
	s := NewStore(time.Second)
	t.Cleanup(s.Close)

	items := make([]todos.Item, 0, 50)
	for i := int64(1); i <= 50; i++ {
		items = append(items, todos.Item{ID: i, Completed: true})
	}
	s.Apply(func(sn Snapshot) Snapshot { return sn.LoadSucceeded(items) })

	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Apply(func(sn Snapshot) Snapshot { return sn.DeleteStarted(id) })
			s.Apply(func(sn Snapshot) Snapshot { return sn.DeleteSucceeded(id) })
		}(item.ID)
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Pending)
}
