// Package state holds the client-side todo list state and its transitions.
//
// # Overview
//
// Snapshot is the single state struct: the authoritative list, the
// placeholder for an in-flight create, the set of ids awaiting a delete or
// update, the loading flag, the display filter, and the current error
// notice. Each operation is expressed as pure value-receiver transitions
// (CreateStarted, CreateSucceeded, CreateFailed, ...) that return a new
// Snapshot, so every state change is testable without a network or a UI.
//
// # Store
//
// Store serialises transitions coming from the UI loop and from request
// goroutines:
//
//	Controller goroutines:          UI loop:
//	┌──────────────────────┐       ┌──────────────────────┐
//	│ store.Apply(fn)      │──────→│ <-store.Changes()    │
//	│   (write lock)       │ signal│ store.Snapshot()     │
//	│ client call          │       │   (read lock, copy)  │
//	│ store.Apply(fn)      │       │ render               │
//	└──────────────────────┘       └──────────────────────┘
//
//   - Apply(): runs one transition under the write lock, then signals
//   - Snapshot(): deep copy under the read lock
//   - Changes(): 1-buffered channel, bursts coalesce into one signal
//
// # Error Notices
//
// A transition that raises a notice bumps Notice.Seq. The store restarts its
// auto-clear timer (DefaultErrorTimeout, 3s) whenever Seq changes while a
// notice is active, and the timer only clears the notice it was started for.
// Dismiss clears immediately and stops the timer.
//
// # Known Simplifications
//
// Loading is one flag that every completing request clears, so overlapping
// deletes under-report busy state. A failed delete resets the whole pending
// set. Both are kept as the observable behaviour of the list.
package state
