// Package ui renders the todo list as a Bubble Tea program.
//
// # Layout
//
// The main screen is a single column:
//
//	todos ⠋                                     title, spinner while loading
//
//	❯ What needs to be done?                    text input
//	──────────────────────────
//
//	› [ ]   Buy milk                            rows, cursor marker in list focus
//	  [✓]   Walk dog
//	  [ ] ⠋ Pay rent  saving                    create placeholder
//
//	2 items left   All Active Completed   c:clear completed
//	✗ Unable to add a todo  esc to dismiss      error banner
//	enter:Add todo  tab:Focus list  ...         key hints
//
// Help (?) and the application log (L) are full-screen overlays.
//
// # Focus
//
// Keys go either to the text input or to the list. While the input has
// focus every printable key is text, so the single-letter globals (?, L, T,
// q) only act from the list. esc and ctrl+c work everywhere.
//
// # Data Flow
//
// The model never mutates todo state itself. Key handlers return commands
// that call the controller on a goroutine; the controller applies
// transitions to the store, and waitForChange turns each store signal into
// a stateChangedMsg, at which point the model copies the new Snapshot.
// Request results (createDoneMsg, opDoneMsg) only drive side effects such
// as clearing the input after a successful create.
package ui
