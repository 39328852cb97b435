// Package todos provides the HTTP client for the todos REST collection and
// the display filter applied to its items.
//
// # Overview
//
// A Client is scoped to one user id fixed at construction. Every call is a
// single request/response round trip: no retries, no caching.
//
// # API Endpoints
//
//   - GET /todos?userId={id}: list the user's items
//   - POST /todos: create an item from {title, userId, completed:false}
//   - PATCH /todos/{id}: update the completed flag
//   - DELETE /todos/{id}: remove an item, body ignored
//
// # URL Construction
//
// The base URL accepts several formats:
//
//   - "127.0.0.1:3005" → http://127.0.0.1:3005
//   - "https://example.com/api" → https://example.com/api (prefix kept)
//
// # Error Handling
//
// Status codes >= 400 are returned as *StatusError so callers can branch with
// errors.As. Transport and decode failures are wrapped with fmt.Errorf:
//
//   - "execute request: dial tcp: connection refused"
//   - "api DELETE /todos/4 returned status 404"
//   - "decode response: unexpected end of JSON input"
//
// # Filters
//
// Apply is a pure function: all returns a copy of the list, active keeps
// incomplete items, completed keeps completed items. Order is preserved.
//
// # Thread Safety
//
// Client is safe for concurrent use; the controller issues overlapping
// deletes through a single instance.
package todos
