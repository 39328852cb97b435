// Package mockapi is an in-memory implementation of the todo REST API, used
// by `todoterm serve` for local development and by tests.
//
// Routes:
//
//	GET    /todos?userId={n}  200 list, 400 when userId is not a number
//	POST   /todos             201 created item, 400 on a blank title
//	PATCH  /todos/{id}        200 updated item, 404 unknown id
//	DELETE /todos/{id}        204, 404 unknown id
//
// Options.Latency and Options.FailRate slow down or randomly fail requests
// so the client's busy and error states can be seen by hand.
package mockapi
