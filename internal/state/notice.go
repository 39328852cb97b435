package state

// ErrorKind classifies the user-visible error banner.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorLoad
	ErrorCreate
	ErrorDelete
	ErrorUpdate
	ErrorEmptyTitle
)

var errorKindNames = map[ErrorKind]string{
	ErrorNone:       "",
	ErrorLoad:       "load-failed",
	ErrorCreate:     "create-failed",
	ErrorDelete:     "delete-failed",
	ErrorUpdate:     "update-failed",
	ErrorEmptyTitle: "empty-title",
}

var errorMessages = map[ErrorKind]string{
	ErrorLoad:       "Unable to load todos",
	ErrorCreate:     "Unable to add a todo",
	ErrorDelete:     "Unable to delete a todo",
	ErrorUpdate:     "Unable to update a todo",
	ErrorEmptyTitle: "Title should not be empty",
}

func (k ErrorKind) String() string {
	return errorKindNames[k]
}

// Message returns the one-line banner text for the kind.
func (k ErrorKind) Message() string {
	return errorMessages[k]
}

// Notice is the current error banner. Seq increases every time a notice is
// raised so a replacement is distinguishable from its predecessor.
type Notice struct {
	Kind    ErrorKind
	Message string
	Seq     uint64
}

// Active reports whether a banner should be shown.
func (n Notice) Active() bool {
	return n.Kind != ErrorNone
}
