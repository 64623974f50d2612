package validation

// Error reports a rejected input. Detail carries the client-facing message.
// Index is the position of the offending text, or -1 when the failure
// applies to the request as a whole.
type Error struct {
	Index  int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}
