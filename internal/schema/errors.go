package schema

import "errors"

// ErrInvalidInput is returned when the request input field is neither a
// string, an array of strings, nor an array of integers.
var ErrInvalidInput = errors.New("schema: invalid input format")
