package errors

import "errors"

var (
	ErrNotFound = errors.New("property not found")
)
