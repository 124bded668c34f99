package errors

import "errors"

var (
	ErrInvalidContact  = errors.New("invalid contact submission")
	ErrForbidden       = errors.New("actor is not allowed to perform this action")
	ErrUnauthenticated = errors.New("authentication required")
)
