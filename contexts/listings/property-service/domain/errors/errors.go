package errors

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidProperty  = errors.New("invalid property input")
	ErrInvalidStatus    = errors.New("invalid property status")
	ErrForbidden        = errors.New("actor is not allowed to perform this action")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrImageNotFound    = errors.New("image not found")
)
