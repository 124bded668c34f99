package errors

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidSubject       = errors.New("invalid notification subject")
	ErrForbidden            = errors.New("actor is not allowed to read notifications")
	ErrUnauthenticated      = errors.New("authentication required")
)
