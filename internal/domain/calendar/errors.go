package calendar

import "errors"

var (
	ErrMissingScope     = errors.New("institution id is required for institution calendar")
	ErrInvalidScopeKind = errors.New("calendar scope must be institution or company")
	ErrDayNotFound      = errors.New("calendar day not found")
)
