package auth

import "errors"

var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenExpired          = errors.New("token has expired")
	ErrCompanyIDRequired     = errors.New("token is not bound to a company")
	ErrEmployeeIDRequired    = errors.New("token is not bound to an employee")
	ErrManagerAccessRequired = errors.New("manager or owner access required")
)
