package service

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidPlan      = errors.New("invalid plan request")
)
