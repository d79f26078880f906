package user

import "errors"

var (
	ErrPermissionDenied       = errors.New("authentication required")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInsufficientPermission = errors.New("insufficient permissions")
)
