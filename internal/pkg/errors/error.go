package xerrors

import "errors"

// Common reusable console errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrSessionExpired = errors.New("session expired or invalid")
	ErrNoToken        = errors.New("no token found")
)
