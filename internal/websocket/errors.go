// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrNoWorkspace   = errors.New("no console workspace for connection")
	ErrUnknownScreen = errors.New("unknown list screen")
)
