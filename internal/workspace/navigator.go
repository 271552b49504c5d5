// internal/workspace/navigator.go
package workspace

import (
	"strings"
	"sync"

	"msm-console/internal/pkg/session"
)

// Navigator tracks the route the browser shell shows and forwards
// navigation requests to it. A navigation is also kept as pending so the
// HTTP response that caused it can carry the redirect.
type Navigator struct {
	mu       sync.Mutex
	location string
	pending  string
	push     func(path string)
}

func NewNavigator(push func(path string)) *Navigator {
	return &Navigator{location: session.HomePath, push: push}
}

func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// Navigate updates the location synchronously, then tells the shell.
func (n *Navigator) Navigate(path string) {
	n.mu.Lock()
	n.location = path
	n.pending = path
	push := n.push
	n.mu.Unlock()

	if push != nil {
		push(path)
	}
}

// SetLocation records the route the shell reports on each request.
func (n *Navigator) SetLocation(path string) {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, "/") {
		return
	}
	n.mu.Lock()
	n.location = path
	n.mu.Unlock()
}

// TakeRedirect returns and clears the pending navigation.
func (n *Navigator) TakeRedirect() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	p := n.pending
	n.pending = ""
	return p
}
