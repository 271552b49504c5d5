// internal/pkg/session/types.go
package session

// State is a step of the console session lifecycle:
// Unauthenticated → Authenticating → Authenticated → (Expired|LoggedOut) → Unauthenticated.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
	StateExpired         State = "expired"
	StateLoggedOut       State = "logged_out"
)

// Routes the session manager navigates to.
const (
	HomePath         = "/"
	LoginPath        = "/login"
	ExpiredLoginPath = "/login?expired=true"
)

// Navigator moves the browser shell of one workspace.
type Navigator interface {
	// Location returns the route the shell currently shows.
	Location() string
	// Navigate replaces the current route.
	Navigate(path string)
}

// Listener observes state transitions. It runs after the manager lock is
// released, so it may call back into the manager.
type Listener func(from, to State)
