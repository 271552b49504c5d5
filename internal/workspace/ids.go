// internal/workspace/ids.go
package workspace

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewID returns a sortable workspace identifier. The id is the browser's
// only credential for its workspace, so the entropy comes from crypto/rand.
func NewID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// ValidID reports whether id was issued by NewID.
func ValidID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}
