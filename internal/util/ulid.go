package util

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// NewULID returns a time-sortable id for upload tasks.
func NewULID() string {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ValidateULID checks if a string is a valid ULID.
func ValidateULID(s string) bool {
	_, err := ulid.Parse(s)
	return err == nil
}

// ShortID returns the last 7 characters of an ID in lowercase.
// The tail of a ULID carries the entropy; the head is the timestamp.
func ShortID(id string) string {
	if len(id) <= 7 {
		return strings.ToLower(id)
	}
	return strings.ToLower(id[len(id)-7:])
}
