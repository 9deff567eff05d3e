package cache

import "errors"

var (
	ErrLockTimeout = errors.New("timed out waiting for cache lock")
	ErrNotLocked   = errors.New("releasing a lock that is not held")
)

// Cache is a keyed any-value store. Implementations must be safe for
// concurrent use; decorators wrap one Cache and present the same contract.
type Cache interface {
	// ID names the store, for logs and diagnostics.
	ID() string
	// Get returns the value bound to key, if any.
	Get(key string) (any, bool)
	// Put binds value to key, displacing an older entry if needed.
	Put(key string, value any)
	// Remove drops the entry for key, if any.
	Remove(key string)
	// Clear drops every entry.
	Clear()
	// Len reports the number of live entries.
	Len() int
}
