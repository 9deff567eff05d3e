// Package cache provides the keyed stores backing reflector registries: a
// bounded in-memory LRU plus decorators layering behavior on top of any
// store.
//
// Key types:
//   - [Cache] is the store contract decorators and registries share
//   - [Memory] is a mutex-guarded LRU store with a fixed capacity
//   - [Logging] wraps a store with hit-ratio accounting and debug logging
//   - [Blocking] serializes concurrent misses on the same key behind
//     per-key latches
package cache
