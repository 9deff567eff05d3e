// Package registry builds and memoizes reflectors. A Registry hands out one
// reflector per subject type, deduplicating concurrent builds and keeping
// the results in a pluggable cache.
//
// Key types:
//   - [Registry] resolves a type to its reflector, building it at most once
//   - [Config] is the YAML-backed tuning surface for a registry
package registry
