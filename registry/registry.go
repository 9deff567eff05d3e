package registry

import (
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"propkit/cache"
	"propkit/reflection"
)

// Registry resolves subject types to reflectors. Built reflectors are kept
// in the cache under the type's printed name; concurrent first lookups of
// the same type collapse into a single build.
type Registry struct {
	cache cache.Cache
	group singleflight.Group
	opts  []reflection.Option
}

// entry pins the exact type next to its reflector so that two distinct
// types sharing a printed name can never serve each other's model.
type entry struct {
	t reflect.Type
	r *reflection.Reflector
}

// New builds a registry over the given cache. A nil cache gets a fresh
// in-memory store. The options are applied to every reflector built.
func New(c cache.Cache, opts ...reflection.Option) *Registry {
	if c == nil {
		c = cache.NewMemory("reflectors")
	}

	return &Registry{cache: c, opts: opts}
}

// NewFromConfig assembles a registry from a parsed configuration: a bounded
// memory store, optionally wrapped with hit-ratio logging, and the
// visibility setting carried into every build.
func NewFromConfig(cfg *Config, log logrus.FieldLogger) *Registry {
	var store cache.Cache = cache.NewMemory("reflectors", cache.WithCapacity(cfg.Cache.Capacity))
	if cfg.Cache.LogHits {
		store = cache.NewLogging(store, log)
	}

	var opts []reflection.Option
	if cfg.BypassVisibility != nil {
		opts = append(opts, reflection.WithVisibilityBypass(*cfg.BypassVisibility))
	}

	return New(store, opts...)
}

// Lookup returns the reflector for t, building and caching it on first use.
func (r *Registry) Lookup(t reflect.Type) (*reflection.Reflector, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", reflection.ErrInvalidSubject)
	}

	key := typeKey(t)
	if rf, ok := r.cached(key, t); ok {
		return rf, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		if rf, ok := r.cached(key, t); ok {
			return rf, nil
		}

		built, err := reflection.New(t, r.opts...)
		if err != nil {
			return nil, err
		}
		r.cache.Put(key, entry{t: t, r: built})

		return built, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*reflection.Reflector), nil
}

// LookupFor is the generic convenience over Lookup.
func LookupFor[T any](r *Registry) (*reflection.Reflector, error) {
	return r.Lookup(reflect.TypeFor[T]())
}

// cached reads an existing entry, ignoring one pinned to a different type
// with the same printed name.
func (r *Registry) cached(key string, t reflect.Type) (*reflection.Reflector, bool) {
	v, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}
	e, ok := v.(entry)
	if !ok || e.t != t {
		return nil, false
	}

	return e.r, true
}

// Size reports the number of cached reflectors.
func (r *Registry) Size() int { return r.cache.Len() }

// Reset drops every cached reflector.
func (r *Registry) Reset() { r.cache.Clear() }

func typeKey(t reflect.Type) string {
	if pkg := t.PkgPath(); pkg != "" {
		return pkg + "." + t.String()
	}

	return t.String()
}
