package cache

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Logging decorates a store with request/hit accounting and a debug line per
// lookup. Counters are atomic, the decorator adds no locking of its own.
type Logging struct {
	delegate Cache
	log      logrus.FieldLogger

	requests atomic.Uint64
	hits     atomic.Uint64
}

func NewLogging(delegate Cache, log logrus.FieldLogger) *Logging {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Logging{delegate: delegate, log: log}
}

func (c *Logging) ID() string { return c.delegate.ID() }

func (c *Logging) Get(key string) (any, bool) {
	c.requests.Add(1)

	v, ok := c.delegate.Get(key)
	if ok {
		c.hits.Add(1)
	}

	c.log.WithFields(logrus.Fields{
		"cache":     c.ID(),
		"key":       key,
		"hit":       ok,
		"hit_ratio": c.HitRatio(),
	}).Debug("cache lookup")

	return v, ok
}

func (c *Logging) Put(key string, value any) { c.delegate.Put(key, value) }
func (c *Logging) Remove(key string)         { c.delegate.Remove(key) }
func (c *Logging) Clear()                    { c.delegate.Clear() }
func (c *Logging) Len() int                  { return c.delegate.Len() }

// Requests reports the number of lookups seen so far.
func (c *Logging) Requests() uint64 { return c.requests.Load() }

// Hits reports the number of lookups that found a value.
func (c *Logging) Hits() uint64 { return c.hits.Load() }

// HitRatio is hits over requests, 0 before the first lookup.
func (c *Logging) HitRatio() float64 {
	req := c.requests.Load()
	if req == 0 {
		return 0
	}

	return float64(c.hits.Load()) / float64(req)
}
