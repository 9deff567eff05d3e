package cache

import (
	"fmt"
	"sync"
	"time"
)

// Blocking serializes concurrent misses on the same key: the first Get that
// misses keeps a per-key latch held and returns, later Gets for that key
// block until the holder publishes a value with Put or gives up with Remove.
// Hits release the latch immediately. The read side differs from the Cache
// contract on purpose: a Get can fail with ErrLockTimeout, and a miss makes
// the caller responsible for releasing the key.
type Blocking struct {
	delegate Cache
	timeout  time.Duration

	mu    sync.Mutex
	locks map[string]chan struct{}
}

type BlockingOption func(*Blocking)

// WithLockTimeout bounds how long a Get waits for another holder. Zero waits
// forever.
func WithLockTimeout(d time.Duration) BlockingOption {
	return func(b *Blocking) {
		b.timeout = d
	}
}

func NewBlocking(delegate Cache, opts ...BlockingOption) *Blocking {
	b := &Blocking{
		delegate: delegate,
		locks:    map[string]chan struct{}{},
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Blocking) ID() string { return b.delegate.ID() }

// Get acquires the latch for key and reads the delegate. On a hit the latch
// is released before returning; on a miss it stays held until the caller
// calls Put or Remove for the same key.
func (b *Blocking) Get(key string) (any, bool, error) {
	if err := b.acquire(key); err != nil {
		return nil, false, err
	}

	v, ok := b.delegate.Get(key)
	if !ok {
		return nil, false, nil
	}
	if err := b.release(key); err != nil {
		return nil, false, err
	}

	return v, true, nil
}

// Put publishes a value and releases the latch held by the preceding miss.
// Putting without holding the latch fails with ErrNotLocked.
func (b *Blocking) Put(key string, value any) error {
	b.delegate.Put(key, value)

	return b.release(key)
}

// Remove releases the latch without publishing a value, letting the next
// waiter attempt the key. The delegate entry, if any, is left in place.
func (b *Blocking) Remove(key string) error {
	return b.release(key)
}

func (b *Blocking) Clear() { b.delegate.Clear() }

func (b *Blocking) Len() int { return b.delegate.Len() }

func (b *Blocking) acquire(key string) error {
	for {
		b.mu.Lock()
		latch, held := b.locks[key]
		if !held {
			b.locks[key] = make(chan struct{})
			b.mu.Unlock()
			return nil
		}
		b.mu.Unlock()

		if b.timeout <= 0 {
			<-latch
			continue
		}

		t := time.NewTimer(b.timeout)
		select {
		case <-latch:
			t.Stop()
		case <-t.C:
			return fmt.Errorf("%w: key %q after %s", ErrLockTimeout, key, b.timeout)
		}
	}
}

func (b *Blocking) release(key string) error {
	b.mu.Lock()
	latch, held := b.locks[key]
	if held {
		delete(b.locks, key)
	}
	b.mu.Unlock()

	if !held {
		return fmt.Errorf("%w: key %q", ErrNotLocked, key)
	}
	close(latch)

	return nil
}
