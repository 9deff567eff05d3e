package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity bounds a Memory store when no explicit capacity is given.
const DefaultCapacity = 256

// Memory is a mutex-guarded LRU store. A Get refreshes the entry, a Put at
// capacity evicts the least recently used one.
type Memory struct {
	id       string
	capacity int

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
}

type memoryEntry struct {
	key   string
	value any
}

type MemoryOption func(*Memory)

// WithCapacity sets the maximum number of entries. Non-positive values fall
// back to DefaultCapacity.
func WithCapacity(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.capacity = n
		}
	}
}

func NewMemory(id string, opts ...MemoryOption) *Memory {
	m := &Memory{
		id:       id,
		capacity: DefaultCapacity,
		items:    map[string]*list.Element{},
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Memory) ID() string { return m.id }

func (m *Memory) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return nil, false
	}
	m.order.MoveToFront(el)

	return el.Value.(*memoryEntry).value, true
}

func (m *Memory) Put(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.items[key]; ok {
		el.Value.(*memoryEntry).value = value
		m.order.MoveToFront(el)
		return
	}

	if len(m.items) >= m.capacity {
		m.evictOldest()
	}

	m.items[key] = m.order.PushFront(&memoryEntry{key: key, value: value})
}

// evictOldest must be called with mu held.
func (m *Memory) evictOldest() {
	oldest := m.order.Back()
	if oldest == nil {
		return
	}

	delete(m.items, oldest.Value.(*memoryEntry).key)
	m.order.Remove(oldest)
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.items[key]; ok {
		delete(m.items, key)
		m.order.Remove(el)
	}
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = map[string]*list.Element{}
	m.order.Init()
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.items)
}
