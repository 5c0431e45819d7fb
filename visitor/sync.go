package visitor

import "sync"

// SyncMap is a thread-safe cache map
type SyncMap[K comparable, V any] struct {
	m   map[K]V
	mux sync.RWMutex
}

// Get returns a cached value
func (m *SyncMap[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	v, ok := m.m[k]
	m.mux.RUnlock()
	return v, ok
}

// Put stores a value unless another goroutine already stored one, returns the stored value
func (m *SyncMap[K, V]) Put(k K, v V) V {
	m.mux.Lock()
	defer m.mux.Unlock()
	if existing, ok := m.m[k]; ok {
		return existing
	}
	m.m[k] = v
	return v
}

func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{m: make(map[K]V)}
}
