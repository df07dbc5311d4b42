package msync

import "sync"

type MuMap[K comparable, T any] struct {
	mu   sync.Mutex
	data map[K]T
}

func NewMuMap[K comparable, T any]() *MuMap[K, T] {
	return &MuMap[K, T]{data: make(map[K]T)}
}

func (mm *MuMap[K, T]) Set(key K, value T) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.data[key] = value
}

// Pop removes and returns the value for key, for one-shot consumers.
func (mm *MuMap[K, T]) Pop(key K) (T, bool) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	value, ok := mm.data[key]
	if ok {
		delete(mm.data, key)
	}
	return value, ok
}
