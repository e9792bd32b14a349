package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap holds one atomic cell of type T per key
// Cells are never removed, so producers may cache the pointer Get returns
type MetricMap[T any] struct {
	mu    sync.RWMutex
	cells map[Key]*T
}

// NewMetricMap creates a map with a zero cell for each of keys
func NewMetricMap[T any](keys ...Key) *MetricMap[T] {
	m := &MetricMap[T]{cells: make(map[Key]*T, len(keys))}
	for _, k := range keys {
		m.cells[k] = new(T)
	}
	return m
}

// Get returns the cell for key, creating it on first use
func (m *MetricMap[T]) Get(key Key) *T {
	m.mu.RLock()
	cell := m.cells[key]
	m.mu.RUnlock()
	if cell != nil {
		return cell
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cell = m.cells[key]; cell == nil {
		cell = new(T)
		m.cells[key] = cell
	}
	return cell
}

// Range visits every cell in key order; fn runs without the map lock held
func (m *MetricMap[T]) Range(fn func(key Key, cell *T)) {
	m.mu.RLock()
	keys := slices.Sorted(maps.Keys(m.cells))
	cells := make([]*T, len(keys))
	for i, k := range keys {
		cells[i] = m.cells[k]
	}
	m.mu.RUnlock()

	for i, k := range keys {
		fn(k, cells[i])
	}
}

// Count returns the number of cells
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}
