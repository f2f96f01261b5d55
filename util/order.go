package util

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"
)

// OrderedMap is a map that remembers the order in which keys were inserted.
//
// The map refuses to override an existing key.
type OrderedMap[K comparable, V any] struct {
	data map[K]V
	keys []K
}

// Instantiates an empty OrderedMap object.
func NewOrderedMap[K comparable, V any]() OrderedMap[K, V] {
	return OrderedMap[K, V]{data: map[K]V{}}
}

// Insert a (key, value) pair.
func (m *OrderedMap[K, V]) Insert(key K, value V) error {
	if _, ok := m.data[key]; ok {
		return fmt.Errorf("key %v already present", key)
	}
	m.keys = append(m.keys, key)
	m.data[key] = value
	return nil
}

// Performs a lookup of the key, similar to `v, ok := m[k]`.
func (m *OrderedMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := m.data[key]
	return val, ok
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Returns the map keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	return append([]K{}, m.keys...)
}

// Returns the values in insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	return MappedSlice(m.keys, func(k K) V { return m.data[k] })
}

// Returns the ordered copy of the provided slice, the values are shallow-copied.
func OrderedSlice[V constraints.Ordered](values []V) []V {
	result := make([]V, len(values))
	copy(result, values)
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Returns the ordered copy of the provided slice, ordering is done using the key function.
func SliceOrderedBy[V any, K constraints.Ordered](values []V, key func(v *V) K) []V {
	result := make([]V, len(values))
	copy(result, values)
	sort.SliceStable(result, func(i, j int) bool { return key(&result[i]) < key(&result[j]) })
	return result
}
