package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// OrderedMapEntry is a single (key, value) pair of a map.
type OrderedMapEntry[K constraints.Ordered, V any] struct {
	Key   K
	Value V
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

// Convenience function, returning the list of ordered keys of the input map.
func OrderedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return OrderedSlice(keys)
}

// Convenience function, returning the list of ordered entries of the input map.
func OrderedEntries[K constraints.Ordered, V any](m map[K]V) []OrderedMapEntry[K, V] {
	result := make([]OrderedMapEntry[K, V], 0, len(m))
	for _, k := range OrderedKeys(m) {
		result = append(result, OrderedMapEntry[K, V]{Key: k, Value: m[k]})
	}
	return result
}
