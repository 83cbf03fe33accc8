// Package util holds small helpers shared by the other packages.
package util

import "sort"

// OrderedKeys returns the keys of m in alphabetical order, so that maps can be
// walked the same way on every run.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
