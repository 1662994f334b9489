package internal

import (
	"iter"
	"maps"
	"slices"
)

// MergeDefines collects define tables into one map.
// Later tables override earlier ones.
func MergeDefines(seqs ...iter.Seq2[string, string]) (defines map[string]string) {
	defines = make(map[string]string)
	for _, seq := range seqs {
		for name, value := range seq {
			defines[name] = value
		}
	}

	return
}

// SortedDefines yields the defines ordered by name.
func SortedDefines(defines map[string]string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range slices.Sorted(maps.Keys(defines)) {
			if !yield(name, defines[name]) {
				return
			}
		}
	}
}
