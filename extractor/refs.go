package extractor

import (
	"github.com/erraggy/oasextract/internal/maputil"
	"github.com/erraggy/oasextract/internal/pathutil"
	"github.com/erraggy/oasextract/value"
)

// refField is the key that marks a reference object.
const refField = "$ref"

// RefSet is a set of referenced names.
type RefSet map[string]struct{}

// Add inserts name and reports whether it was new.
func (s RefSet) Add(name string) bool {
	if _, ok := s[name]; ok {
		return false
	}
	s[name] = struct{}{}
	return true
}

// Has reports whether name is in the set.
func (s RefSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in lexical order.
func (s RefSet) Sorted() []string {
	return maputil.SortedKeys(s)
}

// refKeyFunc maps a $ref string to the key it contributes to a RefSet, or
// reports false when the reference is not one being tracked.
type refKeyFunc func(ref string) (string, bool)

// prefixKey tracks references under prefix, keyed by the unescaped name.
func prefixKey(prefix string) refKeyFunc {
	return func(ref string) (string, bool) {
		return pathutil.TrimRef(ref, prefix)
	}
}

// ScanRefs returns the names of every reference under prefix found anywhere in
// v. References with any other prefix (other component kinds, external
// documents) are ignored.
func ScanRefs(v value.Value, prefix string) RefSet {
	refs := make(RefSet)
	eachRef(v, prefixKey(prefix), func(name string) {
		refs.Add(name)
	})
	return refs
}

// eachRef calls fn with the key of every tracked reference found in v.
// Every mapping is checked for a $ref field and recursion continues into all
// values, so references next to other content are found too.
func eachRef(v value.Value, key refKeyFunc, fn func(string)) {
	value.Walk(v, func(node value.Value) {
		ref, ok := node.GetString(refField)
		if !ok {
			return
		}
		if k, ok := key(ref); ok {
			fn(k)
		}
	})
}
