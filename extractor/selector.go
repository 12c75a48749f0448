package extractor

import (
	"strings"

	"github.com/erraggy/oasextract/value"
)

// PathPredicate decides whether a path key belongs in the published subset.
// Predicates must be pure string tests.
type PathPredicate func(path string) bool

// PathContains matches paths containing marker, e.g. "/external/".
func PathContains(marker string) PathPredicate {
	return func(path string) bool {
		return strings.Contains(path, marker)
	}
}

// PathHasPrefix matches paths starting with prefix.
func PathHasPrefix(prefix string) PathPredicate {
	return func(path string) bool {
		return strings.HasPrefix(path, prefix)
	}
}

// AnyPath matches when at least one of preds matches.
func AnyPath(preds ...PathPredicate) PathPredicate {
	return func(path string) bool {
		for _, p := range preds {
			if p(path) {
				return true
			}
		}
		return false
	}
}

// AllPaths matches when every one of preds matches.
func AllPaths(preds ...PathPredicate) PathPredicate {
	return func(path string) bool {
		for _, p := range preds {
			if !p(path) {
				return false
			}
		}
		return true
	}
}

// httpMethods are the path item keys that hold operations.
var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace", "query"}

// SelectPaths returns a new path map holding the entries of paths whose key
// satisfies include, in their original order. Path items are shared with the
// input, not copied. A nil paths map selects nothing.
func SelectPaths(paths *value.Object, include PathPredicate) *value.Object {
	selected := value.NewObject()
	for key, item := range paths.All() {
		if include(key) {
			selected.Set(key, item)
		}
	}
	return selected
}

// CountOperations counts the operations (HTTP method entries) in a path map.
func CountOperations(paths *value.Object) int {
	n := 0
	for _, item := range paths.All() {
		n += len(operations(item))
	}
	return n
}

// operations returns the operation objects of a path item in method order.
func operations(item value.Value) []value.Value {
	var ops []value.Value
	for _, method := range httpMethods {
		if op, ok := item.Get(method); ok && op.Kind() == value.KindObject {
			ops = append(ops, op)
		}
	}
	return ops
}
