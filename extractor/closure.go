package extractor

import (
	"github.com/erraggy/oasextract/internal/pathutil"
	"github.com/erraggy/oasextract/value"
)

// ResolveClosure returns the smallest set that contains seed and, for every
// member defined in schemas, every name referenced (under prefix) from that
// definition's body.
//
// Names without a definition stay in the result but are not expanded. Each
// definition is scanned at most once, so the cost is proportional to the size
// of the reachable part of the schema graph, and cycles terminate. seed is not
// modified.
func ResolveClosure(seed RefSet, schemas *value.Object, prefix string) RefSet {
	return closure(seed, schemas.Get, prefixKey(prefix))
}

// closure is the worklist fixed point shared by the schema-only and the
// all-components resolution.
func closure(seed RefSet, lookup func(string) (value.Value, bool), key refKeyFunc) RefSet {
	result := make(RefSet, len(seed))
	frontier := make([]string, 0, len(seed))
	for name := range seed {
		if result.Add(name) {
			frontier = append(frontier, name)
		}
	}

	for len(frontier) > 0 {
		name := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		def, ok := lookup(name)
		if !ok {
			continue // dangling
		}
		eachRef(def, key, func(ref string) {
			if result.Add(ref) {
				frontier = append(frontier, ref)
			}
		})
	}
	return result
}

// carriedSections are the component kinds, besides schemas, whose referenced
// entries are copied into the output when component carry-over is enabled.
// Security schemes are handled by the reconciler instead.
var carriedSections = []string{
	"parameters",
	"responses",
	"requestBodies",
	"headers",
	"examples",
	"links",
	"callbacks",
	"pathItems",
}

// componentClosure is the outcome of resolving references across every
// component kind.
type componentClosure struct {
	schemas  RefSet
	sections map[string]RefSet
}

// resolveComponents runs the closure over all local component references.
// Keys are full reference strings; schema references are recognised by
// schemaPrefix so a non-default prefix still reaches components.schemas.
func resolveComponents(doc Document, selected *value.Object, schemaPrefix string) componentClosure {
	key := func(ref string) (string, bool) {
		if _, ok := pathutil.TrimRef(ref, schemaPrefix); ok {
			return ref, true
		}
		if _, _, ok := pathutil.SplitComponentRef(ref); ok {
			return ref, true
		}
		return "", false
	}
	lookup := func(ref string) (value.Value, bool) {
		if name, ok := pathutil.TrimRef(ref, schemaPrefix); ok {
			return doc.Schemas().Get(name)
		}
		section, name, ok := pathutil.SplitComponentRef(ref)
		if !ok {
			return value.Value{}, false
		}
		return doc.Section(section).Get(name)
	}

	seed := make(RefSet)
	eachRef(value.FromObject(selected), key, func(ref string) {
		seed.Add(ref)
	})
	refs := closure(seed, lookup, key)

	out := componentClosure{
		schemas:  make(RefSet),
		sections: make(map[string]RefSet),
	}
	for ref := range refs {
		if name, ok := pathutil.TrimRef(ref, schemaPrefix); ok {
			out.schemas.Add(name)
			continue
		}
		section, name, _ := pathutil.SplitComponentRef(ref)
		if section == "schemas" || section == "securitySchemes" {
			continue
		}
		if out.sections[section] == nil {
			out.sections[section] = make(RefSet)
		}
		out.sections[section].Add(name)
	}
	return out
}

// ReachableSchemas returns the names of the schemas reachable from the paths
// of doc, following references through every component kind. Dangling names
// are included.
func ReachableSchemas(doc value.Value, schemaPrefix string) RefSet {
	d := NewDocument(doc)
	return resolveComponents(d, d.Paths(), schemaPrefix).schemas
}
