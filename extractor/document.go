package extractor

import "github.com/erraggy/oasextract/value"

// Document is a read-only view over a decoded API description. Missing or
// mistyped sections read as empty; nothing here reports an error.
type Document struct {
	root value.Value
}

// NewDocument wraps a decoded document.
func NewDocument(root value.Value) Document {
	return Document{root: root}
}

// Root returns the underlying value.
func (d Document) Root() value.Value { return d.root }

// VersionKey returns the top-level version key and its value. Swagger 2.0
// documents report "swagger" so callers can reject them.
func (d Document) VersionKey() (string, value.Value, bool) {
	for _, key := range []string{"openapi", "swagger"} {
		if v, ok := d.root.Get(key); ok {
			return key, v, true
		}
	}
	return "", value.Value{}, false
}

// Paths returns the path map.
func (d Document) Paths() *value.Object {
	return d.object("paths")
}

// Components returns the components block.
func (d Document) Components() *value.Object {
	return d.object("components")
}

// Section returns one named mapping inside components, e.g. "schemas".
func (d Document) Section(name string) *value.Object {
	v, ok := d.Components().Get(name)
	if !ok {
		return nil
	}
	obj, _ := v.AsObject()
	return obj
}

// Schemas returns components.schemas.
func (d Document) Schemas() *value.Object {
	return d.Section("schemas")
}

// SecuritySchemes returns components.securitySchemes.
func (d Document) SecuritySchemes() *value.Object {
	return d.Section("securitySchemes")
}

func (d Document) object(key string) *value.Object {
	v, ok := d.root.Get(key)
	if !ok {
		return nil
	}
	obj, _ := v.AsObject()
	return obj
}
