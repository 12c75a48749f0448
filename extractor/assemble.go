package extractor

import (
	"strings"

	"github.com/erraggy/oasextract/value"
)

// assemble builds the output document. Every mapping it returns is new; leaf
// subtrees are shared with the input.
func (e *Extractor) assemble(
	src Document,
	selected *value.Object,
	schemaNames RefSet,
	sections map[string]RefSet,
	schemes *value.Object,
	outcome SecurityOutcome,
	result *Result,
) value.Value {
	out := value.NewObject()

	if key, version, ok := src.VersionKey(); ok {
		out.Set(key, version)
	}
	out.Set("info", e.info(src.Root()))
	if servers, ok := e.servers(); ok {
		out.Set("servers", servers)
	}
	if security, ok := src.Root().Get("security"); ok && outcome.Action != SecurityRemoved {
		out.Set("security", security)
	}
	if tags, ok := usedTags(src.Root(), selected); ok {
		out.Set("tags", tags)
	}
	out.Set("paths", value.FromObject(selected))

	components := value.NewObject()
	components.Set("schemas", value.FromObject(pick(src.Schemas(), schemaNames)))
	for _, section := range carriedSections {
		names := sections[section]
		if len(names) == 0 {
			continue
		}
		entries := pick(src.Section(section), names)
		if entries.Len() == 0 {
			continue
		}
		components.Set(section, value.FromObject(entries))
		result.Components[section] = entries.Len()
	}
	if schemes != nil {
		components.Set("securitySchemes", value.FromObject(schemes))
	}
	out.Set("components", value.FromObject(components))

	if docs, ok := src.Root().Get("externalDocs"); ok {
		out.Set("externalDocs", docs)
	}
	return value.FromObject(out)
}

// info derives the output info block: the title gains TitleSuffix unless it
// already ends with it, and a configured Description replaces the original.
func (e *Extractor) info(root value.Value) value.Value {
	var info *value.Object
	if v, ok := root.Get("info"); ok {
		if obj, ok := v.AsObject(); ok {
			info = obj.Clone()
		}
	}
	if info == nil {
		info = value.NewObject()
	}

	title, _ := info.Get("title")
	text, _ := title.AsString()
	if e.TitleSuffix != "" && !strings.HasSuffix(text, e.TitleSuffix) {
		info.Set("title", value.String(text+e.TitleSuffix))
	}
	if e.Description != "" {
		info.Set("description", value.String(e.Description))
	}
	return value.FromObject(info)
}

// servers returns the configured server list. The input's servers name
// internal hosts and are never carried; with nothing configured the output has
// no servers entry.
func (e *Extractor) servers() (value.Value, bool) {
	if len(e.Servers) == 0 {
		return value.Value{}, false
	}
	items := make([]value.Value, 0, len(e.Servers))
	for _, s := range e.Servers {
		server := value.NewObject()
		server.Set("url", value.String(s.URL))
		if s.Description != "" {
			server.Set("description", value.String(s.Description))
		}
		items = append(items, value.FromObject(server))
	}
	return value.Array(items...), true
}

// usedTags keeps the top-level tag declarations referenced by at least one
// selected operation, in declaration order.
func usedTags(root value.Value, selected *value.Object) (value.Value, bool) {
	declared, ok := root.Get("tags")
	if !ok || declared.Kind() != value.KindArray {
		return value.Value{}, false
	}
	used := make(map[string]struct{})
	for _, item := range selected.All() {
		for _, op := range operations(item) {
			tags, _ := op.Get("tags")
			for _, tag := range tags.Items() {
				if name, ok := tag.AsString(); ok {
					used[name] = struct{}{}
				}
			}
		}
	}

	var kept []value.Value
	for _, tag := range declared.Items() {
		name, _ := tag.GetString("name")
		if _, ok := used[name]; ok {
			kept = append(kept, tag)
		}
	}
	if len(kept) == 0 {
		return value.Value{}, false
	}
	return value.Array(kept...), true
}

// pick returns the entries of section whose names are in names, in the order
// they are declared. Names without an entry are skipped.
func pick(section *value.Object, names RefSet) *value.Object {
	out := value.NewObject()
	for name, def := range section.All() {
		if names.Has(name) {
			out.Set(name, def)
		}
	}
	return out
}
