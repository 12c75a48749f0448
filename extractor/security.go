package extractor

import (
	"strings"

	"github.com/erraggy/oasextract/internal/pathutil"
	"github.com/erraggy/oasextract/value"
	"golang.org/x/text/cases"
)

// HeaderMatcher decides whether a header parameter name carries an API key.
type HeaderMatcher func(name string) bool

// fold returns the case-folded form of s for case-insensitive comparison.
// A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// MarkerMatcher matches header names that contain marker, ignoring case.
func MarkerMatcher(marker string) HeaderMatcher {
	folded := fold(marker)
	return func(name string) bool {
		return strings.Contains(fold(name), folded)
	}
}

// DeclaredAPIKeyHeaders matches header names equal, ignoring case, to the
// header of any declared scheme with type apiKey and in header.
func DeclaredAPIKeyHeaders(schemes *value.Object) HeaderMatcher {
	declared := make(map[string]struct{})
	for _, scheme := range schemes.All() {
		typ, _ := scheme.GetString("type")
		in, _ := scheme.GetString("in")
		name, ok := scheme.GetString("name")
		if typ == "apiKey" && in == "header" && ok && name != "" {
			declared[fold(name)] = struct{}{}
		}
	}
	return func(name string) bool {
		_, ok := declared[fold(name)]
		return ok
	}
}

// MarkerOrDeclared matches a header when either MarkerMatcher(marker) or
// DeclaredAPIKeyHeaders(schemes) does.
func MarkerOrDeclared(marker string, schemes *value.Object) HeaderMatcher {
	byMarker := MarkerMatcher(marker)
	byScheme := DeclaredAPIKeyHeaders(schemes)
	return func(name string) bool {
		return byMarker(name) || byScheme(name)
	}
}

// DetectAPIKeyHeaders returns the distinct names of header parameters in
// paths accepted by match, in first-seen order.
//
// Both path-item and operation parameters are inspected. Parameter references
// into components.parameters are followed through params; references that do
// not resolve are skipped. Header names are compared case-insensitively, and
// the first spelling seen is the one reported.
func DetectAPIKeyHeaders(paths, params *value.Object, match HeaderMatcher) []string {
	var headers []string
	seen := make(map[string]struct{})

	consider := func(list value.Value) {
		for _, param := range list.Items() {
			param = derefParameter(param, params)
			if in, _ := param.GetString("in"); in != "header" {
				continue
			}
			name, ok := param.GetString("name")
			if !ok || name == "" || !match(name) {
				continue
			}
			key := fold(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			headers = append(headers, name)
		}
	}

	for _, item := range paths.All() {
		if list, ok := item.Get("parameters"); ok {
			consider(list)
		}
		for _, op := range operations(item) {
			if list, ok := op.Get("parameters"); ok {
				consider(list)
			}
		}
	}
	return headers
}

// derefParameter follows one local components.parameters reference.
func derefParameter(param value.Value, params *value.Object) value.Value {
	ref, ok := param.GetString(refField)
	if !ok {
		return param
	}
	name, ok := pathutil.TrimRef(ref, pathutil.RefPrefixParameters)
	if !ok {
		return value.Value{}
	}
	target, ok := params.Get(name)
	if !ok {
		return value.Value{}
	}
	return target
}

// SecurityAction describes what reconciliation did to the security schemes.
type SecurityAction string

const (
	// SecurityUnchanged means no API key headers were detected; schemes are
	// passed through as declared.
	SecurityUnchanged SecurityAction = "unchanged"
	// SecurityAlreadyCorrect means one header was detected and the designated
	// scheme already names it.
	SecurityAlreadyCorrect SecurityAction = "already-correct"
	// SecurityRewritten means one header was detected and the designated
	// scheme's header name was rewritten to match it.
	SecurityRewritten SecurityAction = "rewritten"
	// SecuritySchemeMissing means one header was detected but the designated
	// scheme is not declared; schemes are passed through.
	SecuritySchemeMissing SecurityAction = "scheme-missing"
	// SecurityRemoved means several distinct headers were detected and the
	// global scheme block was dropped.
	SecurityRemoved SecurityAction = "removed"
)

// SecurityOutcome reports the reconciliation decision.
type SecurityOutcome struct {
	Action SecurityAction
	// Scheme is the designated scheme name when it was inspected.
	Scheme string
	// OldHeader and NewHeader are set when the scheme was rewritten or already correct.
	OldHeader string
	NewHeader string
	// Headers are the detected header names.
	Headers []string
}

// ReconcileSecurity applies the three-way policy to schemes given the
// detected API key headers:
//
//   - no headers: schemes are returned as declared
//   - one header: the scheme named schemeName is rewritten to expect it
//   - several headers: nil is returned, dropping the global block
//
// schemes is never modified; a rewrite returns a new mapping that shares every
// other scheme with the input.
func ReconcileSecurity(schemes *value.Object, headers []string, schemeName string) (*value.Object, SecurityOutcome) {
	outcome := SecurityOutcome{Headers: headers}

	switch len(headers) {
	case 0:
		outcome.Action = SecurityUnchanged
		return schemes, outcome

	case 1:
		outcome.Scheme = schemeName
		outcome.NewHeader = headers[0]
		schemeVal, ok := schemes.Get(schemeName)
		scheme, isObj := schemeVal.AsObject()
		if !ok || !isObj {
			outcome.Action = SecuritySchemeMissing
			outcome.NewHeader = ""
			return schemes, outcome
		}
		outcome.OldHeader, _ = schemeVal.GetString("name")
		if fold(outcome.OldHeader) == fold(headers[0]) {
			// Header names are case-insensitive; keep the declared spelling.
			outcome.Action = SecurityAlreadyCorrect
			outcome.NewHeader = outcome.OldHeader
			return schemes, outcome
		}
		rewritten := scheme.Clone()
		rewritten.Set("name", value.String(headers[0]))
		updated := schemes.Clone()
		updated.Set(schemeName, value.FromObject(rewritten))
		outcome.Action = SecurityRewritten
		return updated, outcome

	default:
		outcome.Action = SecurityRemoved
		return nil, outcome
	}
}
