// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// RefPrefixComponents is the common prefix of every local component reference.
const RefPrefixComponents = "#/components/"

// OAS 3.x component reference prefixes
const (
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixParameters      = "#/components/parameters/"
	RefPrefixResponses       = "#/components/responses/"
	RefPrefixExamples        = "#/components/examples/"
	RefPrefixRequestBodies   = "#/components/requestBodies/"
	RefPrefixHeaders         = "#/components/headers/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
	RefPrefixLinks           = "#/components/links/"
	RefPrefixCallbacks       = "#/components/callbacks/"
	RefPrefixPathItems       = "#/components/pathItems/"
)

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + EscapeToken(name)
}

// ComponentRef builds "#/components/{section}/{name}".
func ComponentRef(section, name string) string {
	return RefPrefixComponents + section + "/" + EscapeToken(name)
}

// TrimRef strips prefix from ref and unescapes the remaining JSON pointer
// token. It reports false when ref does not start with prefix or nothing
// follows it.
func TrimRef(ref, prefix string) (string, bool) {
	if !strings.HasPrefix(ref, prefix) || len(ref) == len(prefix) {
		return "", false
	}
	return UnescapeToken(ref[len(prefix):]), true
}

// SplitComponentRef splits "#/components/{section}/{name}" into its parts.
func SplitComponentRef(ref string) (section, name string, ok bool) {
	rest, ok := strings.CutPrefix(ref, RefPrefixComponents)
	if !ok {
		return "", "", false
	}
	section, name, ok = strings.Cut(rest, "/")
	if !ok || section == "" || name == "" {
		return "", "", false
	}
	return section, UnescapeToken(name), true
}

// EscapeToken escapes a JSON pointer reference token (RFC 6901).
func EscapeToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	return strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}
