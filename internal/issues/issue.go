// Package issues provides the finding type reported when verifying an
// extracted document.
package issues

import (
	"fmt"

	"github.com/erraggy/oasextract/internal/severity"
)

// Check names the verification that produced an issue.
type Check string

const (
	// CheckDanglingRef is a local $ref that does not resolve.
	CheckDanglingRef Check = "dangling-ref"
	// CheckLeakedSchema is a schema no selected operation reaches.
	CheckLeakedSchema Check = "leaked-schema"
	// CheckIdempotence is a difference found when extracting the output again.
	CheckIdempotence Check = "idempotence"
	// CheckStructure is a structural problem reported by the OpenAPI loader.
	CheckStructure Check = "structure"
)

// Issue represents a single problem found in a document.
type Issue struct {
	// Check identifies the verification that failed
	Check Check
	// Pointer is the JSON pointer of the problematic node (e.g., "/paths/~1pets/get")
	Pointer string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Ref is the reference string involved, if any
	Ref string
	// Context carries extra detail such as a diff (optional)
	Context string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	location := i.Pointer
	if location == "" {
		location = "/"
	}
	result := fmt.Sprintf("%s [%s] %s: %s", symbol, i.Check, location, i.Message)

	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// Count returns how many issues are at least as severe as min.
func Count(list []Issue, min severity.Severity) int {
	n := 0
	for _, issue := range list {
		if issue.Severity.AtLeast(min) {
			n++
		}
	}
	return n
}
