// Package severity provides the severity levels attached to verification
// findings.
//
// Levels are ordered from least to most severe: Info < Warning < Error.
package severity

// Severity indicates how serious a finding is.
type Severity int

const (
	// SeverityInfo is an informational notice, e.g. a dangling reference that
	// the extraction deliberately left out.
	SeverityInfo Severity = iota

	// SeverityWarning flags output that is usable but suspicious, such as a
	// schema no selected operation reaches.
	SeverityWarning

	// SeverityError marks output that breaks a guarantee of the extraction.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}

// Parse maps a level name to a Severity.
func Parse(name string) (Severity, bool) {
	switch name {
	case "info":
		return SeverityInfo, true
	case "warning", "warn":
		return SeverityWarning, true
	case "error":
		return SeverityError, true
	default:
		return 0, false
	}
}
