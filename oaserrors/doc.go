// Package oaserrors provides structured error types for oasextract.
//
// Import path: github.com/erraggy/oasextract/oaserrors
//
// Callers can tell error categories apart with [errors.Is] and [errors.As].
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures
//   - [ReferenceError]: local $ref values that do not resolve in a produced document
//   - [ValidationError]: a produced document failed a verification check
//   - [ResourceLimitError]: input exceeded a decoding limit
//   - [VersionError]: a document version the extractor does not reduce (Swagger 2.0)
//   - [ConfigError]: invalid extraction options or profile values
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrDanglingReference]: Matches [ReferenceError] with IsDangling=true
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrUnsupportedVersion]: Matches any [VersionError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// Extraction fails on document content only for Swagger 2.0 input. Dangling
// schema references and ambiguous security setups are resolved by omission;
// other errors come from decoding, configuration, and the verifier.
//
//	report, err := verifier.Verify(ctx, doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := report.Err(); errors.Is(err, oaserrors.ErrDanglingReference) {
//	    var refErr *oaserrors.ReferenceError
//	    if errors.As(err, &refErr) {
//	        fmt.Printf("unresolved: %s\n", refErr.Ref)
//	    }
//	}
package oaserrors
