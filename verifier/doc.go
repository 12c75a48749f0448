// Package verifier checks the guarantees of an extracted document.
//
// Verify walks the output of an extraction and reports:
//
//   - local references that do not resolve
//   - schemas that no path reaches
//   - differences produced by extracting the document a second time
//   - with WithStructural, problems found by the kin-openapi loader
//
// Findings are collected in a Report rather than returned as errors, so a
// caller can print all of them. Report.Err folds the error-level findings into
// oaserrors types for callers that only need pass or fail:
//
//	report, err := verifier.Verify(ctx, result.Document,
//	    verifier.WithSource(input),
//	    verifier.WithStructural(true),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := report.Err(); err != nil {
//	    return fmt.Errorf("extraction broke its guarantees: %w", err)
//	}
package verifier
