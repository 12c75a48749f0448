package verifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/erraggy/oasextract/extractor"
	"github.com/erraggy/oasextract/internal/issues"
	"github.com/erraggy/oasextract/internal/pathutil"
	"github.com/erraggy/oasextract/internal/severity"
	"github.com/erraggy/oasextract/oaserrors"
	"github.com/erraggy/oasextract/value"
)

// Issue is a single verification finding.
type Issue = issues.Issue

// Severity levels re-exported for callers outside the module.
const (
	SeverityInfo    = severity.SeverityInfo
	SeverityWarning = severity.SeverityWarning
	SeverityError   = severity.SeverityError
)

// Report is the outcome of verifying an extracted document.
type Report struct {
	// Issues lists every finding in check order.
	Issues []Issue
	// DanglingRefs are local $ref strings that do not resolve in the document.
	DanglingRefs []string
	// LeakedSchemas are defined schemas no path reaches.
	LeakedSchemas []string
	// Idempotent is false when extracting the document again changed it.
	// It is true when the check was skipped.
	Idempotent bool
	// Diff is a line diff of the two renderings when Idempotent is false.
	Diff string
	// StructureChecked reports whether the OpenAPI loader ran.
	StructureChecked bool
}

// ErrorCount returns the number of error-level issues.
func (r *Report) ErrorCount() int {
	return issues.Count(r.Issues, severity.SeverityError)
}

// Valid reports whether no error-level issue was found.
func (r *Report) Valid() bool {
	return r.ErrorCount() == 0
}

// Err folds the error-level issues into a single error, or returns nil.
// Dangling references become *oaserrors.ReferenceError; every other finding
// becomes *oaserrors.ValidationError.
func (r *Report) Err() error {
	var errs []error
	for _, issue := range r.Issues {
		if issue.Severity != severity.SeverityError {
			continue
		}
		switch issue.Check {
		case issues.CheckDanglingRef:
			errs = append(errs, &oaserrors.ReferenceError{
				Ref:        issue.Ref,
				Source:     issue.Pointer,
				IsDangling: true,
				Message:    issue.Message,
			})
		default:
			errs = append(errs, &oaserrors.ValidationError{
				Path:    issue.Pointer,
				Field:   string(issue.Check),
				Message: issue.Message,
			})
		}
	}
	return errors.Join(errs...)
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// Verify checks an extracted document:
//
//   - every local $ref resolves
//   - every schema is reachable from the paths
//   - extracting the document again leaves it unchanged
//   - optionally, the OpenAPI loader accepts it (WithStructural)
//
// Findings are returned in the Report. The error is reserved for problems
// running the checks themselves, such as invalid extractor configuration.
func Verify(ctx context.Context, doc value.Value, opts ...Option) (*Report, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	report := &Report{Idempotent: true}
	checkRefs(report, doc, cfg)
	checkLeaks(report, doc, cfg)
	if cfg.idempotence {
		if err := checkIdempotence(report, doc, cfg); err != nil {
			return nil, err
		}
	}
	if cfg.structural {
		checkStructure(ctx, report, doc)
	}
	return report, nil
}

// checkRefs reports every "#/..." reference that does not resolve as a JSON
// pointer into doc.
func checkRefs(report *Report, doc value.Value, cfg *verifyConfig) {
	ptr := pathutil.Get()
	defer pathutil.Put(ptr)

	seen := make(map[string]bool)
	var walk func(v value.Value)
	walk = func(v value.Value) {
		switch v.Kind() {
		case value.KindObject:
			if ref, ok := v.GetString("$ref"); ok && strings.HasPrefix(ref, "#") && !resolves(doc, ref) {
				if !seen[ref] {
					seen[ref] = true
					report.DanglingRefs = append(report.DanglingRefs, ref)
				}
				report.add(Issue{
					Check:    issues.CheckDanglingRef,
					Pointer:  ptr.String(),
					Ref:      ref,
					Message:  "reference does not resolve",
					Severity: danglingSeverity(cfg, ref),
				})
			}
			obj, _ := v.AsObject()
			for key, child := range obj.All() {
				ptr.Push(key)
				walk(child)
				ptr.Pop()
			}
		case value.KindArray:
			for i, item := range v.Items() {
				ptr.Push(strconv.Itoa(i))
				walk(item)
				ptr.Pop()
			}
		}
	}
	walk(doc)
}

// resolves reports whether ref, a local reference, names a node in doc.
func resolves(doc value.Value, ref string) bool {
	tokens, ok := pathutil.SplitPointer(strings.TrimPrefix(ref, "#"))
	if !ok {
		return false
	}
	_, ok = value.At(doc, tokens...)
	return ok
}

// danglingSeverity grades a dangling reference against the source document:
// dangling there too means the extraction kept it deliberately, while a
// reference that resolves in the source was lost.
func danglingSeverity(cfg *verifyConfig, ref string) severity.Severity {
	if cfg.source == nil {
		return severity.SeverityWarning
	}
	if resolves(*cfg.source, ref) {
		return severity.SeverityError
	}
	return severity.SeverityInfo
}

func checkLeaks(report *Report, doc value.Value, cfg *verifyConfig) {
	reachable := extractor.ReachableSchemas(doc, cfg.extractor.RefPrefix)
	for _, name := range extractor.NewDocument(doc).Schemas().Keys() {
		if reachable.Has(name) {
			continue
		}
		report.LeakedSchemas = append(report.LeakedSchemas, name)
		report.add(Issue{
			Check:    issues.CheckLeakedSchema,
			Pointer:  "/components/schemas/" + pathutil.EscapeToken(name),
			Message:  "schema is not reachable from any path",
			Severity: severity.SeverityError,
		})
	}
}

func checkIdempotence(report *Report, doc value.Value, cfg *verifyConfig) error {
	again, err := cfg.extractor.Extract(doc)
	if err != nil {
		return fmt.Errorf("verifier: re-extracting: %w", err)
	}
	if value.Equal(doc, again.Document) {
		return nil
	}

	report.Idempotent = false
	report.Diff, err = lineDiff(doc, again.Document)
	if err != nil {
		return fmt.Errorf("verifier: rendering diff: %w", err)
	}
	report.add(Issue{
		Check:    issues.CheckIdempotence,
		Message:  "extracting the document again changes it",
		Severity: severity.SeverityError,
		Context:  report.Diff,
	})
	return nil
}

// lineDiff renders a and b as YAML and returns the changed lines prefixed with
// "-" and "+".
func lineDiff(a, b value.Value) (string, error) {
	before, err := value.Marshal(a, value.FormatYAML)
	if err != nil {
		return "", err
	}
	after, err := value.Marshal(b, value.FormatYAML)
	if err != nil {
		return "", err
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String(), nil
}

// checkStructure runs the kin-openapi loader and validator. Swagger 2.0
// documents are outside its scope and are skipped.
func checkStructure(ctx context.Context, report *Report, doc value.Value) {
	if key, _, _ := extractor.NewDocument(doc).VersionKey(); key != "openapi" {
		report.add(Issue{
			Check:    issues.CheckStructure,
			Message:  "structural validation skipped: not an OpenAPI 3 document",
			Severity: severity.SeverityInfo,
		})
		return
	}
	report.StructureChecked = true

	data, err := doc.MarshalJSON()
	if err != nil {
		report.add(structureIssue("encoding document", err))
		return
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		report.add(structureIssue("loading document", err))
		return
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		report.add(structureIssue("validating document", err))
	}
}

func structureIssue(stage string, err error) Issue {
	return Issue{
		Check:    issues.CheckStructure,
		Message:  stage + ": " + err.Error(),
		Severity: severity.SeverityError,
	}
}
