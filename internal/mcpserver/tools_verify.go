package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasextract/verifier"
)

type verifyInput struct {
	Spec            specInput      `json:"spec"                       jsonschema:"The extracted document to verify"`
	Source          *specInput     `json:"source,omitempty"           jsonschema:"The document it was extracted from; grades dangling references"`
	Selection       selectionInput `json:"selection,omitempty"        jsonschema:"Extraction settings used for the idempotence check"`
	Structural      *bool          `json:"structural,omitempty"       jsonschema:"Run kin-openapi structural validation (OpenAPI 3 only)"`
	SkipIdempotence bool           `json:"skip_idempotence,omitempty" jsonschema:"Skip the re-extraction check"`
}

type verifyIssue struct {
	Check    string `json:"check"`
	Severity string `json:"severity"`
	Pointer  string `json:"pointer,omitempty"`
	Ref      string `json:"ref,omitempty"`
	Message  string `json:"message"`
}

type verifyOutput struct {
	Valid            bool          `json:"valid"`
	ErrorCount       int           `json:"error_count"`
	Idempotent       bool          `json:"idempotent"`
	StructureChecked bool          `json:"structure_checked"`
	DanglingRefs     []string      `json:"dangling_refs,omitempty"`
	LeakedSchemas    []string      `json:"leaked_schemas,omitempty"`
	Diff             string        `json:"diff,omitempty"`
	Issues           []verifyIssue `json:"issues,omitempty"`
}

func makeVerifyOutput(report *verifier.Report) verifyOutput {
	output := verifyOutput{
		Valid:            report.Valid(),
		ErrorCount:       report.ErrorCount(),
		Idempotent:       report.Idempotent,
		StructureChecked: report.StructureChecked,
		DanglingRefs:     report.DanglingRefs,
		LeakedSchemas:    report.LeakedSchemas,
		Diff:             report.Diff,
	}
	output.Issues = makeSlice[verifyIssue](len(report.Issues))
	for _, issue := range report.Issues {
		output.Issues = append(output.Issues, verifyIssue{
			Check:    string(issue.Check),
			Severity: issue.Severity.String(),
			Pointer:  issue.Pointer,
			Ref:      issue.Ref,
			Message:  issue.Message,
		})
	}
	return output
}

func handleVerify(ctx context.Context, _ *mcp.CallToolRequest, input verifyInput) (*mcp.CallToolResult, verifyOutput, error) {
	spec, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), verifyOutput{}, nil
	}
	p, err := loadProfile(input.Selection)
	if err != nil {
		return errResult(err), verifyOutput{}, nil
	}

	structural := cfg.VerifyStructural
	if input.Structural != nil {
		structural = *input.Structural
	}
	opts := []verifier.Option{
		verifier.WithExtractor(p.Extractor(spec.doc)),
		verifier.WithStructural(structural),
		verifier.WithIdempotence(!input.SkipIdempotence),
	}
	if input.Source != nil {
		src, err := input.Source.resolve(ctx)
		if err != nil {
			return errResult(err), verifyOutput{}, nil
		}
		opts = append(opts, verifier.WithSource(src.doc))
	}

	report, err := verifier.Verify(ctx, spec.doc, opts...)
	if err != nil {
		return errResult(err), verifyOutput{}, nil
	}
	return nil, makeVerifyOutput(report), nil
}
