package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasextract/extractor"
)

type closureInput struct {
	Spec      specInput      `json:"spec"                jsonschema:"The document to inspect"`
	Selection selectionInput `json:"selection,omitempty" jsonschema:"Overrides for path selection"`
}

type closureOutput struct {
	SelectedPaths  []string `json:"selected_paths,omitempty"`
	OperationCount int      `json:"operation_count"`
	Closure        []string `json:"closure,omitempty"`
	Dangling       []string `json:"dangling,omitempty"`
	Headers        []string `json:"api_key_headers,omitempty"`
	TotalPaths     int      `json:"total_paths"`
	TotalSchemas   int      `json:"total_schemas"`
}

// handleClosure runs the extraction and reports only what it would keep.
func handleClosure(ctx context.Context, _ *mcp.CallToolRequest, input closureInput) (*mcp.CallToolResult, closureOutput, error) {
	spec, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), closureOutput{}, nil
	}
	p, err := loadProfile(input.Selection)
	if err != nil {
		return errResult(err), closureOutput{}, nil
	}

	result, err := p.Extractor(spec.doc).Extract(spec.doc)
	if err != nil {
		return errResult(err), closureOutput{}, nil
	}

	doc := extractor.NewDocument(spec.doc)
	return nil, closureOutput{
		SelectedPaths:  result.SelectedPaths,
		OperationCount: result.OperationCount,
		Closure:        result.Closure,
		Dangling:       result.Dangling,
		Headers:        result.Security.Headers,
		TotalPaths:     doc.Paths().Len(),
		TotalSchemas:   doc.Schemas().Len(),
	}, nil
}
