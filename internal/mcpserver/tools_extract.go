package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasextract/extractor"
	"github.com/erraggy/oasextract/internal/cliutil"
	"github.com/erraggy/oasextract/internal/profile"
	"github.com/erraggy/oasextract/value"
	"github.com/erraggy/oasextract/verifier"
)

// selectionInput overrides the profile for a single call. Zero values keep
// the profile setting.
type selectionInput struct {
	Include         []string `json:"include,omitempty"          jsonschema:"Path markers; a path containing any of them is selected. Replaces the profile's markers and prefixes."`
	IncludePrefix   []string `json:"include_prefix,omitempty"   jsonschema:"Path prefixes; a path starting with any of them is selected. Replaces the profile's markers and prefixes."`
	RefPrefix       string   `json:"ref_prefix,omitempty"       jsonschema:"Schema reference prefix (default #/components/schemas/)"`
	HeaderMarker    string   `json:"header_marker,omitempty"    jsonschema:"Case-insensitive substring that marks an API key header (default api-key)"`
	HeaderSource    string   `json:"header_source,omitempty"    jsonschema:"How API key headers are recognised: marker, declared, or either"`
	APIKeyScheme    string   `json:"api_key_scheme,omitempty"   jsonschema:"Name of the security scheme to reconcile (default APIKeyHeader)"`
	CarryComponents *bool    `json:"carry_components,omitempty" jsonschema:"Carry referenced parameters, responses, requestBodies and headers (default true)"`
}

// apply overlays the call's settings on p.
func (s selectionInput) apply(p *profile.Profile) error {
	if len(s.Include) > 0 || len(s.IncludePrefix) > 0 {
		p.Include = s.Include
		p.IncludePrefix = s.IncludePrefix
	}
	if s.RefPrefix != "" {
		p.RefPrefix = s.RefPrefix
	}
	if s.HeaderMarker != "" {
		p.HeaderMarker = s.HeaderMarker
	}
	if s.HeaderSource != "" {
		p.HeaderSource = s.HeaderSource
	}
	if s.APIKeyScheme != "" {
		p.APIKeyScheme = s.APIKeyScheme
	}
	if s.CarryComponents != nil {
		p.CarryComponents = *s.CarryComponents
	}
	return p.Validate()
}

// loadProfile reads the server's profile and applies the call's selection.
func loadProfile(sel selectionInput) (*profile.Profile, error) {
	p, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}
	if err := sel.apply(p); err != nil {
		return nil, err
	}
	return p, nil
}

type serverInput struct {
	URL         string `json:"url"                   jsonschema:"Server URL"`
	Description string `json:"description,omitempty" jsonschema:"Server description"`
}

type extractInput struct {
	Spec        specInput      `json:"spec"                  jsonschema:"The document to extract from"`
	Selection   selectionInput `json:"selection,omitempty"   jsonschema:"Overrides for path selection and security reconciliation"`
	Servers     []serverInput  `json:"servers,omitempty"     jsonschema:"Servers for the output; the input's servers are never copied, so the output has none when empty"`
	TitleSuffix *string        `json:"title_suffix,omitempty" jsonschema:"Suffix appended to info.title (default ' - External API')"`
	Description *string        `json:"description,omitempty" jsonschema:"Replacement info.description; empty keeps the input's"`
	Format      string         `json:"format,omitempty"      jsonschema:"Output format: json or yaml (default: the input's format)"`
	Output      string         `json:"output,omitempty"      jsonschema:"Write the document to this file instead of returning it"`
	Verify      bool           `json:"verify,omitempty"      jsonschema:"Verify the extracted document before returning"`
}

type securityOutput struct {
	Action    string   `json:"action"`
	Scheme    string   `json:"scheme,omitempty"`
	OldHeader string   `json:"old_header,omitempty"`
	NewHeader string   `json:"new_header,omitempty"`
	Headers   []string `json:"headers,omitempty"`
}

type extractOutput struct {
	SourceFormat   string         `json:"source_format"`
	SelectedPaths  []string       `json:"selected_paths,omitempty"`
	OperationCount int            `json:"operation_count"`
	Schemas        []string       `json:"schemas,omitempty"`
	Dangling       []string       `json:"dangling,omitempty"`
	Components     map[string]int `json:"components,omitempty"`
	Security       securityOutput `json:"security"`
	InputSize      int            `json:"input_size"`
	OutputSize     int            `json:"output_size"`
	Reduction      float64        `json:"reduction_percent"`
	WrittenTo      string         `json:"written_to,omitempty"`
	Document       string         `json:"document,omitempty"`
	Verification   *verifyOutput  `json:"verification,omitempty"`
}

func handleExtract(ctx context.Context, _ *mcp.CallToolRequest, input extractInput) (*mcp.CallToolResult, extractOutput, error) {
	spec, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}
	p, err := loadProfile(input.Selection)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}
	if len(input.Servers) > 0 {
		p.Servers = make([]extractor.Server, 0, len(input.Servers))
		for _, s := range input.Servers {
			p.Servers = append(p.Servers, extractor.Server{URL: s.URL, Description: s.Description})
		}
	}
	if input.TitleSuffix != nil {
		p.TitleSuffix = *input.TitleSuffix
	}
	if input.Description != nil {
		p.Description = *input.Description
	}

	format := spec.format
	if input.Format != "" {
		if format, err = value.ParseFormat(input.Format); err != nil {
			return errResult(err), extractOutput{}, nil
		}
	}
	if format == value.FormatUnknown {
		format = value.FormatYAML
	}

	e := p.Extractor(spec.doc)
	result, err := e.Extract(spec.doc)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	output := extractOutput{
		SourceFormat:   string(spec.format),
		SelectedPaths:  result.SelectedPaths,
		OperationCount: result.OperationCount,
		Schemas:        result.Schemas,
		Dangling:       result.Dangling,
		Components:     result.Components,
		Security: securityOutput{
			Action:    string(result.Security.Action),
			Scheme:    result.Security.Scheme,
			OldHeader: result.Security.OldHeader,
			NewHeader: result.Security.NewHeader,
			Headers:   result.Security.Headers,
		},
		InputSize:  result.InputSize,
		OutputSize: result.OutputSize,
		Reduction:  result.Reduction(),
	}

	data, err := value.Marshal(result.Document, format)
	if err != nil {
		return errResult(fmt.Errorf("encoding output: %w", err)), extractOutput{}, nil
	}
	if input.Output != "" {
		if err := cliutil.WriteOutputFile(input.Output, data, input.Spec.File); err != nil {
			return errResult(err), extractOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	if input.Verify {
		report, err := verifier.Verify(ctx, result.Document,
			verifier.WithExtractor(e),
			verifier.WithSource(spec.doc),
			verifier.WithStructural(cfg.VerifyStructural),
		)
		if err != nil {
			return errResult(err), extractOutput{}, nil
		}
		v := makeVerifyOutput(report)
		output.Verification = &v
	}

	return nil, output, nil
}
