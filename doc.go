// Package oasextract extracts the external subset of an OpenAPI document.
//
// Internal API descriptions often mix operations meant for partners with
// operations that must never leave the building. oasextract selects the paths
// that belong to the external surface, keeps every schema those paths reach
// and nothing else, reconciles the API key security scheme with the header the
// operations actually send, and writes a self-contained document that can be
// published.
//
// OpenAPI 3.x documents are supported, in JSON or YAML. Swagger 2.0 keeps its
// definitions and security definitions outside components and is rejected
// with an unsupported-version error. The output keeps the input's key order
// and format unless another format is requested.
//
// The output's servers come only from configuration. The input's servers
// usually name internal hosts, so they are never copied.
//
// # Packages
//
//   - value: an ordered, format-preserving document model over YAML nodes
//   - extractor: path selection, reference scanning, closure resolution,
//     security reconciliation and document assembly
//   - verifier: checks that an extracted document has no dangling references,
//     no unreachable schemas, and does not change when extracted again
//   - oaserrors: structured error types shared by the packages
//
// # Quick Start
//
// Extract the paths containing "/external/" from a file:
//
//	import "github.com/erraggy/oasextract/extractor"
//
//	result, err := extractor.ExtractWithOptions(
//		extractor.WithSpecFilePath("openapi.yaml"),
//		extractor.WithPathMarker("/external/"),
//		extractor.WithServers(extractor.Server{URL: "https://api.example.com"}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("kept %d paths and %d schemas (%.1f%% smaller)\n",
//		len(result.SelectedPaths), len(result.Schemas), result.Reduction())
//
// Check the result before publishing it:
//
//	import "github.com/erraggy/oasextract/verifier"
//
//	report, err := verifier.Verify(ctx, result.Document, verifier.WithSource(input))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !report.Valid() {
//		log.Fatal(report.Err())
//	}
//
// # Command Line
//
// The oasextract command wraps the same packages:
//
//	oasextract extract openapi.yaml -o external.yaml
//	oasextract verify --source openapi.yaml external.yaml
//	oasextract mcp
//
// Settings are read from ./oasextract.yaml or ~/.config/oasextract/config.yaml
// and from OASEXTRACT_* environment variables; flags override both. The mcp
// command serves extract, verify and closure as Model Context Protocol tools
// over stdio.
//
// # Dangling References
//
// A schema reference that names a schema the document never defines is kept
// as written. It is reported in Result.Dangling and graded by the verifier:
// informational when the source document was already missing the schema, an
// error when the source defines it.
package oasextract
