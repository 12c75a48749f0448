// Package extractor derives a publishable subset of an OpenAPI document.
//
// Given a full document, an Extractor keeps the paths accepted by an inclusion
// predicate, the transitive closure of schema definitions those paths
// reference, and a security-scheme block consistent with the API key headers
// the kept operations actually declare. The input is never modified.
//
// # Quick Start
//
//	result, err := extractor.ExtractWithOptions(
//	    extractor.WithSpecFilePath("openapi.yaml"),
//	    extractor.WithPathMarker("/external/"),
//	    extractor.WithServers(extractor.Server{
//	        URL:         "https://api.example.com",
//	        Description: "Production",
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d operations, %d schemas\n", result.OperationCount, len(result.Schemas))
//
// Or reuse an Extractor on already-decoded documents:
//
//	e := extractor.New()
//	e.Include = extractor.PathHasPrefix("/v2/public")
//	result, err := e.Extract(doc)
//
// # Pipeline
//
// Extraction runs in one pass:
//
//  1. SelectPaths filters the path map by key.
//  2. ScanRefs collects schema references from the kept path items.
//  3. ResolveClosure expands them to a fixed point over components.schemas.
//  4. DetectAPIKeyHeaders and ReconcileSecurity settle the security schemes.
//  5. The output document is assembled from the pieces.
//
// With CarryComponents (the default) the closure also follows references to
// parameters, responses, request bodies and the other component kinds, copying
// the referenced entries and any schemas reachable through them.
//
// # Security Reconciliation
//
// Header parameters whose name contains the header marker ("api-key" by
// default, compared case-insensitively) are treated as API key headers:
//
//   - none found: security schemes are kept as declared
//   - one found: the designated scheme is rewritten to expect that header
//   - several found: the global security schemes are dropped
//
// # Dangling References
//
// A schema reference with no definition is kept in Result.Closure and listed
// in Result.Dangling but is never emitted. Extract only fails on invalid
// configuration.
package extractor
