// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasextract capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasextract"
)

const serverInstructions = `oasextract MCP server: extracts the external subset of an OpenAPI 3.x document and verifies extracted documents.

Extraction settings come from the profile file (OASEXTRACT_MCP_PROFILE, else ./oasextract.yaml or ~/.config/oasextract/config.yaml) and OASEXTRACT_* variables; tool arguments override them per call.

Server settings (OASEXTRACT_MCP_*):
- CACHE_ENABLED (default: true), CACHE_FILE_TTL (15m), CACHE_URL_TTL (5m), CACHE_CONTENT_TTL (15m)
- MAX_INLINE_SIZE (10 MiB), MAX_FETCH_SIZE (50 MiB)
- ALLOW_PRIVATE_IPS (default: false): permit URL inputs that resolve to private addresses
- VERIFY_STRUCTURAL (default: false): run kin-openapi validation in verify by default

Start with closure to preview which paths and schemas a selection keeps, then extract. Decoded documents are cached per session; file entries are keyed by path and mtime.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasextract", Version: oasextract.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "Extract the external subset of an OpenAPI 3.x document (Swagger 2.0 is rejected): the paths matching the include markers or prefixes, every schema they reach transitively, and a reconciled API key security scheme. Returns statistics, the security decision and, unless output is set, the extracted document. Use verify=true to check the result in the same call.",
	}, handleExtract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "verify",
		Description: "Verify an extracted document: every local $ref resolves, no schema is unreachable from the paths, and extracting it again changes nothing. Pass source (the original document) to grade dangling references: error when the source resolves them, info when the source was dangling too. structural=true also runs kin-openapi validation for OpenAPI 3 documents.",
	}, handleVerify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "closure",
		Description: "Preview a selection without building the output document. Returns the selected paths, operation count, the sorted schema closure, dangling schema references and the detected API key headers.",
	}, handleClosure)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
