// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasextract/value"
)

// WidgetAPI is an OAS 3.0 document mixing external and internal paths.
//
// The external paths reach Widget, Part and Owner directly, Error through the
// NotFound response, and PartSpec, which is never defined. AuditLog and
// AuditEntry are only reachable from the internal path. Both external paths
// declare the X-Api-Key header, once through components.parameters.
const WidgetAPI = `openapi: 3.0.3
info:
  title: Widget Service
  version: 2.1.0
  description: Internal and external widget operations
servers:
  - url: https://internal.example.com
security:
  - APIKeyHeader: []
tags:
  - name: widgets
  - name: admin
paths:
  /api/external/widgets:
    parameters:
      - $ref: '#/components/parameters/ApiKey'
    get:
      tags: [widgets]
      operationId: listWidgets
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Widget'
  /api/external/widgets/{id}:
    get:
      tags: [widgets]
      operationId: getWidget
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
        - name: X-Api-Key
          in: header
          schema:
            type: string
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Widget'
        '404':
          $ref: '#/components/responses/NotFound'
  /api/internal/audit:
    get:
      tags: [admin]
      operationId: listAudit
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/AuditLog'
components:
  parameters:
    ApiKey:
      name: X-Api-Key
      in: header
      required: true
      schema:
        type: string
  responses:
    NotFound:
      description: not found
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Error'
  schemas:
    AuditLog:
      type: object
      properties:
        entries:
          type: array
          items:
            $ref: '#/components/schemas/AuditEntry'
    AuditEntry:
      type: object
    Widget:
      type: object
      properties:
        id:
          type: string
        parts:
          type: array
          items:
            $ref: '#/components/schemas/Part'
        owner:
          $ref: '#/components/schemas/Owner'
    Part:
      type: object
      properties:
        parent:
          $ref: '#/components/schemas/Widget'
        spec:
          $ref: '#/components/schemas/PartSpec'
    Owner:
      type: object
    Error:
      type: object
      properties:
        code:
          type: integer
  securitySchemes:
    APIKeyHeader:
      type: apiKey
      in: header
      name: X-Api-Key
`

// MustDecode decodes a JSON or YAML document, failing the test on error.
func MustDecode(t *testing.T, src string) value.Value {
	t.Helper()

	v, err := value.Decode([]byte(src))
	if err != nil {
		t.Fatalf("Failed to decode document: %v", err)
	}
	return v
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", data)
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", data)
}

// WriteTempFile writes data to name inside a per-test temporary directory.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
