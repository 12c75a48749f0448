package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasextract/value"
)

func TestMarkerMatcher(t *testing.T) {
	match := MarkerMatcher("api-key")

	tests := []struct {
		name string
		want bool
	}{
		{"X-Api-Key", true},
		{"X-API-KEY", true},
		{"x-partner-api-key", true},
		{"Authorization", false},
		{"X-ApiKey", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, match(tt.name))
		})
	}
}

func TestDeclaredAPIKeyHeaders(t *testing.T) {
	schemes := objectOf(t, `
Header: {type: apiKey, in: header, name: X-Tenant-Token}
Query: {type: apiKey, in: query, name: token}
Bearer: {type: http, scheme: bearer}
`)
	match := DeclaredAPIKeyHeaders(schemes)

	assert.True(t, match("x-tenant-token"))
	assert.False(t, match("token"))
	assert.False(t, match("X-Api-Key"))

	either := MarkerOrDeclared("api-key", schemes)
	assert.True(t, either("X-Api-Key"))
	assert.True(t, either("X-Tenant-Token"))
	assert.False(t, either("Authorization"))

	assert.False(t, DeclaredAPIKeyHeaders(nil)("X-Api-Key"))
}

func TestDetectAPIKeyHeaders(t *testing.T) {
	paths := objectOf(t, `
/a:
  parameters:
    - $ref: '#/components/parameters/Key'
  get:
    parameters:
      - {name: x-api-key, in: header}
      - {name: api-key, in: query}
      - {name: id, in: path}
/b:
  post:
    parameters:
      - {name: X-Partner-Api-Key, in: header}
      - $ref: '#/components/parameters/Missing'
      - $ref: 'shared.yaml#/Key'
  summary: ignored
`)
	params := objectOf(t, `
Key: {name: X-Api-Key, in: header}
`)

	got := DetectAPIKeyHeaders(paths, params, MarkerMatcher("api-key"))
	assert.Equal(t, []string{"X-Api-Key", "X-Partner-Api-Key"}, got, "first spelling wins, case-insensitive dedup")

	assert.Nil(t, DetectAPIKeyHeaders(nil, nil, MarkerMatcher("api-key")))
}

func TestReconcileSecurity(t *testing.T) {
	schemes := objectOf(t, `
APIKeyHeader: {type: apiKey, in: header, name: X-Api-Key}
Other: {type: http, scheme: basic}
`)

	t.Run("no headers", func(t *testing.T) {
		got, outcome := ReconcileSecurity(schemes, nil, "APIKeyHeader")
		assert.Same(t, schemes, got)
		assert.Equal(t, SecurityUnchanged, outcome.Action)
	})

	t.Run("already correct", func(t *testing.T) {
		got, outcome := ReconcileSecurity(schemes, []string{"X-Api-Key"}, "APIKeyHeader")
		assert.Same(t, schemes, got)
		assert.Equal(t, SecurityAlreadyCorrect, outcome.Action)
		assert.Equal(t, "X-Api-Key", outcome.OldHeader)
	})

	t.Run("already correct ignoring case", func(t *testing.T) {
		lower := objectOf(t, "APIKeyHeader: {type: apiKey, in: header, name: x-api-key}\n")
		got, outcome := ReconcileSecurity(lower, []string{"X-API-Key"}, "APIKeyHeader")
		assert.Same(t, lower, got)
		assert.Equal(t, SecurityAlreadyCorrect, outcome.Action)
		assert.Equal(t, "x-api-key", outcome.OldHeader)
		assert.Equal(t, "x-api-key", outcome.NewHeader, "declared spelling kept")
	})

	t.Run("rewritten", func(t *testing.T) {
		got, outcome := ReconcileSecurity(schemes, []string{"X-Custom-Key"}, "APIKeyHeader")
		require.NotNil(t, got)
		assert.Equal(t, SecurityRewritten, outcome.Action)
		assert.Equal(t, "X-Api-Key", outcome.OldHeader)
		assert.Equal(t, "X-Custom-Key", outcome.NewHeader)

		scheme, _ := got.Get("APIKeyHeader")
		name, _ := scheme.GetString("name")
		assert.Equal(t, "X-Custom-Key", name)
		typ, _ := scheme.GetString("type")
		assert.Equal(t, "apiKey", typ, "other fields carried")
		assert.Equal(t, []string{"APIKeyHeader", "Other"}, got.Keys())

		orig, _ := schemes.Get("APIKeyHeader")
		origName, _ := orig.GetString("name")
		assert.Equal(t, "X-Api-Key", origName, "input untouched")
	})

	t.Run("scheme missing", func(t *testing.T) {
		got, outcome := ReconcileSecurity(schemes, []string{"X-Custom-Key"}, "Nope")
		assert.Same(t, schemes, got)
		assert.Equal(t, SecuritySchemeMissing, outcome.Action)
		assert.Empty(t, outcome.NewHeader)
	})

	t.Run("scheme not an object", func(t *testing.T) {
		odd := value.NewObject()
		odd.Set("APIKeyHeader", value.String("broken"))
		_, outcome := ReconcileSecurity(odd, []string{"X-Custom-Key"}, "APIKeyHeader")
		assert.Equal(t, SecuritySchemeMissing, outcome.Action)
	})

	t.Run("no schemes declared", func(t *testing.T) {
		got, outcome := ReconcileSecurity(nil, []string{"X-Custom-Key"}, "APIKeyHeader")
		assert.Nil(t, got)
		assert.Equal(t, SecuritySchemeMissing, outcome.Action)
	})

	t.Run("several headers", func(t *testing.T) {
		got, outcome := ReconcileSecurity(schemes, []string{"X-Key-A", "X-Key-B"}, "APIKeyHeader")
		assert.Nil(t, got)
		assert.Equal(t, SecurityRemoved, outcome.Action)
		assert.Equal(t, []string{"X-Key-A", "X-Key-B"}, outcome.Headers)
	})
}
