package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasextract/internal/pathutil"
	"github.com/erraggy/oasextract/internal/testutil"
	"github.com/erraggy/oasextract/value"
)

func objectOf(t *testing.T, src string) *value.Object {
	t.Helper()
	obj, ok := testutil.MustDecode(t, src).AsObject()
	require.True(t, ok, "fixture must be an object")
	return obj
}

func TestSelectPaths(t *testing.T) {
	paths := objectOf(t, `
/api/external/users: {get: {}}
/api/internal/users: {get: {}}
/external/b: {post: {}, put: {}}
/v2/public/items: {get: {}}
`)

	tests := []struct {
		name    string
		include PathPredicate
		want    []string
		ops     int
	}{
		{"contains marker", PathContains("/external/"), []string{"/api/external/users", "/external/b"}, 3},
		{"prefix", PathHasPrefix("/v2/"), []string{"/v2/public/items"}, 1},
		{"any", AnyPath(PathHasPrefix("/v2/"), PathContains("/internal/")), []string{"/api/internal/users", "/v2/public/items"}, 2},
		{"all", AllPaths(PathHasPrefix("/api/"), PathContains("external")), []string{"/api/external/users"}, 1},
		{"none", PathContains("/nope/"), nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := SelectPaths(paths, tt.include)
			assert.Equal(t, tt.want, selected.Keys())
			assert.Equal(t, tt.ops, CountOperations(selected))
		})
	}

	t.Run("nil paths", func(t *testing.T) {
		selected := SelectPaths(nil, PathContains("/"))
		require.NotNil(t, selected)
		assert.Equal(t, 0, selected.Len())
	})
}

func TestCountOperationsIgnoresNonMethods(t *testing.T) {
	paths := objectOf(t, `
/a:
  summary: not an operation
  parameters: []
  get: {}
  query: {}
  x-internal: true
  trace: not-an-object
`)
	assert.Equal(t, 2, CountOperations(paths))
}

func TestScanRefs(t *testing.T) {
	v := testutil.MustDecode(t, `
a:
  $ref: '#/components/schemas/A'
  description: refs next to other content still count
list:
  - items:
      $ref: '#/components/schemas/B'
  - allOf:
      - $ref: '#/components/schemas/A'
      - $ref: '#/components/parameters/P'
      - $ref: 'other.yaml#/components/schemas/Remote'
escaped:
  $ref: '#/components/schemas/a~1b'
notARef:
  $ref: 42
`)
	refs := ScanRefs(v, pathutil.RefPrefixSchemas)
	assert.Equal(t, []string{"A", "B", "a/b"}, refs.Sorted())
}

func TestResolveClosure(t *testing.T) {
	schemas := objectOf(t, `
A: {properties: {b: {$ref: '#/components/schemas/B'}}}
B: {items: {$ref: '#/components/schemas/C'}}
C: {properties: {a: {$ref: '#/components/schemas/A'}, self: {$ref: '#/components/schemas/C'}}}
D: {properties: {missing: {$ref: '#/components/schemas/Missing'}}}
Unused: {type: string}
`)

	tests := []struct {
		name string
		seed []string
		want []string
	}{
		{"chain with cycle", []string{"A"}, []string{"A", "B", "C"}},
		{"self reference", []string{"C"}, []string{"A", "B", "C"}},
		{"dangling kept", []string{"D"}, []string{"D", "Missing"}},
		{"dangling seed", []string{"Ghost"}, []string{"Ghost"}},
		{"empty", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := make(RefSet)
			for _, name := range tt.seed {
				seed.Add(name)
			}
			got := ResolveClosure(seed, schemas, pathutil.RefPrefixSchemas)
			assert.Equal(t, tt.want, got.Sorted())
			assert.Len(t, seed, len(tt.seed), "seed must not change")
		})
	}

	t.Run("nil schemas", func(t *testing.T) {
		seed := RefSet{"A": {}}
		assert.Equal(t, []string{"A"}, ResolveClosure(seed, nil, pathutil.RefPrefixSchemas).Sorted())
	})
}

func TestResolveClosureCustomPrefix(t *testing.T) {
	schemas := objectOf(t, `
Pet: {properties: {tag: {$ref: '#/definitions/Tag'}}}
Tag: {type: string}
`)
	got := ResolveClosure(RefSet{"Pet": {}}, schemas, "#/definitions/")
	assert.Equal(t, []string{"Pet", "Tag"}, got.Sorted())
}

func TestResolveComponentsFollowsAllKinds(t *testing.T) {
	doc := NewDocument(testutil.MustDecode(t, `
paths:
  /x:
    post:
      requestBody: {$ref: '#/components/requestBodies/Body'}
      responses:
        '200': {$ref: '#/components/responses/Ok'}
components:
  requestBodies:
    Body:
      content:
        application/json:
          schema: {$ref: '#/components/schemas/Input'}
  responses:
    Ok:
      headers:
        X-Rate: {$ref: '#/components/headers/Rate'}
    Unused: {description: x}
  headers:
    Rate:
      schema: {$ref: '#/components/schemas/Rate'}
  schemas:
    Input: {type: object}
    Rate: {type: integer}
    Other: {type: string}
`))
	cc := resolveComponents(doc, doc.Paths(), pathutil.RefPrefixSchemas)

	assert.Equal(t, []string{"Input", "Rate"}, cc.schemas.Sorted())
	assert.Equal(t, []string{"Body"}, cc.sections["requestBodies"].Sorted())
	assert.Equal(t, []string{"Ok"}, cc.sections["responses"].Sorted())
	assert.Equal(t, []string{"Rate"}, cc.sections["headers"].Sorted())
}

func TestRefSet(t *testing.T) {
	s := make(RefSet)
	assert.True(t, s.Add("b"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"))
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, []string{"a", "b"}, s.Sorted())
}
