package verifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasextract/extractor"
	"github.com/erraggy/oasextract/internal/issues"
	"github.com/erraggy/oasextract/internal/testutil"
	"github.com/erraggy/oasextract/oaserrors"
	"github.com/erraggy/oasextract/value"
)

const smallAPI = `openapi: 3.0.3
info:
  title: Small
  version: 1.0.0
paths:
  /external/ping:
    get:
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pong'
  /internal/stats:
    get:
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Stats'
components:
  schemas:
    Pong:
      type: object
      properties:
        ok:
          type: boolean
    Stats:
      type: object
`

func extract(t *testing.T, e *extractor.Extractor, src string) (value.Value, value.Value) {
	t.Helper()
	in := testutil.MustDecode(t, src)
	result, err := e.Extract(in)
	require.NoError(t, err)
	return in, result.Document
}

func issuesOf(report *Report, check issues.Check) []Issue {
	var out []Issue
	for _, issue := range report.Issues {
		if issue.Check == check {
			out = append(out, issue)
		}
	}
	return out
}

func TestVerifyCleanExtraction(t *testing.T) {
	in, out := extract(t, extractor.New(), testutil.WidgetAPI)

	report, err := Verify(context.Background(), out, WithSource(in))
	require.NoError(t, err)

	assert.True(t, report.Valid())
	assert.NoError(t, report.Err())
	assert.True(t, report.Idempotent)
	assert.Empty(t, report.Diff)
	assert.Empty(t, report.LeakedSchemas)
	assert.Equal(t, []string{"#/components/schemas/PartSpec"}, report.DanglingRefs)

	dangling := issuesOf(report, issues.CheckDanglingRef)
	require.Len(t, dangling, 1)
	assert.Equal(t, SeverityInfo, dangling[0].Severity, "dangling in the source too")
	assert.Equal(t, "/components/schemas/Part/properties/spec", dangling[0].Pointer)
	assert.False(t, report.StructureChecked)
}

func TestVerifyDanglingWithoutSource(t *testing.T) {
	_, out := extract(t, extractor.New(), testutil.WidgetAPI)

	report, err := Verify(context.Background(), out)
	require.NoError(t, err)

	dangling := issuesOf(report, issues.CheckDanglingRef)
	require.Len(t, dangling, 1)
	assert.Equal(t, SeverityWarning, dangling[0].Severity)
	assert.True(t, report.Valid())
}

func TestVerifyLostReference(t *testing.T) {
	e := extractor.New()
	e.CarryComponents = false
	in, out := extract(t, e, testutil.WidgetAPI)

	report, err := Verify(context.Background(), out, WithSource(in), WithExtractor(e))
	require.NoError(t, err)

	assert.False(t, report.Valid())
	assert.Contains(t, report.DanglingRefs, "#/components/responses/NotFound")
	assert.Contains(t, report.DanglingRefs, "#/components/parameters/ApiKey")

	err = report.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrDanglingReference))
	var refErr *oaserrors.ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.NotEmpty(t, refErr.Source)
}

func TestVerifyLeakedSchema(t *testing.T) {
	_, out := extract(t, extractor.New(), smallAPI)

	root, _ := out.AsObject()
	components, _ := root.Get("components")
	compObj, _ := components.AsObject()
	schemasVal, _ := compObj.Get("schemas")
	schemas, _ := schemasVal.AsObject()
	schemas.Set("Leaked/Thing", value.FromObject(value.NewObject()))

	report, err := Verify(context.Background(), out)
	require.NoError(t, err)

	assert.Equal(t, []string{"Leaked/Thing"}, report.LeakedSchemas)
	leaked := issuesOf(report, issues.CheckLeakedSchema)
	require.Len(t, leaked, 1)
	assert.Equal(t, "/components/schemas/Leaked~1Thing", leaked[0].Pointer)

	assert.False(t, report.Idempotent, "a second extraction drops the leaked schema")
	assert.Contains(t, report.Diff, "-    Leaked/Thing")

	err = report.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrValidation))
	assert.Equal(t, 2, report.ErrorCount())
}

func TestVerifySkipIdempotence(t *testing.T) {
	doc := testutil.MustDecode(t, smallAPI)

	report, err := Verify(context.Background(), doc, WithIdempotence(false))
	require.NoError(t, err)

	assert.True(t, report.Idempotent)
	assert.Empty(t, issuesOf(report, issues.CheckIdempotence))
	assert.Empty(t, report.LeakedSchemas, "every schema is reachable from some path of the document")
}

func TestVerifyStructural(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		_, out := extract(t, extractor.New(), smallAPI)

		report, err := Verify(context.Background(), out, WithStructural(true))
		require.NoError(t, err)
		assert.True(t, report.StructureChecked)
		assert.Empty(t, issuesOf(report, issues.CheckStructure))
		assert.True(t, report.Valid())
	})

	t.Run("missing info", func(t *testing.T) {
		doc := testutil.MustDecode(t, "openapi: 3.0.3\npaths: {}\n")

		report, err := Verify(context.Background(), doc, WithStructural(true), WithIdempotence(false))
		require.NoError(t, err)
		structure := issuesOf(report, issues.CheckStructure)
		require.Len(t, structure, 1)
		assert.Equal(t, SeverityError, structure[0].Severity)
		assert.False(t, report.Valid())
	})

	t.Run("swagger 2.0 skipped", func(t *testing.T) {
		doc := testutil.MustDecode(t, "swagger: '2.0'\ninfo: {title: x, version: '1'}\npaths: {}\n")

		report, err := Verify(context.Background(), doc, WithStructural(true), WithIdempotence(false))
		require.NoError(t, err)
		assert.False(t, report.StructureChecked)
		structure := issuesOf(report, issues.CheckStructure)
		require.Len(t, structure, 1)
		assert.Equal(t, SeverityInfo, structure[0].Severity)
	})
}

func TestVerifyOptions(t *testing.T) {
	doc := testutil.MustDecode(t, smallAPI)

	_, err := Verify(context.Background(), doc, WithExtractor(nil))
	assert.Error(t, err)

	bad := extractor.New()
	bad.RefPrefix = ""
	_, err = Verify(context.Background(), doc, WithExtractor(bad))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestResolves(t *testing.T) {
	doc := testutil.MustDecode(t, `
components:
  schemas:
    a/b: {type: string}
    list:
      - {type: string}
`)
	assert.True(t, resolves(doc, "#/components/schemas/a~1b"))
	assert.True(t, resolves(doc, "#/components/schemas/list/0"))
	assert.True(t, resolves(doc, "#"))
	assert.False(t, resolves(doc, "#/components/schemas/a/b"))
	assert.False(t, resolves(doc, "#components"))
}

func TestLineDiff(t *testing.T) {
	a := testutil.MustDecode(t, "a: 1\nb: 2\nc: 3\n")
	b := testutil.MustDecode(t, "a: 1\nb: 5\nc: 3\n")

	diff, err := lineDiff(a, b)
	require.NoError(t, err)
	assert.Equal(t, "-b: 2\n+b: 5\n", diff)
}
