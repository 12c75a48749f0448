package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasextract/extractor"
	"github.com/erraggy/oasextract/internal/testutil"
	"github.com/erraggy/oasextract/value"
)

// isolate keeps the developer's profile and OASEXTRACT_* variables out of
// command tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	for _, key := range []string{"INCLUDE", "INCLUDE_PREFIX", "REF_PREFIX", "HEADER_MARKER", "HEADER_SOURCE", "API_KEY_SCHEME", "TITLE_SUFFIX", "DESCRIPTION", "CARRY_COMPONENTS"} {
		t.Setenv("OASEXTRACT_"+key, "")
	}
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestOutputStructured(t *testing.T) {
	data := struct {
		Name  string `json:"name" yaml:"name"`
		Count int    `json:"count" yaml:"count"`
	}{"widgets", 2}

	var buf bytes.Buffer
	require.NoError(t, OutputStructured(&buf, data, FormatJSON))
	assert.Equal(t, "{\n  \"name\": \"widgets\",\n  \"count\": 2\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputStructured(&buf, data, FormatYAML))
	assert.Equal(t, "name: widgets\ncount: 2\n", buf.String())

	assert.Error(t, OutputStructured(&buf, data, FormatText))
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(ErrFindings))
	assert.Equal(t, 1, ExitCode(fmt.Errorf("verify: %w", ErrFindings)))
	assert.Equal(t, 2, ExitCode(errors.New("boom")))
}

func TestReadSpec(t *testing.T) {
	path := testutil.WriteTempFile(t, "api.json", []byte(`{"openapi": "3.0.3", "paths": {}}`))

	in, err := readSpec(path, nil)
	require.NoError(t, err)
	assert.Equal(t, value.FormatJSON, in.format)
	assert.Equal(t, path, in.path)

	in, err = readSpec(StdinFilePath, strings.NewReader("openapi: 3.0.3\npaths: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, value.FormatYAML, in.format)

	_, err = readSpec("/nonexistent/api.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading /nonexistent/api.yaml")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, extractor.NopLogger{}, newLogger(&buf, false))

	logger := newLogger(&buf, true)
	logger.Debug("closure resolved", "schemas", 3)
	assert.Contains(t, buf.String(), "closure resolved")
	assert.Contains(t, buf.String(), "schemas=3")
}

func TestStringList(t *testing.T) {
	var list stringList
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&list, "include", "")

	require.NoError(t, fs.Parse([]string{"--include", "/a/", "--include", "/b/, /c/,"}))
	assert.Equal(t, stringList{"/a/", "/b/", "/c/"}, list)
	assert.Equal(t, "/a/,/b/,/c/", list.String())
}
