// Package commands provides CLI command handlers for oasextract.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasextract/extractor"
	"github.com/erraggy/oasextract/internal/cliutil"
	"github.com/erraggy/oasextract/value"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrFindings is returned when a command completed but reported problems.
// The CLI exits with status 1 without printing it again.
var ErrFindings = errors.New("findings reported")

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrFindings) {
		return 1
	}
	return 2
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w as indented JSON or YAML.
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	_, err = w.Write(out)
	return err
}

// FormatSpecPath returns a display-friendly path for the specification.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// spec is a decoded input document.
type spec struct {
	path   string
	doc    value.Value
	format value.Format
}

// readSpec decodes the document at path, or stdin when path is "-".
func readSpec(path string, stdin io.Reader) (*spec, error) {
	var doc value.Value
	var format value.Format
	var err error
	if path == StdinFilePath {
		doc, format, err = value.ReadAll(stdin)
	} else {
		doc, format, err = value.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FormatSpecPath(path), err)
	}
	return &spec{path: path, doc: doc, format: format}, nil
}

// newLogger returns an slog-backed extractor logger on w when verbose is set.
func newLogger(w io.Writer, verbose bool) extractor.Logger {
	if !verbose {
		return extractor.NopLogger{}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return extractor.NewSlogAdapter(slog.New(handler))
}

// stringList is a repeatable string flag. Values may also be comma separated.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}
