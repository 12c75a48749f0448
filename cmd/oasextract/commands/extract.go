package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/erraggy/oasextract"
	"github.com/erraggy/oasextract/extractor"
	"github.com/erraggy/oasextract/internal/cliutil"
	"github.com/erraggy/oasextract/internal/maputil"
	"github.com/erraggy/oasextract/internal/profile"
	"github.com/erraggy/oasextract/value"
	"github.com/erraggy/oasextract/verifier"
)

// SelectionFlags are the profile overrides shared by extract and verify.
type SelectionFlags struct {
	Config       string
	Include      stringList
	Prefix       stringList
	RefPrefix    string
	HeaderMarker string
	HeaderSource string
	Scheme       string
	NoCarry      bool
}

func (f *SelectionFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "profile file (default: ./oasextract.yaml or ~/.config/oasextract/config.yaml)")
	fs.Var(&f.Include, "include", "select paths containing this marker (repeatable; replaces the profile's selection)")
	fs.Var(&f.Prefix, "prefix", "select paths starting with this prefix (repeatable; replaces the profile's selection)")
	fs.StringVar(&f.RefPrefix, "ref-prefix", "", "schema reference prefix (default #/components/schemas/)")
	fs.StringVar(&f.HeaderMarker, "header-marker", "", "case-insensitive substring marking API key headers (default api-key)")
	fs.StringVar(&f.HeaderSource, "header-source", "", "how API key headers are recognised: marker, declared, or either")
	fs.StringVar(&f.Scheme, "scheme", "", "security scheme to reconcile (default APIKeyHeader)")
	fs.BoolVar(&f.NoCarry, "no-carry", false, "do not carry referenced parameters, responses and other components")
}

// profile loads the profile and applies the flags the user set.
func (f *SelectionFlags) profile(set map[string]bool) (*profile.Profile, error) {
	p, err := profile.Load(f.Config)
	if err != nil {
		return nil, err
	}
	if set["include"] || set["prefix"] {
		p.Include = f.Include
		p.IncludePrefix = f.Prefix
	}
	if set["ref-prefix"] {
		p.RefPrefix = f.RefPrefix
	}
	if set["header-marker"] {
		p.HeaderMarker = f.HeaderMarker
	}
	if set["header-source"] {
		p.HeaderSource = f.HeaderSource
	}
	if set["scheme"] {
		p.APIKeyScheme = f.Scheme
	}
	if f.NoCarry {
		p.CarryComponents = false
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// flagsSet returns the names of the flags given on the command line.
func flagsSet(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// ExtractFlags contains flags for the extract command
type ExtractFlags struct {
	SelectionFlags
	Servers     stringList
	TitleSuffix string
	Description string
	Output      string
	Format      string
	Quiet       bool
	Verbose     bool
	Verify      bool
}

// SetupExtractFlags creates and configures a FlagSet for the extract command.
// Returns the FlagSet and an ExtractFlags struct with bound flag variables.
func SetupExtractFlags() (*flag.FlagSet, *ExtractFlags) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	flags := &ExtractFlags{}

	flags.register(fs)
	fs.Var(&flags.Servers, "server", "server URL for the output (repeatable; the input's servers are never copied, so without this the output has none)")
	fs.StringVar(&flags.TitleSuffix, "title-suffix", "", "suffix appended to info.title (default ' - External API')")
	fs.StringVar(&flags.Description, "description", "", "replacement info.description")
	fs.StringVar(&flags.Output, "o", "", "output file (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output document format: json or yaml (default: the input's format)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no report on stderr")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no report on stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log extraction diagnostics to stderr")
	fs.BoolVar(&flags.Verify, "verify", false, "verify the extracted document; exit 1 on error findings")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasextract extract [flags] <file|->\n\n")
		Writef(fs.Output(), "Extract the external paths of an OpenAPI 3.x document together with\n")
		Writef(fs.Output(), "every schema they reach, and reconcile the API key security scheme.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasextract extract openapi.yaml -o external.yaml\n")
		Writef(fs.Output(), "  oasextract extract --include /public/ --include /partner/ openapi.json\n")
		Writef(fs.Output(), "  oasextract extract --server https://api.example.com --format json openapi.yaml\n")
		Writef(fs.Output(), "  cat openapi.yaml | oasextract extract -q - > external.yaml\n")
		Writef(fs.Output(), "\nPipelining:\n")
		Writef(fs.Output(), "  - Use '-' as the file path to read from stdin\n")
		Writef(fs.Output(), "  - The document goes to stdout; the report goes to stderr unless -q is given\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Extraction successful\n")
		Writef(fs.Output(), "  1    --verify found error-level problems\n")
		Writef(fs.Output(), "  2    Invalid input or configuration\n")
	}

	return fs, flags
}

// HandleExtract executes the extract command
func HandleExtract(args []string) error {
	return runExtract(args, os.Stdin, os.Stdout, os.Stderr)
}

func runExtract(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupExtractFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("extract command requires exactly one file path or '-' for stdin")
	}

	var outFormat value.Format
	if flags.Format != "" {
		var err error
		if outFormat, err = value.ParseFormat(flags.Format); err != nil {
			return err
		}
	}

	set := flagsSet(fs)
	p, err := flags.profile(set)
	if err != nil {
		return err
	}
	if len(flags.Servers) > 0 {
		p.Servers = make([]extractor.Server, 0, len(flags.Servers))
		for _, url := range flags.Servers {
			p.Servers = append(p.Servers, extractor.Server{URL: url})
		}
	}
	if set["title-suffix"] {
		p.TitleSuffix = flags.TitleSuffix
	}
	if set["description"] {
		p.Description = flags.Description
	}

	startTime := time.Now()
	in, err := readSpec(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	e := p.Extractor(in.doc)
	e.Logger = newLogger(stderr, flags.Verbose)
	result, err := e.Extract(in.doc)
	if err != nil {
		return err
	}
	totalTime := time.Since(startTime)

	if outFormat == "" {
		outFormat = in.format
	}
	data, err := value.Marshal(result.Document, outFormat)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	if flags.Output != "" {
		var inputs []string
		if in.path != StdinFilePath {
			inputs = append(inputs, in.path)
		}
		if err := cliutil.WriteOutputFile(flags.Output, data, inputs...); err != nil {
			return err
		}
	} else if _, err := stdout.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !flags.Quiet {
		writeExtractReport(stderr, in, p, result, flags.Output, totalTime)
	}

	if flags.Verify {
		report, err := verifier.Verify(context.Background(), result.Document,
			verifier.WithExtractor(e),
			verifier.WithSource(in.doc),
		)
		if err != nil {
			return err
		}
		if !flags.Quiet || !report.Valid() {
			writeVerifyReport(stderr, report)
		}
		if !report.Valid() {
			return ErrFindings
		}
	}
	return nil
}

func writeExtractReport(w io.Writer, in *spec, p *profile.Profile, result *extractor.Result, output string, elapsed time.Duration) {
	doc := extractor.NewDocument(in.doc)
	versionKey, version, _ := doc.VersionKey()
	versionText, _ := version.AsString()

	Writef(w, "OpenAPI External Extractor\n")
	Writef(w, "==========================\n\n")
	Writef(w, "oasextract version: %s\n", oasextract.Version())
	if p.File != "" {
		Writef(w, "Profile: %s\n", p.File)
	}
	Writef(w, "Specification: %s\n", FormatSpecPath(in.path))
	if versionKey != "" {
		Writef(w, "Version: %s %s\n", versionKey, versionText)
	}
	Writef(w, "Source Format: %s\n", result.SourceFormat)
	Writef(w, "Paths: %d of %d selected\n", len(result.SelectedPaths), doc.Paths().Len())
	Writef(w, "Operations: %d\n", result.OperationCount)
	Writef(w, "Schemas: %d of %d kept\n", len(result.Schemas), doc.Schemas().Len())
	if len(result.Dangling) > 0 {
		Writef(w, "Dangling References: %s\n", strings.Join(result.Dangling, ", "))
	}
	if len(result.Components) > 0 {
		sections := maputil.SortedKeys(result.Components)
		for i, name := range sections {
			sections[i] = fmt.Sprintf("%s=%d", name, result.Components[name])
		}
		Writef(w, "Components: %s\n", strings.Join(sections, " "))
	}
	Writef(w, "Security: %s\n", describeSecurity(result.Security))
	Writef(w, "Size: %s -> %s (%.1f%% smaller)\n",
		value.FormatBytes(int64(result.InputSize)), value.FormatBytes(int64(result.OutputSize)), result.Reduction())
	Writef(w, "Total Time: %v\n", elapsed)
	if output != "" {
		Writef(w, "Output: %s\n", output)
	}
}

// describeSecurity renders a security outcome as one line.
func describeSecurity(o extractor.SecurityOutcome) string {
	switch o.Action {
	case extractor.SecurityRewritten:
		return fmt.Sprintf("%s (%s: %s -> %s)", o.Action, o.Scheme, o.OldHeader, o.NewHeader)
	case extractor.SecurityAlreadyCorrect:
		return fmt.Sprintf("%s (%s: %s)", o.Action, o.Scheme, o.NewHeader)
	case extractor.SecuritySchemeMissing:
		return fmt.Sprintf("%s (%s not declared; header %s)", o.Action, o.Scheme, strings.Join(o.Headers, ", "))
	case extractor.SecurityRemoved:
		return fmt.Sprintf("%s (headers: %s)", o.Action, strings.Join(o.Headers, ", "))
	default:
		return string(o.Action)
	}
}
