package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasextract/verifier"
)

// VerifyFlags contains flags for the verify command
type VerifyFlags struct {
	SelectionFlags
	Source          string
	Structural      bool
	SkipIdempotence bool
	Format          string
	Quiet           bool
}

// SetupVerifyFlags creates and configures a FlagSet for the verify command.
// Returns the FlagSet and a VerifyFlags struct with bound flag variables.
func SetupVerifyFlags() (*flag.FlagSet, *VerifyFlags) {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	flags := &VerifyFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Source, "source", "", "the document the input was extracted from; grades dangling references")
	fs.BoolVar(&flags.Structural, "structural", false, "also validate with kin-openapi (OpenAPI 3 only)")
	fs.BoolVar(&flags.SkipIdempotence, "skip-idempotence", false, "skip the re-extraction check")
	fs.StringVar(&flags.Format, "format", FormatText, "report format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only print error-level findings")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only print error-level findings")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasextract verify [flags] <file|->\n\n")
		Writef(fs.Output(), "Verify an extracted document: every local $ref resolves, every schema is reachable\n")
		Writef(fs.Output(), "from a path, and extracting it again changes nothing.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasextract verify external.yaml\n")
		Writef(fs.Output(), "  oasextract verify --source openapi.yaml --structural external.yaml\n")
		Writef(fs.Output(), "  oasextract verify --format json external.yaml | jq '.Issues'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    No error-level findings\n")
		Writef(fs.Output(), "  1    Error-level findings reported\n")
		Writef(fs.Output(), "  2    Invalid input or configuration\n")
	}

	return fs, flags
}

// HandleVerify executes the verify command
func HandleVerify(args []string) error {
	return runVerify(args, os.Stdin, os.Stdout, os.Stderr)
}

func runVerify(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupVerifyFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("verify command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Source == StdinFilePath && fs.Arg(0) == StdinFilePath {
		return fmt.Errorf("only one of the document and --source can be read from stdin")
	}

	p, err := flags.profile(flagsSet(fs))
	if err != nil {
		return err
	}
	in, err := readSpec(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	opts := []verifier.Option{
		verifier.WithExtractor(p.Extractor(in.doc)),
		verifier.WithStructural(flags.Structural),
		verifier.WithIdempotence(!flags.SkipIdempotence),
	}
	if flags.Source != "" {
		src, err := readSpec(flags.Source, stdin)
		if err != nil {
			return err
		}
		opts = append(opts, verifier.WithSource(src.doc))
	}

	report, err := verifier.Verify(context.Background(), in.doc, opts...)
	if err != nil {
		return err
	}

	switch flags.Format {
	case FormatJSON, FormatYAML:
		if err := OutputStructured(stdout, report, flags.Format); err != nil {
			return err
		}
	default:
		if !flags.Quiet {
			Writef(stderr, "Specification: %s\n", FormatSpecPath(in.path))
		}
		if !flags.Quiet || !report.Valid() {
			writeVerifyReport(stdout, report)
		}
	}

	if !report.Valid() {
		return ErrFindings
	}
	return nil
}

// writeVerifyReport prints every finding, including any re-extraction diff,
// followed by a summary line.
func writeVerifyReport(w io.Writer, report *verifier.Report) {
	for _, issue := range report.Issues {
		Writef(w, "  %s\n", issue.String())
	}
	status := "OK"
	if !report.Valid() {
		status = "FAILED"
	}
	Writef(w, "Verification %s: %d error(s), %d finding(s)\n", status, report.ErrorCount(), len(report.Issues))
}
