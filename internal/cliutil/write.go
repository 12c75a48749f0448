// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/oasextract/internal/fileutil"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// RejectSymlinkOutput returns an error when path is an existing symlink, so
// output cannot be redirected to an unintended location.
func RejectSymlinkOutput(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cliutil: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("cliutil: refusing to write to symlink: %s", path)
	}
	return nil
}

// SameFile reports whether a and b name the same path once made absolute.
func SameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// WriteOutputFile writes data to path with owner-only permissions. The path
// is cleaned first, and symlinks and the input file itself are refused.
func WriteOutputFile(path string, data []byte, inputs ...string) error {
	cleaned := filepath.Clean(path)
	for _, in := range inputs {
		if in != "" && SameFile(cleaned, in) {
			return fmt.Errorf("cliutil: output file %s would overwrite input file %s", path, in)
		}
	}
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("cliutil: writing output file: %w", err)
	}
	return nil
}
