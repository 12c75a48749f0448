package value

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasextract/oaserrors"
)

// ReadFile reads and decodes the document at path, reporting its format.
func ReadFile(path string) (Value, Format, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is caller-provided input
	if err != nil {
		return Value{}, FormatUnknown, fmt.Errorf("value: reading %s: %w", path, err)
	}
	v, err := decodeFrom(path, data)
	if err != nil {
		return Value{}, FormatUnknown, err
	}
	return v, DetectFormat(path, data), nil
}

// ReadAll reads and decodes a document from r, detecting the format from
// its content.
func ReadAll(r io.Reader) (Value, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, FormatUnknown, fmt.Errorf("value: reading input: %w", err)
	}
	v, err := decodeFrom("", data)
	if err != nil {
		return Value{}, FormatUnknown, err
	}
	return v, DetectFormat("", data), nil
}

// decodeFrom decodes data and stamps path onto any ParseError.
func decodeFrom(path string, data []byte) (Value, error) {
	v, err := Decode(data)
	if err != nil {
		var parseErr *oaserrors.ParseError
		if path != "" && errors.As(err, &parseErr) && parseErr.Path == "" {
			parseErr.Path = path
		}
		return Value{}, err
	}
	return v, nil
}
