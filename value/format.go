package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Format is the serialization format of a document.
type Format string

const (
	// FormatUnknown means the format could not be determined.
	FormatUnknown Format = "unknown"
	// FormatJSON is JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatUnknown, fmt.Errorf("value: unknown format %q (valid: json, yaml)", name)
	}
}

// DetectFormat determines the format from the file extension, falling back to
// the content when the path is empty or has no recognised extension.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return detectFormatFromContent(data)
}

// detectFormatFromContent treats anything starting with '{' or '[' as JSON.
func detectFormatFromContent(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatYAML
}

// Marshal serializes v as indented JSON or as YAML. Unknown formats fall back
// to YAML.
func Marshal(v Value, format Format) ([]byte, error) {
	if format == FormatJSON {
		compact, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, compact, "", "  "); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}
	return yaml.Marshal(ToNode(v))
}

// CompactSize returns the length of the compact JSON form of v.
func CompactSize(v Value) (int, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// FormatBytes formats a byte count using binary units (KiB, MiB, ...).
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
