package extractor

import (
	"fmt"

	"github.com/erraggy/oasextract/internal/options"
	"github.com/erraggy/oasextract/value"
)

// Option is a function that configures an extraction.
type Option func(*extractConfig) error

// extractConfig holds configuration for an extraction.
type extractConfig struct {
	// Input source (exactly one must be set)
	specFilePath *string
	specBytes    []byte
	specValue    *value.Value

	extractor *Extractor
}

// WithSpecFilePath specifies a file path as the document source.
func WithSpecFilePath(path string) Option {
	return func(cfg *extractConfig) error {
		if path == "" {
			return fmt.Errorf("specification path cannot be empty")
		}
		cfg.specFilePath = &path
		return nil
	}
}

// WithSpecBytes specifies raw JSON or YAML content as the document source.
func WithSpecBytes(data []byte) Option {
	return func(cfg *extractConfig) error {
		if len(data) == 0 {
			return fmt.Errorf("specification content cannot be empty")
		}
		cfg.specBytes = data
		return nil
	}
}

// WithSpecValue specifies an already-decoded document as the source.
func WithSpecValue(v value.Value) Option {
	return func(cfg *extractConfig) error {
		cfg.specValue = &v
		return nil
	}
}

// WithPathMarker selects paths containing marker.
func WithPathMarker(marker string) Option {
	return func(cfg *extractConfig) error {
		if marker == "" {
			return fmt.Errorf("path marker cannot be empty")
		}
		cfg.extractor.Include = PathContains(marker)
		return nil
	}
}

// WithPathPrefix selects paths starting with prefix.
func WithPathPrefix(prefix string) Option {
	return func(cfg *extractConfig) error {
		if prefix == "" {
			return fmt.Errorf("path prefix cannot be empty")
		}
		cfg.extractor.Include = PathHasPrefix(prefix)
		return nil
	}
}

// WithInclude sets an arbitrary path predicate.
func WithInclude(include PathPredicate) Option {
	return func(cfg *extractConfig) error {
		if include == nil {
			return fmt.Errorf("path predicate cannot be nil")
		}
		cfg.extractor.Include = include
		return nil
	}
}

// WithRefPrefix sets the schema reference prefix.
// Default: "#/components/schemas/"
func WithRefPrefix(prefix string) Option {
	return func(cfg *extractConfig) error {
		cfg.extractor.RefPrefix = prefix
		return nil
	}
}

// WithHeaderMarker sets the substring that marks API key headers.
// Default: "api-key"
func WithHeaderMarker(marker string) Option {
	return func(cfg *extractConfig) error {
		cfg.extractor.HeaderMarker = marker
		return nil
	}
}

// WithHeaderMatcher replaces the marker test for API key headers.
func WithHeaderMatcher(match HeaderMatcher) Option {
	return func(cfg *extractConfig) error {
		cfg.extractor.HeaderMatcher = match
		return nil
	}
}

// WithAPIKeyScheme sets the security scheme rewritten for a single header.
// Default: "APIKeyHeader"
func WithAPIKeyScheme(name string) Option {
	return func(cfg *extractConfig) error {
		if name == "" {
			return fmt.Errorf("API key scheme name cannot be empty")
		}
		cfg.extractor.APIKeyScheme = name
		return nil
	}
}

// WithServers replaces the output server list.
func WithServers(servers ...Server) Option {
	return func(cfg *extractConfig) error {
		cfg.extractor.Servers = append([]Server(nil), servers...)
		return nil
	}
}

// WithTitleSuffix sets the suffix appended to info.title. An empty suffix
// leaves the title unchanged.
func WithTitleSuffix(suffix string) Option {
	return func(cfg *extractConfig) error {
		cfg.extractor.TitleSuffix = suffix
		return nil
	}
}

// WithDescription sets the replacement info.description. An empty value keeps
// the original.
func WithDescription(desc string) Option {
	return func(cfg *extractConfig) error {
		cfg.extractor.Description = desc
		return nil
	}
}

// WithCarryComponents toggles copying of referenced non-schema components.
// Default: true
func WithCarryComponents(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.extractor.CarryComponents = enabled
		return nil
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(cfg *extractConfig) error {
		cfg.extractor.Logger = l
		return nil
	}
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts ...Option) (*extractConfig, error) {
	cfg := &extractConfig{extractor: New()}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify a specification source (use WithSpecFilePath, WithSpecBytes, or WithSpecValue)",
		"must specify exactly one specification source",
		cfg.specFilePath != nil, cfg.specBytes != nil, cfg.specValue != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadInput decodes the configured document source.
func loadInput(cfg *extractConfig) (value.Value, value.Format, error) {
	switch {
	case cfg.specFilePath != nil:
		doc, format, err := value.ReadFile(*cfg.specFilePath)
		if err != nil {
			return value.Value{}, value.FormatUnknown, fmt.Errorf("extractor: failed to read specification: %w", err)
		}
		return doc, format, nil
	case cfg.specBytes != nil:
		doc, err := value.Decode(cfg.specBytes)
		if err != nil {
			return value.Value{}, value.FormatUnknown, fmt.Errorf("extractor: failed to parse specification: %w", err)
		}
		return doc, value.DetectFormat("", cfg.specBytes), nil
	default:
		return *cfg.specValue, value.FormatUnknown, nil
	}
}

// ExtractWithOptions reads a document and extracts its published subset using
// functional options.
//
// Example:
//
//	result, err := extractor.ExtractWithOptions(
//	    extractor.WithSpecFilePath("openapi.yaml"),
//	    extractor.WithPathMarker("/public/"),
//	    extractor.WithServers(extractor.Server{URL: "https://api.example.com"}),
//	)
func ExtractWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	doc, format, err := loadInput(cfg)
	if err != nil {
		return nil, err
	}

	result, err := cfg.extractor.Extract(doc)
	if err != nil {
		return nil, err
	}
	result.SourceFormat = format
	return result, nil
}
