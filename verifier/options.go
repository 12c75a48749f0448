package verifier

import (
	"fmt"

	"github.com/erraggy/oasextract/extractor"
	"github.com/erraggy/oasextract/value"
)

// Option is a function that configures a verification.
type Option func(*verifyConfig) error

type verifyConfig struct {
	extractor   *extractor.Extractor
	source      *value.Value
	idempotence bool
	structural  bool
}

// WithExtractor sets the extractor whose output is being verified. It is used
// for the idempotence check and supplies the schema reference prefix.
// Default: extractor.New()
func WithExtractor(e *extractor.Extractor) Option {
	return func(cfg *verifyConfig) error {
		if e == nil {
			return fmt.Errorf("extractor cannot be nil")
		}
		cfg.extractor = e
		return nil
	}
}

// WithSource supplies the document the output was extracted from. Dangling
// references are then graded: error when the source resolves them, info when
// the source is dangling too.
func WithSource(src value.Value) Option {
	return func(cfg *verifyConfig) error {
		cfg.source = &src
		return nil
	}
}

// WithIdempotence enables or disables the re-extraction check.
// Default: true
func WithIdempotence(enabled bool) Option {
	return func(cfg *verifyConfig) error {
		cfg.idempotence = enabled
		return nil
	}
}

// WithStructural enables OpenAPI structural validation through kin-openapi.
// Default: false
func WithStructural(enabled bool) Option {
	return func(cfg *verifyConfig) error {
		cfg.structural = enabled
		return nil
	}
}

func applyOptions(opts ...Option) (*verifyConfig, error) {
	cfg := &verifyConfig{
		idempotence: true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.extractor == nil {
		cfg.extractor = extractor.New()
	}
	return cfg, nil
}
