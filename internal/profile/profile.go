// Package profile loads extraction settings from a config file and the
// environment.
//
// Settings are read, in increasing precedence, from built-in defaults, a YAML
// file (./oasextract.yaml or ~/.config/oasextract/config.yaml unless a path is
// given) and OASEXTRACT_* environment variables, e.g.
// OASEXTRACT_HEADER_MARKER=x-key.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/erraggy/oasextract/extractor"
	"github.com/erraggy/oasextract/internal/pathutil"
	"github.com/erraggy/oasextract/oaserrors"
	"github.com/erraggy/oasextract/value"
)

// Config keys.
const (
	KeyInclude         = "include"
	KeyIncludePrefix   = "include_prefix"
	KeyRefPrefix       = "ref_prefix"
	KeyHeaderMarker    = "header_marker"
	KeyHeaderSource    = "header_source"
	KeyAPIKeyScheme    = "api_key_scheme"
	KeyTitleSuffix     = "title_suffix"
	KeyDescription     = "description"
	KeyCarryComponents = "carry_components"
	KeyServers         = "servers"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "OASEXTRACT"

// Header sources select how API key headers are recognised.
const (
	HeaderSourceMarker   = "marker"
	HeaderSourceDeclared = "declared"
	HeaderSourceEither   = "either"
)

// Profile is a resolved set of extraction settings.
type Profile struct {
	// Include lists path markers; a path matching any of them is selected.
	// When neither Include nor IncludePrefix is configured it defaults to
	// "/external/".
	Include []string
	// IncludePrefix lists path prefixes, combined with Include by "any".
	IncludePrefix []string

	RefPrefix       string
	HeaderMarker    string
	HeaderSource    string
	APIKeyScheme    string
	TitleSuffix     string
	Description     string
	CarryComponents bool
	Servers         []extractor.Server

	// File is the config file that was read, or empty.
	File string
}

// Load reads the profile. An empty path searches the default locations and
// tolerates a missing file; an explicit path must exist.
func Load(path string) (*Profile, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("oasextract")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "oasextract"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "reading config file", Cause: err}
		}
	}
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRefPrefix, pathutil.RefPrefixSchemas)
	v.SetDefault(KeyHeaderMarker, extractor.DefaultHeaderMarker)
	v.SetDefault(KeyHeaderSource, HeaderSourceMarker)
	v.SetDefault(KeyAPIKeyScheme, extractor.DefaultAPIKeyScheme)
	v.SetDefault(KeyTitleSuffix, extractor.DefaultTitleSuffix)
	v.SetDefault(KeyDescription, extractor.DefaultDescription)
	v.SetDefault(KeyCarryComponents, true)
}

func fromViper(v *viper.Viper) (*Profile, error) {
	p := &Profile{
		Include:         v.GetStringSlice(KeyInclude),
		IncludePrefix:   v.GetStringSlice(KeyIncludePrefix),
		RefPrefix:       v.GetString(KeyRefPrefix),
		HeaderMarker:    v.GetString(KeyHeaderMarker),
		HeaderSource:    v.GetString(KeyHeaderSource),
		APIKeyScheme:    v.GetString(KeyAPIKeyScheme),
		TitleSuffix:     v.GetString(KeyTitleSuffix),
		Description:     v.GetString(KeyDescription),
		CarryComponents: v.GetBool(KeyCarryComponents),
		File:            v.ConfigFileUsed(),
	}
	if len(p.Include) == 0 && len(p.IncludePrefix) == 0 {
		p.Include = []string{extractor.DefaultPathMarker}
	}
	if err := v.UnmarshalKey(KeyServers, &p.Servers); err != nil {
		return nil, &oaserrors.ConfigError{Option: KeyServers, Message: "decoding server list", Cause: err}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks settings that the extractor cannot check itself.
func (p *Profile) Validate() error {
	switch p.HeaderSource {
	case HeaderSourceMarker, HeaderSourceDeclared, HeaderSourceEither:
	default:
		return &oaserrors.ConfigError{
			Option:  KeyHeaderSource,
			Value:   p.HeaderSource,
			Message: fmt.Sprintf("must be one of %s, %s, %s", HeaderSourceMarker, HeaderSourceDeclared, HeaderSourceEither),
		}
	}
	if len(p.Include) == 0 && len(p.IncludePrefix) == 0 {
		return &oaserrors.ConfigError{Option: KeyInclude, Message: "at least one path marker or prefix is required"}
	}
	return nil
}

// Predicate returns the path predicate described by the profile.
func (p *Profile) Predicate() extractor.PathPredicate {
	preds := make([]extractor.PathPredicate, 0, len(p.Include)+len(p.IncludePrefix))
	for _, marker := range p.Include {
		if marker != "" {
			preds = append(preds, extractor.PathContains(marker))
		}
	}
	for _, prefix := range p.IncludePrefix {
		if prefix != "" {
			preds = append(preds, extractor.PathHasPrefix(prefix))
		}
	}
	if len(preds) == 1 {
		return preds[0]
	}
	return extractor.AnyPath(preds...)
}

// Extractor builds an extractor from the profile. doc is the input document;
// its declared security schemes feed the "declared" and "either" header
// sources.
func (p *Profile) Extractor(doc value.Value) *extractor.Extractor {
	e := extractor.New()
	e.Include = p.Predicate()
	e.RefPrefix = p.RefPrefix
	e.HeaderMarker = p.HeaderMarker
	e.APIKeyScheme = p.APIKeyScheme
	e.TitleSuffix = p.TitleSuffix
	e.Description = p.Description
	e.CarryComponents = p.CarryComponents
	e.Servers = p.Servers

	schemes := extractor.NewDocument(doc).SecuritySchemes()
	switch p.HeaderSource {
	case HeaderSourceDeclared:
		e.HeaderMatcher = extractor.DeclaredAPIKeyHeaders(schemes)
	case HeaderSourceEither:
		e.HeaderMatcher = extractor.MarkerOrDeclared(p.HeaderMarker, schemes)
	}
	return e
}
