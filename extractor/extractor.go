package extractor

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasextract/internal/pathutil"
	"github.com/erraggy/oasextract/oaserrors"
	"github.com/erraggy/oasextract/value"
)

// Defaults for New.
const (
	DefaultPathMarker   = "/external/"
	DefaultHeaderMarker = "api-key"
	DefaultAPIKeyScheme = "APIKeyHeader"
	DefaultTitleSuffix  = " - External API"
	DefaultDescription  = "External API endpoints only"
)

// Server is one entry of the server list stamped into the output.
type Server struct {
	URL         string `json:"url" mapstructure:"url"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// Extractor produces the publishable subset of an API description.
//
// An Extractor holds configuration only, so one value can serve any number of
// concurrent Extract calls.
type Extractor struct {
	// Include selects the path keys to publish. Required.
	Include PathPredicate

	// RefPrefix is the reference prefix of schema definitions.
	RefPrefix string

	// HeaderMarker is the substring (matched case-insensitively) that marks a
	// header parameter as an API key. Ignored when HeaderMatcher is set.
	HeaderMarker string

	// HeaderMatcher replaces the HeaderMarker test when non-nil.
	HeaderMatcher HeaderMatcher

	// APIKeyScheme is the security scheme rewritten when a single API key
	// header is detected.
	APIKeyScheme string

	// Servers is the server list stamped into the output. The input's
	// servers are never copied; when Servers is empty the output has none.
	Servers []Server

	// TitleSuffix is appended to info.title unless already present.
	TitleSuffix string

	// Description replaces info.description when non-empty.
	Description string

	// CarryComponents also copies the referenced parameters, responses,
	// request bodies, headers, examples, links, callbacks and path items, and
	// follows their references when computing the schema closure.
	CarryComponents bool

	// Logger receives diagnostics. Defaults to NopLogger.
	Logger Logger
}

// New returns an Extractor with the default configuration: paths containing
// "/external/", schemas under "#/components/schemas/", API key headers
// containing "api-key", scheme "APIKeyHeader", and component carry-over.
func New() *Extractor {
	return &Extractor{
		Include:         PathContains(DefaultPathMarker),
		RefPrefix:       pathutil.RefPrefixSchemas,
		HeaderMarker:    DefaultHeaderMarker,
		APIKeyScheme:    DefaultAPIKeyScheme,
		TitleSuffix:     DefaultTitleSuffix,
		Description:     DefaultDescription,
		CarryComponents: true,
	}
}

// Result is the produced document plus diagnostics about how it was derived.
type Result struct {
	// Document is the reduced document.
	Document value.Value
	// SourceFormat is the format of the input, when known.
	SourceFormat value.Format

	// SelectedPaths are the published path keys in document order.
	SelectedPaths []string
	// OperationCount is the number of operations under SelectedPaths.
	OperationCount int

	// Closure holds every schema name reachable from the selected operations,
	// including dangling ones, sorted.
	Closure []string
	// Schemas are the schema names emitted, in input order.
	Schemas []string
	// Dangling are closure names with no definition, sorted.
	Dangling []string
	// Components counts carried entries per component section.
	Components map[string]int

	// Security describes the security-scheme reconciliation.
	Security SecurityOutcome

	// InputSize and OutputSize are the compact JSON sizes of the documents.
	InputSize  int
	OutputSize int
}

// Reduction returns the size reduction from input to output as a percentage.
func (r *Result) Reduction() float64 {
	if r.InputSize == 0 {
		return 0
	}
	return (1 - float64(r.OutputSize)/float64(r.InputSize)) * 100
}

func (e *Extractor) validate() error {
	if e.Include == nil {
		return &oaserrors.ConfigError{Option: "include", Message: "a path predicate is required"}
	}
	if e.RefPrefix == "" {
		return &oaserrors.ConfigError{Option: "ref_prefix", Value: e.RefPrefix, Message: "must not be empty"}
	}
	if e.HeaderMatcher == nil && e.HeaderMarker == "" {
		return &oaserrors.ConfigError{Option: "header_marker", Value: e.HeaderMarker, Message: "must not be empty"}
	}
	for i, s := range e.Servers {
		if s.URL == "" {
			return &oaserrors.ConfigError{Option: fmt.Sprintf("servers[%d].url", i), Message: "must not be empty"}
		}
	}
	return nil
}

// checkVersion rejects Swagger 2.0 documents. Their definitions,
// parameters and securityDefinitions live at the top level, so a reduction
// built on components would leave every reference dangling. A document with
// no version key is treated as OpenAPI 3.
func checkVersion(src Document) error {
	key, version, ok := src.VersionKey()
	if !ok || key == "openapi" {
		return nil
	}
	text, _ := version.AsString()
	if text == "" {
		text, _ = version.AsNumber()
	}
	return &oaserrors.VersionError{
		Key:     key,
		Version: text,
		Message: "only OpenAPI 3.x documents are supported; convert the document first",
	}
}

func (e *Extractor) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

func (e *Extractor) headerMatcher() HeaderMatcher {
	if e.HeaderMatcher != nil {
		return e.HeaderMatcher
	}
	return MarkerMatcher(e.HeaderMarker)
}

// Extract computes the published subset of doc. The input is never modified;
// the output shares unchanged subtrees with it.
//
// Configuration problems and Swagger 2.0 input produce an error. Missing
// sections, dangling references and conflicting API key headers are all
// resolved in the output.
func (e *Extractor) Extract(doc value.Value) (*Result, error) {
	if err := e.validate(); err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}
	log := e.logger()
	src := NewDocument(doc)
	if err := checkVersion(src); err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}

	selected := SelectPaths(src.Paths(), e.Include)
	result := &Result{
		SelectedPaths:  selected.Keys(),
		OperationCount: CountOperations(selected),
		Components:     make(map[string]int),
	}
	if selected.Len() == 0 {
		log.Warn("no paths matched the inclusion rule", "paths", src.Paths().Len())
	} else {
		log.Info("selected paths", "paths", selected.Len(), "operations", result.OperationCount)
	}

	var schemaNames RefSet
	var sections map[string]RefSet
	if e.CarryComponents {
		cc := resolveComponents(src, selected, e.RefPrefix)
		schemaNames, sections = cc.schemas, cc.sections
	} else {
		schemaNames = ResolveClosure(ScanRefs(value.FromObject(selected), e.RefPrefix), src.Schemas(), e.RefPrefix)
	}
	result.Closure = schemaNames.Sorted()
	for _, name := range result.Closure {
		if !src.Schemas().Has(name) {
			result.Dangling = append(result.Dangling, name)
		}
	}
	log.Debug("schema closure resolved", "closure", len(result.Closure), "dangling", len(result.Dangling))
	if len(result.Dangling) > 0 {
		log.Debug("dangling schema references omitted", "names", strings.Join(result.Dangling, ", "))
	}

	headers := DetectAPIKeyHeaders(selected, src.Section("parameters"), e.headerMatcher())
	schemes, outcome := ReconcileSecurity(src.SecuritySchemes(), headers, e.APIKeyScheme)
	result.Security = outcome
	e.logSecurity(log, outcome)

	result.Document = e.assemble(src, selected, schemaNames, sections, schemes, outcome, result)
	result.Schemas = schemaKeys(result.Document)

	var err error
	if result.InputSize, err = value.CompactSize(doc); err != nil {
		return nil, fmt.Errorf("extractor: measuring input: %w", err)
	}
	if result.OutputSize, err = value.CompactSize(result.Document); err != nil {
		return nil, fmt.Errorf("extractor: measuring output: %w", err)
	}
	return result, nil
}

func (e *Extractor) logSecurity(log Logger, o SecurityOutcome) {
	switch o.Action {
	case SecurityUnchanged:
		log.Debug("no API key headers found in selected operations")
	case SecurityAlreadyCorrect:
		log.Info("security scheme header already correct", "scheme", o.Scheme, "header", o.NewHeader)
	case SecurityRewritten:
		log.Info("security scheme header rewritten", "scheme", o.Scheme, "from", o.OldHeader, "to", o.NewHeader)
	case SecuritySchemeMissing:
		log.Warn("API key header detected but scheme is not declared", "scheme", o.Scheme, "header", o.Headers[0])
	case SecurityRemoved:
		log.Warn("multiple API key headers detected, removing global security schemes", "headers", strings.Join(o.Headers, ", "))
	}
}

// schemaKeys lists the emitted components.schemas names.
func schemaKeys(doc value.Value) []string {
	return NewDocument(doc).Schemas().Keys()
}
