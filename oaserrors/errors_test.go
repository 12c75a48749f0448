package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("underlying")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "parse error with all fields",
			err:  &ParseError{Path: "api.yaml", Line: 42, Column: 10, Message: "invalid syntax", Cause: cause},
			want: "parse error in api.yaml at line 42, column 10: invalid syntax: underlying",
		},
		{
			name: "parse error minimal",
			err:  &ParseError{},
			want: "parse error",
		},
		{
			name: "dangling reference with source",
			err:  &ReferenceError{Ref: "#/components/schemas/Foo", Source: "/paths/~1pets/get", IsDangling: true},
			want: "dangling reference: #/components/schemas/Foo (at /paths/~1pets/get)",
		},
		{
			name: "plain reference error",
			err:  &ReferenceError{Ref: "other.yaml#/Pet", Message: "external"},
			want: "reference error: other.yaml#/Pet: external",
		},
		{
			name: "validation error",
			err:  &ValidationError{Path: "components", Field: "schemas", Message: "leaked schema"},
			want: "validation error at components.schemas: leaked schema",
		},
		{
			name: "resource limit",
			err:  &ResourceLimitError{ResourceType: "alias_nodes", Limit: 10, Actual: 11},
			want: "resource limit exceeded: alias_nodes (limit: 10, actual: 11)",
		},
		{
			name: "config error",
			err:  &ConfigError{Option: "header_marker", Value: "", Message: "must not be empty"},
			want: "configuration error for header_marker (value: ): must not be empty",
		},
		{
			name: "swagger document",
			err:  &VersionError{Key: "swagger", Version: "2.0", Message: "only OpenAPI 3.x is supported"},
			want: "unsupported version: swagger 2.0: only OpenAPI 3.x is supported",
		},
		{
			name: "version error minimal",
			err:  &VersionError{},
			want: "unsupported version",
		},
		{
			name: "config error without value",
			err:  &ConfigError{Option: "ref_prefix"},
			want: "configuration error for ref_prefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		matches []error
		misses  []error
	}{
		{
			name:    "parse",
			err:     &ParseError{},
			matches: []error{ErrParse},
			misses:  []error{ErrReference, ErrValidation, ErrConfig},
		},
		{
			name:    "dangling reference",
			err:     &ReferenceError{IsDangling: true},
			matches: []error{ErrReference, ErrDanglingReference},
			misses:  []error{ErrParse},
		},
		{
			name:    "non-dangling reference",
			err:     &ReferenceError{},
			matches: []error{ErrReference},
			misses:  []error{ErrDanglingReference},
		},
		{
			name:    "validation",
			err:     &ValidationError{},
			matches: []error{ErrValidation},
			misses:  []error{ErrConfig},
		},
		{
			name:    "resource limit",
			err:     &ResourceLimitError{},
			matches: []error{ErrResourceLimit},
			misses:  []error{ErrParse},
		},
		{
			name:    "version",
			err:     &VersionError{Key: "swagger"},
			matches: []error{ErrUnsupportedVersion},
			misses:  []error{ErrParse, ErrConfig},
		},
		{
			name:    "config",
			err:     &ConfigError{},
			matches: []error{ErrConfig},
			misses:  []error{ErrValidation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, target := range tt.matches {
				if !errors.Is(tt.err, target) {
					t.Errorf("errors.Is(%T, %v) = false, want true", tt.err, target)
				}
			}
			for _, target := range tt.misses {
				if errors.Is(tt.err, target) {
					t.Errorf("errors.Is(%T, %v) = true, want false", tt.err, target)
				}
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	t.Run("wrapped ParseError is found with As", func(t *testing.T) {
		inner := &ParseError{Path: "api.json", Message: "bad"}
		wrapped := fmt.Errorf("extractor: loading spec: %w", inner)

		var parseErr *ParseError
		if !errors.As(wrapped, &parseErr) {
			t.Fatal("errors.As should find ParseError")
		}
		if parseErr.Path != "api.json" {
			t.Errorf("Path = %q, want %q", parseErr.Path, "api.json")
		}
		if !errors.Is(wrapped, ErrParse) {
			t.Error("wrapped error should match ErrParse")
		}
	})

	t.Run("Cause is reachable through Unwrap", func(t *testing.T) {
		cause := errors.New("root")
		err := &ConfigError{Option: "servers", Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("errors.Is should reach the cause")
		}
	})

	t.Run("ResourceLimitError has no cause", func(t *testing.T) {
		err := &ResourceLimitError{}
		if err.Unwrap() != nil {
			t.Error("Unwrap should return nil")
		}
	})
}
