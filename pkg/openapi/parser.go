package openapi

import (
	"context"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

// Parser extracts operations and component schemas from an OpenAPI document.
type Parser interface {
	Parse(ctx context.Context, doc schema.Document) (Result, error)
}

// Result is everything a parser extracted from one document.
type Result struct {
	Title      string
	Operations map[string]Operation
	// Components holds #/components/schemas entries keyed by name.
	Components map[string]schema.Schema
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// Validate runs document validation after loading.
	Validate bool

	// AllowPartialDocuments accepts documents without any paths, such as
	// component-only schema libraries.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithPartialDocuments toggles support for component-only documents.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		AllowPartialDocuments: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
