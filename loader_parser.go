package formoptions

import (
	internalLoader "github.com/goliatone/go-formoptions/internal/loader"
	internalParser "github.com/goliatone/go-formoptions/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formoptions/pkg/openapi"
	"github.com/goliatone/go-formoptions/pkg/schema"
)

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(opts schema.LoaderOptions) schema.Loader {
	return internalLoader.New(opts)
}

// NewParser constructs an OpenAPI parser backed by the internal
// implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
