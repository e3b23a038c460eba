package jsonschema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

const (
	DefaultAdapterName = "jsonschema"
	defaultRootID      = "root"
)

// Adapter wraps JSON Schema parsing and normalization behind the schema adapter interface.
type Adapter struct {
	loader      schema.Loader
	maxRefDepth int
}

// AdapterOption configures a JSON Schema adapter.
type AdapterOption func(*Adapter)

// WithMaxRefDepth bounds how many nested $ref hops are followed.
func WithMaxRefDepth(depth int) AdapterOption {
	return func(a *Adapter) {
		a.maxRefDepth = depth
	}
}

// NewAdapter constructs a JSON Schema adapter with the supplied loader.
func NewAdapter(loader schema.Loader, options ...AdapterOption) *Adapter {
	adapter := &Adapter{loader: loader, maxRefDepth: defaultMaxRefDepth}
	for _, opt := range options {
		if opt != nil {
			opt(adapter)
		}
	}
	return adapter
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be JSON Schema.
func (a *Adapter) Detect(_ schema.Source, raw []byte) bool {
	return detectJSONSchema(raw)
}

// Load fetches the raw JSON Schema document.
func (a *Adapter) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if a == nil || a.loader == nil {
		return schema.Document{}, errors.New("jsonschema adapter: loader is nil")
	}
	return a.loader.Load(ctx, src)
}

// Normalize expands local references and converts the document into a
// single-entry schema IR. The entry id is the document's $id, falling back to
// opts.FallbackID and then "root".
func (a *Adapter) Normalize(ctx context.Context, doc schema.Document, opts schema.NormalizeOptions) (schema.SchemaIR, error) {
	if err := ctx.Err(); err != nil {
		return schema.SchemaIR{}, err
	}
	if doc.Empty() {
		return schema.SchemaIR{}, errors.New("jsonschema adapter: empty document")
	}

	payload, err := decodeDocument(doc.Raw())
	if err != nil {
		return schema.SchemaIR{}, err
	}

	depth := defaultMaxRefDepth
	if a != nil && a.maxRefDepth > 0 {
		depth = a.maxRefDepth
	}
	expanded, err := expandRefs(payload, depth)
	if err != nil {
		return schema.SchemaIR{}, err
	}

	canonical, err := schemaFromJSONSchema(expanded, "#")
	if err != nil {
		return schema.SchemaIR{}, err
	}

	id := entryID(payload, opts.FallbackID)
	if want := strings.TrimSpace(opts.SchemaID); want != "" && want != id {
		return schema.SchemaIR{}, fmt.Errorf("jsonschema adapter: schema %q not found", want)
	}

	ir := schema.NewSchemaIR()
	ir.Add(schema.Entry{
		ID:          id,
		Title:       canonical.Title,
		Description: canonical.Description,
		Schema:      canonical,
	})
	return ir, nil
}

func entryID(payload map[string]any, fallback string) string {
	if id := strings.TrimSpace(readString(payload, "$id")); id != "" {
		return id
	}
	if id := strings.TrimSpace(fallback); id != "" {
		return id
	}
	return defaultRootID
}

var detectionKeys = []string{
	"$schema", "$id", "$defs", "definitions",
	"properties", "type", "items", "enum", "oneOf", "anyOf",
}

func detectJSONSchema(raw []byte) bool {
	payload, err := decodeDocument(raw)
	if err != nil {
		return false
	}
	if _, ok := payload["openapi"]; ok {
		return false
	}
	if _, ok := payload["swagger"]; ok {
		return false
	}
	for _, key := range detectionKeys {
		if _, ok := payload[key]; ok {
			return true
		}
	}
	return false
}
