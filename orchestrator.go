// Package formoptions resolves the selectable options of JSON Schema and
// OpenAPI fields. The helpers here cover the common one-call cases; use
// pkg/orchestrator directly for adapter registries, overlay stores and
// schema transformers.
package formoptions

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formoptions/pkg/options"
	"github.com/goliatone/go-formoptions/pkg/orchestrator"
	"github.com/goliatone/go-formoptions/pkg/reflectschema"
	"github.com/goliatone/go-formoptions/pkg/schema"
	"github.com/goliatone/go-formoptions/pkg/uischema"
)

// Option is a single {label, value} choice; alias exported via the root
// package for convenience.
type Option = options.Option

// Overlay aliases uischema.Overlay.
type Overlay = uischema.Overlay

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(opts ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(opts...)
}

// Options resolves the options of an already-normalized schema node. The
// boolean is false when the node declares no enum, anyOf or oneOf.
func Options(s *schema.Schema, overlay *Overlay) ([]Option, bool) {
	return options.Resolve(s, overlay)
}

// ParseOverlay decodes a JSON or YAML UI overlay.
func ParseOverlay(raw []byte) (*Overlay, error) {
	return uischema.Parse(raw)
}

// Resolve loads source, auto-detects its format and returns the options of
// field. schemaID may be empty when the document yields a single schema.
func Resolve(ctx context.Context, source schema.Source, schemaID, field string, overlay *Overlay, opts ...orchestrator.Option) ([]Option, error) {
	result, err := orchestrator.New(opts...).Resolve(ctx, orchestrator.Request{
		Source:   source,
		SchemaID: schemaID,
		Field:    field,
		Overlay:  overlay,
	})
	if err != nil {
		return nil, err
	}
	return result.Options, nil
}

// ResolveDocument is Resolve for a pre-loaded document, bypassing the loader
// stage.
func ResolveDocument(ctx context.Context, doc schema.Document, schemaID, field string, overlay *Overlay, opts ...orchestrator.Option) ([]Option, error) {
	result, err := orchestrator.New(opts...).Resolve(ctx, orchestrator.Request{
		Document: &doc,
		SchemaID: schemaID,
		Field:    field,
		Overlay:  overlay,
	})
	if err != nil {
		return nil, err
	}
	return result.Options, nil
}

// ResolveType reflects the Go type of v into a schema and returns the options
// of field. Enum values come from `jsonschema:"enum=..."` struct tags.
func ResolveType(v any, field string, overlay *Overlay) ([]Option, error) {
	entry, err := reflectschema.Reflect(v)
	if err != nil {
		return nil, err
	}
	path := schema.NormalizeFieldPath(field)
	node, ok := entry.Schema.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q in schema %q", orchestrator.ErrFieldNotFound, field, entry.ID)
	}
	opts, ok := options.Resolve(node, overlay.Field(path))
	if !ok {
		return nil, fmt.Errorf("%w: %q in schema %q", orchestrator.ErrNoOptions, field, entry.ID)
	}
	return opts, nil
}
