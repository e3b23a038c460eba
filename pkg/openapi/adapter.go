package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

const (
	DefaultAdapterName = "openapi"

	// ComponentPrefix prefixes entry ids of #/components/schemas entries.
	ComponentPrefix = "components/schemas/"
)

// Adapter wraps the OpenAPI loader/parser flow behind the schema adapter interface.
type Adapter struct {
	loader schema.Loader
	parser Parser
}

// NewAdapter constructs an OpenAPI adapter with the supplied loader and parser.
func NewAdapter(loader schema.Loader, parser Parser) *Adapter {
	return &Adapter{
		loader: loader,
		parser: parser,
	}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be OpenAPI.
func (a *Adapter) Detect(_ schema.Source, raw []byte) bool {
	return detectOpenAPI(raw)
}

// Load fetches the raw OpenAPI document.
func (a *Adapter) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if a == nil || a.loader == nil {
		return schema.Document{}, errors.New("openapi adapter: loader is nil")
	}
	return a.loader.Load(ctx, src)
}

// Normalize parses operations and component schemas into the canonical IR.
// Operations are keyed by operationId; components by ComponentPrefix + name.
func (a *Adapter) Normalize(ctx context.Context, doc schema.Document, opts schema.NormalizeOptions) (schema.SchemaIR, error) {
	if a == nil || a.parser == nil {
		return schema.SchemaIR{}, errors.New("openapi adapter: parser is nil")
	}

	result, err := a.parser.Parse(ctx, doc)
	if err != nil {
		return schema.SchemaIR{}, err
	}

	ir := schema.NewSchemaIR()
	for id, op := range result.Operations {
		entry := op.Entry()
		if entry.ID == "" {
			entry.ID = id
		}
		ir.Add(entry)
	}
	for name, component := range result.Components {
		ir.Add(schema.Entry{
			ID:          ComponentPrefix + name,
			Title:       component.Title,
			Description: component.Description,
			Schema:      component,
		})
	}

	if want := strings.TrimSpace(opts.SchemaID); want != "" {
		entry, ok := ir.Entry(want)
		if !ok {
			return schema.SchemaIR{}, fmt.Errorf("openapi adapter: schema %q not found", want)
		}
		filtered := schema.NewSchemaIR()
		filtered.Add(entry)
		return filtered, nil
	}
	return ir, nil
}

func detectOpenAPI(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	var payload map[string]any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return false
		}
	} else if err := yaml.Unmarshal(trimmed, &payload); err != nil {
		return false
	}
	if _, ok := payload["openapi"]; ok {
		return true
	}
	_, ok := payload["swagger"]
	return ok
}
