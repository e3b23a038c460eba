package schema

import (
	"context"
	"sort"
	"strings"
)

// NormalizeOptions supplies optional hints to adapters during normalization.
type NormalizeOptions struct {
	// SchemaID optionally pins normalization to a single schema identifier.
	SchemaID string
	// FallbackID names the root schema when the document does not declare one.
	FallbackID string
}

// Schema represents the canonical schema IR consumed by the option resolver.
// A nil Const or Default means the keyword was not declared unless ConstSet
// or DefaultSet records an explicit null.
type Schema struct {
	Ref           string
	Type          string
	Format        string
	Title         string
	Description   string
	Default       any
	Const         any
	Enum          []any
	Required      []string
	Properties    map[string]Schema
	Items         *Schema
	OneOf         []Schema
	AnyOf         []Schema
	Discriminator *Discriminator
	Extensions    map[string]any `json:"Extensions,omitempty"`
	ConstSet      bool           `json:"ConstSet,omitempty"`
	DefaultSet    bool           `json:"DefaultSet,omitempty"`
}

// ConstValue returns the const keyword and whether it was declared.
func (s *Schema) ConstValue() (any, bool) {
	if s == nil {
		return nil, false
	}
	return s.Const, s.Const != nil || s.ConstSet
}

// DefaultValue returns the default keyword and whether it was declared.
func (s *Schema) DefaultValue() (any, bool) {
	if s == nil {
		return nil, false
	}
	return s.Default, s.Default != nil || s.DefaultSet
}

// Discriminator names the property that tells alternative branches apart.
type Discriminator struct {
	PropertyName string
	Mapping      map[string]string
}

// SchemaIR is the normalized schema set produced by adapters, keyed by
// schema identifier.
type SchemaIR struct {
	Schemas map[string]Entry
}

// Entry is a single root schema extracted from a source document.
type Entry struct {
	ID          string
	Title       string
	Description string
	Schema      Schema
}

// NewSchemaIR constructs an empty schema IR container.
func NewSchemaIR() SchemaIR {
	return SchemaIR{Schemas: make(map[string]Entry)}
}

// Add stores an entry, replacing any previous entry with the same id.
func (ir *SchemaIR) Add(entry Entry) {
	if ir.Schemas == nil {
		ir.Schemas = make(map[string]Entry)
	}
	ir.Schemas[entry.ID] = entry
}

// Entry looks up a schema entry by id.
func (ir SchemaIR) Entry(id string) (Entry, bool) {
	if ir.Schemas == nil {
		return Entry{}, false
	}
	entry, ok := ir.Schemas[id]
	return entry, ok
}

// IDs returns the sorted list of available schema identifiers.
func (ir SchemaIR) IDs() []string {
	if len(ir.Schemas) == 0 {
		return nil
	}
	ids := make([]string, 0, len(ir.Schemas))
	for id := range ir.Schemas {
		if strings.TrimSpace(id) == "" {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FormatAdapter normalizes source documents into the canonical IR.
type FormatAdapter interface {
	Name() string
	Detect(src Source, raw []byte) bool
	Load(ctx context.Context, src Source) (Document, error)
	Normalize(ctx context.Context, doc Document, opts NormalizeOptions) (SchemaIR, error)
}
