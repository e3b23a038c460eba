// Package reflectschema builds option-ready schemas from Go types. Struct
// fields tagged with `jsonschema:"enum=..."` become enum fields; the reflected
// document runs through the JSON Schema adapter so the result matches what a
// hand-written schema would produce.
package reflectschema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	js "github.com/invopop/jsonschema"

	"github.com/goliatone/go-formoptions/pkg/jsonschema"
	"github.com/goliatone/go-formoptions/pkg/schema"
)

// Option configures reflection.
type Option func(*config)

type config struct {
	id               string
	requiredFromTags bool
}

// WithID names the resulting entry. By default the Go type name is used.
func WithID(id string) Option {
	return func(c *config) {
		c.id = strings.TrimSpace(id)
	}
}

// WithRequiredFromTags only marks fields required when they carry
// `jsonschema:"required"`, instead of every field without omitempty.
func WithRequiredFromTags(enabled bool) Option {
	return func(c *config) {
		c.requiredFromTags = enabled
	}
}

// Reflect derives a schema entry from v, which must be a struct or a pointer
// to one.
func Reflect(v any, opts ...Option) (schema.Entry, error) {
	if v == nil {
		return schema.Entry{}, errors.New("reflectschema: value is nil")
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return schema.Entry{}, fmt.Errorf("reflectschema: %s is not a struct", t)
	}

	cfg := config{id: t.Name()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	r := &js.Reflector{
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: cfg.requiredFromTags,
	}
	root := r.Reflect(reflect.New(t).Interface())
	if root == nil {
		return schema.Entry{}, fmt.Errorf("reflectschema: reflect %s", t)
	}
	// Drop any generated id so the configured one names the entry.
	root.ID = ""

	raw, err := json.Marshal(root)
	if err != nil {
		return schema.Entry{}, fmt.Errorf("reflectschema: marshal %s: %w", t, err)
	}

	doc, err := schema.NewDocument(schema.SourceFromInline(cfg.id), raw)
	if err != nil {
		return schema.Entry{}, err
	}
	ir, err := jsonschema.NewAdapter(nil).Normalize(context.Background(), doc, schema.NormalizeOptions{FallbackID: cfg.id})
	if err != nil {
		return schema.Entry{}, fmt.Errorf("reflectschema: normalize %s: %w", t, err)
	}
	for _, id := range ir.IDs() {
		entry, _ := ir.Entry(id)
		return entry, nil
	}
	return schema.Entry{}, fmt.Errorf("reflectschema: no schema produced for %s", t)
}
