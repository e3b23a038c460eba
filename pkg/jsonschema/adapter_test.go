package jsonschema_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formoptions/pkg/jsonschema"
	"github.com/goliatone/go-formoptions/pkg/options"
	"github.com/goliatone/go-formoptions/pkg/schema"
)

type failingLoader struct{}

func (failingLoader) Load(context.Context, schema.Source) (schema.Document, error) {
	return schema.Document{}, errors.New("unexpected loader call")
}

type staticLoader struct {
	raw []byte
}

func (l staticLoader) Load(_ context.Context, src schema.Source) (schema.Document, error) {
	return schema.NewDocument(src, l.raw)
}

func normalize(t *testing.T, raw string, opts schema.NormalizeOptions) (schema.SchemaIR, error) {
	t.Helper()
	adapter := jsonschema.NewAdapter(failingLoader{})
	doc := schema.MustNewDocument(schema.SourceFromFS("root.json"), []byte(raw))
	return adapter.Normalize(context.Background(), doc, opts)
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve caller")
	}
	raw, err := os.ReadFile(filepath.Join(filepath.Dir(filename), "testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return raw
}

func TestAdapterNormalize_Success(t *testing.T) {
	ir, err := normalize(t, `{
  "$schema":"https://json-schema.org/draft/2020-12/schema",
  "$id":"com.example.post",
  "title":"Post",
  "type":"object",
  "properties":{
    "title":{"type":"string"}
  }
}`, schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	entry, ok := ir.Entry("com.example.post")
	if !ok {
		t.Fatalf("expected entry com.example.post, got %v", ir.IDs())
	}
	if entry.Title != "Post" {
		t.Fatalf("expected title Post, got %q", entry.Title)
	}
	if entry.Schema.Properties["title"].Type != "string" {
		t.Fatalf("expected title type string, got %q", entry.Schema.Properties["title"].Type)
	}
}

func TestAdapterNormalize_EntryIDFallbacks(t *testing.T) {
	raw := `{"type":"object"}`

	ir, err := normalize(t, raw, schema.NormalizeOptions{FallbackID: "profile"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if diff := cmp.Diff([]string{"profile"}, ir.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	ir, err = normalize(t, raw, schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if diff := cmp.Diff([]string{"root"}, ir.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapterNormalize_SchemaIDFilter(t *testing.T) {
	_, err := normalize(t, `{"$id":"com.example.post"}`, schema.NormalizeOptions{SchemaID: "missing"})
	if err == nil {
		t.Fatalf("expected error for missing schema id")
	}
}

func TestAdapterNormalize_ExpandsRefsForOptions(t *testing.T) {
	adapter := jsonschema.NewAdapter(staticLoader{raw: fixture(t, "tickets.schema.json")})
	doc, err := adapter.Load(context.Background(), schema.SourceFromFS("tickets.schema.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ir, err := adapter.Normalize(context.Background(), doc, schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	entry, ok := ir.Entry("com.example.ticket")
	if !ok {
		t.Fatalf("expected ticket entry, got %v", ir.IDs())
	}

	field, ok := entry.Schema.Lookup("priority")
	if !ok {
		t.Fatalf("priority not found")
	}
	if field.Title != "Priority" {
		t.Fatalf("expected sibling title to override target, got %q", field.Title)
	}

	got, ok := options.Resolve(field, nil)
	if !ok {
		t.Fatalf("expected options for priority")
	}
	labels := make([]string, len(got))
	values := make([]any, len(got))
	for idx, opt := range got {
		labels[idx] = opt.Label
		values[idx] = opt.Value
	}
	if diff := cmp.Diff([]string{"Urgent", "Normal", "p3"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"p1", "p2", "p3"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapterNormalize_TypeListAndExtensions(t *testing.T) {
	ir, err := normalize(t, string(fixture(t, "tickets.schema.json")), schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	entry, _ := ir.Entry("com.example.ticket")

	status := entry.Schema.Properties["status"]
	if status.Type != "string" {
		t.Fatalf("expected first non-null type, got %q", status.Type)
	}
	want := map[string]any{"x-formoptions": map[string]any{"group": "state"}}
	if diff := cmp.Diff(want, status.Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}

	tags, ok := entry.Schema.Lookup("tags[]")
	if !ok {
		t.Fatalf("tags items not found")
	}
	if diff := cmp.Diff([]any{"bug", "docs"}, tags.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapterNormalize_RecursiveRefKeepsRef(t *testing.T) {
	ir, err := normalize(t, `{
  "$defs": {"node": {"type":"object","properties":{"next":{"$ref":"#/$defs/node"}}}},
  "$ref": "#/$defs/node"
}`, schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	entry, _ := ir.Entry("root")
	next := entry.Schema.Properties["next"]
	if next.Ref != "#/$defs/node" {
		t.Fatalf("expected cyclic ref to be kept, got %q", next.Ref)
	}
	if next.Properties != nil {
		t.Fatalf("expected cyclic ref to stay unexpanded")
	}
}

func TestAdapterNormalize_RefErrors(t *testing.T) {
	cases := map[string]string{
		"remote":  `{"properties":{"a":{"$ref":"https://example.com/a.json"}}}`,
		"missing": `{"properties":{"a":{"$ref":"#/$defs/missing"}}}`,
		"scalar":  `{"$defs":{"x":1},"properties":{"a":{"$ref":"#/$defs/x"}}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := normalize(t, raw, schema.NormalizeOptions{})
			var refErr jsonschema.RefError
			if !errors.As(err, &refErr) {
				t.Fatalf("expected RefError, got %v", err)
			}
			if refErr.Path != "#/properties/a" {
				t.Fatalf("expected path #/properties/a, got %q", refErr.Path)
			}
		})
	}
}

func TestAdapterNormalize_MaxRefDepth(t *testing.T) {
	adapter := jsonschema.NewAdapter(failingLoader{}, jsonschema.WithMaxRefDepth(1))
	raw := []byte(`{"$defs":{"a":{"$ref":"#/$defs/b"},"b":{"type":"string"}},"properties":{"x":{"$ref":"#/$defs/a"}}}`)
	doc := schema.MustNewDocument(schema.SourceFromFS("root.json"), raw)
	if _, err := adapter.Normalize(context.Background(), doc, schema.NormalizeOptions{}); err == nil {
		t.Fatalf("expected depth error")
	}
}

func TestAdapterNormalize_MalformedKeywords(t *testing.T) {
	cases := map[string]string{
		"enum":          `{"enum":"a"}`,
		"properties":    `{"properties":[]}`,
		"required":      `{"required":[1]}`,
		"oneOf":         `{"oneOf":{}}`,
		"anyOf":         `{"anyOf":[1]}`,
		"type":          `{"type":"decimal"}`,
		"discriminator": `{"discriminator":"kind"}`,
		"tuple":         `{"items":[{"type":"string"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := normalize(t, raw, schema.NormalizeOptions{}); err == nil {
				t.Fatalf("expected error for malformed %s", name)
			}
		})
	}
}

func TestAdapterNormalize_YAMLAndDiscriminator(t *testing.T) {
	ir, err := normalize(t, `
title: Pet
anyOf:
  - title: Dog
    properties:
      kind: {const: dog}
  - title: Cat
    properties:
      kind: {const: cat}
discriminator:
  propertyName: kind
  mapping:
    dog: "#/anyOf/0"
`, schema.NormalizeOptions{FallbackID: "pet"})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	entry, _ := ir.Entry("pet")
	want := &schema.Discriminator{PropertyName: "kind", Mapping: map[string]string{"dog": "#/anyOf/0"}}
	if diff := cmp.Diff(want, entry.Schema.Discriminator); diff != "" {
		t.Fatalf("discriminator mismatch (-want +got):\n%s", diff)
	}

	got, _ := options.Resolve(&entry.Schema, nil)
	if len(got) != 2 || got[0].Label != "Dog" || got[1].Value != "cat" {
		t.Fatalf("unexpected options %#v", got)
	}
}

func TestAdapterDetect(t *testing.T) {
	adapter := jsonschema.NewAdapter(failingLoader{})
	src := schema.SourceFromFS("doc")

	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "json schema", raw: `{"$schema":"https://json-schema.org/draft/2020-12/schema"}`, want: true},
		{name: "bare enum", raw: `{"enum":[1,2]}`, want: true},
		{name: "yaml", raw: "type: object\nproperties: {}\n", want: true},
		{name: "openapi", raw: `{"openapi":"3.1.0","paths":{}}`, want: false},
		{name: "unrelated object", raw: `{"name":"x"}`, want: false},
		{name: "array", raw: `[1,2]`, want: false},
		{name: "empty", raw: ``, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := adapter.Detect(src, []byte(tc.raw)); got != tc.want {
				t.Fatalf("detect %q: expected %v, got %v", tc.raw, tc.want, got)
			}
		})
	}
}

func TestAdapterLoad_NilLoader(t *testing.T) {
	adapter := jsonschema.NewAdapter(nil)
	if _, err := adapter.Load(context.Background(), schema.SourceFromFS("x")); err == nil {
		t.Fatalf("expected error for nil loader")
	}
}

func TestAdapterNormalize_ExplicitNullKeywords(t *testing.T) {
	ir, err := normalize(t, `{
  "$id":"flags",
  "oneOf":[
    {"title":"None","const":null},
    {"title":"Some","const":"some"},
    {"title":"Unset"}
  ]
}`, schema.NormalizeOptions{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	entry, ok := ir.Entry("flags")
	if !ok {
		t.Fatalf("entry missing: %v", ir.IDs())
	}

	branches := entry.Schema.OneOf
	if _, ok := branches[0].ConstValue(); !ok {
		t.Fatalf("expected null const to count as declared")
	}
	if _, ok := branches[2].ConstValue(); ok {
		t.Fatalf("expected missing const to stay undeclared")
	}

	got, _ := options.Resolve(&entry.Schema, nil)
	want := []any{nil, "some", nil}
	values := make([]any, len(got))
	for idx, opt := range got {
		values[idx] = opt.Value
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}
