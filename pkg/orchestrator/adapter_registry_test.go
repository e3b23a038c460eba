package orchestrator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formoptions/pkg/orchestrator"
	"github.com/goliatone/go-formoptions/pkg/schema"
)

type fakeAdapter struct {
	name   string
	detect bool
}

func (f fakeAdapter) Name() string                      { return f.name }
func (f fakeAdapter) Detect(schema.Source, []byte) bool { return f.detect }
func (f fakeAdapter) Load(context.Context, schema.Source) (schema.Document, error) {
	return schema.Document{}, nil
}
func (f fakeAdapter) Normalize(context.Context, schema.Document, schema.NormalizeOptions) (schema.SchemaIR, error) {
	ir := schema.NewSchemaIR()
	ir.Add(schema.Entry{ID: f.name, Schema: schema.Schema{Enum: []any{f.name}}})
	return ir, nil
}

func TestAdapterRegistry_RegisterAndGet(t *testing.T) {
	registry, err := orchestrator.NewAdapterRegistry(fakeAdapter{name: " Beta "}, fakeAdapter{name: "alpha"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("BETA"); err != nil {
		t.Fatalf("get beta: %v", err)
	}
	if err := registry.Register(fakeAdapter{name: "alpha"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(fakeAdapter{name: "  "}); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil adapter")
	}
	_, err = registry.Get("gamma")
	if err == nil || !strings.Contains(err.Error(), "alpha, beta") {
		t.Fatalf("expected not found error listing known adapters, got %v", err)
	}
}

func TestAdapterRegistry_Detect(t *testing.T) {
	registry, err := orchestrator.NewAdapterRegistry(
		fakeAdapter{name: "zulu", detect: true},
		fakeAdapter{name: "alpha", detect: true},
		fakeAdapter{name: "mike"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	matches := registry.Detect(schema.SourceFromInline("x"), []byte("{}"))
	names := make([]string, len(matches))
	for idx, adapter := range matches {
		names[idx] = adapter.Name()
	}
	if diff := cmp.Diff([]string{"alpha", "zulu"}, names); diff != "" {
		t.Fatalf("detect mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_ExtraAdapterAmbiguity(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromInline("doc"), []byte(`{"enum":["a"]}`))

	orch := orchestrator.New(orchestrator.WithAdapters(fakeAdapter{name: "greedy", detect: true}))
	if _, err := orch.Resolve(context.Background(), orchestrator.Request{Document: &doc}); err == nil {
		t.Fatalf("expected ambiguity error when two adapters claim the payload")
	}

	result, err := orch.Resolve(context.Background(), orchestrator.Request{Document: &doc, Format: "greedy"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.SchemaID != "greedy" || result.Options[0].Value != "greedy" {
		t.Fatalf("unexpected result %+v", result)
	}

	if _, err := orchestrator.New(orchestrator.WithAdapters(fakeAdapter{name: "openapi"})).Resolve(context.Background(), orchestrator.Request{Document: &doc}); err == nil {
		t.Fatalf("expected duplicate adapter error to surface")
	}
}
