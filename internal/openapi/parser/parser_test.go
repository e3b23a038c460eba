package parser

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formoptions/pkg/openapi"
	"github.com/goliatone/go-formoptions/pkg/schema"
)

func loadFixture(t *testing.T, name string) schema.Document {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve caller")
	}
	path := filepath.Join(filepath.Dir(filename), "testdata", name)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return schema.MustNewDocument(schema.SourceFromFile(path), raw)
}

func TestConvertSchemaHandlesRecursiveReferences(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Cycle", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "PublishingHouse": {
        "type": "object",
        "properties": {
          "headquarters": { "$ref": "#/components/schemas/Headquarters" }
        }
      },
      "Headquarters": {
        "type": "object",
        "properties": {
          "publisher": { "$ref": "#/components/schemas/PublishingHouse" }
        }
      }
    }
  }
}`

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData([]byte(document))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}

	publishing := doc.Components.Schemas["PublishingHouse"]
	if publishing == nil {
		t.Fatalf("schema PublishingHouse not found")
	}
	converted := convertSchema(publishing)
	headquarters, ok := converted.Properties["headquarters"]
	if !ok {
		t.Fatalf("expected headquarters property on PublishingHouse schema")
	}
	if headquarters.Ref == "" {
		t.Fatalf("expected headquarters property to retain reference")
	}
	publisher, ok := headquarters.Properties["publisher"]
	if !ok {
		t.Fatalf("expected publisher property on Headquarters schema")
	}
	if publisher.Ref != "#/components/schemas/PublishingHouse" {
		t.Fatalf("expected cycle to stop at publisher ref, got %q", publisher.Ref)
	}
	if publisher.Properties != nil {
		t.Fatalf("expected cyclic reference to stay unexpanded")
	}
}

func TestConvertSchemaMergesAllOfSchemas(t *testing.T) {
	t.Parallel()

	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "AllOf", "version": "1.0.0" },
  "paths": {
    "/users": {
      "post": {
        "operationId": "createUser",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "allOf": [
                  {"$ref": "#/components/schemas/BaseUser"},
                  {
                    "type": "object",
                    "required": ["email"],
                    "properties": {
                      "email": {"type": "string", "format": "email"},
                      "role": {"type": "string", "enum": ["admin", "editor"]}
                    }
                  }
                ]
              }
            }
          }
        },
        "responses": {
          "200": {"description": "ok"}
        }
      }
    }
  },
  "components": {
    "schemas": {
      "BaseUser": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"}
        }
      }
    }
  }
}`

	doc := schema.MustNewDocument(schema.SourceFromInline("users"), []byte(document))
	result, err := New(pkgopenapi.NewParserOptions()).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	op, ok := result.Operations["createUser"]
	if !ok {
		t.Fatalf("operation createUser not found")
	}
	req := op.RequestBody
	if req.Type != "object" {
		t.Fatalf("request schema type = %q, want object", req.Type)
	}
	if len(req.Properties) != 3 {
		t.Fatalf("properties length = %d, want 3", len(req.Properties))
	}
	if email := req.Properties["email"]; email.Format != "email" {
		t.Fatalf("expected email property with format email, got %+v", email)
	}
	if diff := cmp.Diff([]any{"admin", "editor"}, req.Properties["role"].Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "email"}, req.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOperationsAndComponents(t *testing.T) {
	doc := loadFixture(t, "pets.yaml")
	result, err := New(pkgopenapi.NewParserOptions(pkgopenapi.WithValidation(true))).Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.Title != "Pet store" {
		t.Fatalf("expected document title, got %q", result.Title)
	}

	adoption, ok := result.Operations["createAdoption"]
	if !ok {
		t.Fatalf("createAdoption missing; got %v", result.Operations)
	}
	if adoption.Method != "POST" || adoption.Path != "/adoptions" || adoption.Summary != "Adopt a pet" {
		t.Fatalf("unexpected operation metadata %+v", adoption)
	}

	pet := adoption.RequestBody.Properties["pet"]
	if pet.Discriminator == nil || pet.Discriminator.PropertyName != "kind" {
		t.Fatalf("expected kind discriminator, got %+v", pet.Discriminator)
	}
	if len(pet.OneOf) != 2 || pet.OneOf[0].Title != "Dog" {
		t.Fatalf("expected dog/cat branches, got %+v", pet.OneOf)
	}
	if pet.OneOf[0].Properties["kind"].Default != "dog" {
		t.Fatalf("expected dog default, got %#v", pet.OneOf[0].Properties["kind"].Default)
	}

	shelter := adoption.RequestBody.Properties["shelter"]
	want := map[string]any{"x-formoptions": map[string]any{"source": "shelters"}}
	if diff := cmp.Diff(want, shelter.Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}

	sizes, ok := result.Operations["put:/sizes"]
	if !ok {
		t.Fatalf("expected derived operation id for /sizes")
	}
	if diff := cmp.Diff([]any{"s", "m", "l"}, sizes.RequestBody.Properties["size"].Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	if _, ok := result.Components["Pet"]; !ok {
		t.Fatalf("expected Pet component")
	}
}

func TestParseRejectsPartialDocumentsWhenDisabled(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromInline("empty"), []byte(`{"openapi":"3.0.0","info":{"title":"x","version":"1"},"paths":{}}`))
	parser := New(pkgopenapi.NewParserOptions(pkgopenapi.WithPartialDocuments(false)))
	if _, err := parser.Parse(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}

func TestParseHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(pkgopenapi.NewParserOptions()).Parse(ctx, loadFixture(t, "pets.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}
