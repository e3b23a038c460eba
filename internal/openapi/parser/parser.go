package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formoptions/pkg/openapi"
	"github.com/goliatone/go-formoptions/pkg/schema"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

var requestMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Parse loads the document and converts request bodies and component schemas
// into the canonical schema tree.
func (p *Parser) Parse(ctx context.Context, doc schema.Document) (pkgopenapi.Result, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Result{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgopenapi.Result{}, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return pkgopenapi.Result{}, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if (spec.Paths == nil || spec.Paths.Len() == 0) && !p.options.AllowPartialDocuments {
		return pkgopenapi.Result{}, errors.New("openapi parser: document does not contain any paths")
	}

	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return pkgopenapi.Result{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	result := pkgopenapi.Result{
		Operations: make(map[string]pkgopenapi.Operation),
	}
	if spec.Info != nil {
		result.Title = spec.Info.Title
	}

	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			p.collectOperation(ctx, result.Operations, "GET", path, item.Get)
			p.collectOperation(ctx, result.Operations, "PUT", path, item.Put)
			p.collectOperation(ctx, result.Operations, "POST", path, item.Post)
			p.collectOperation(ctx, result.Operations, "DELETE", path, item.Delete)
			p.collectOperation(ctx, result.Operations, "PATCH", path, item.Patch)
		}
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Result{}, err
	}

	if spec.Components != nil && len(spec.Components.Schemas) > 0 {
		result.Components = make(map[string]schema.Schema, len(spec.Components.Schemas))
		for name, ref := range spec.Components.Schemas {
			result.Components[name] = convertSchema(ref)
		}
	}

	if len(result.Operations) == 0 && len(result.Components) == 0 && !p.options.AllowPartialDocuments {
		return pkgopenapi.Result{}, errors.New("openapi parser: no operations extracted")
	}
	return result, nil
}

func (p *Parser) collectOperation(ctx context.Context, target map[string]pkgopenapi.Operation, method, path string, operation *openapi3.Operation) {
	if ctx.Err() != nil || operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}

	op, err := pkgopenapi.NewOperation(opID, method, path, extractRequestSchema(operation.RequestBody))
	if err != nil {
		// Invalid operations are skipped.
		return
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	target[opID] = op
}

func extractRequestSchema(requestBody *openapi3.RequestBodyRef) schema.Schema {
	if requestBody == nil {
		return schema.Schema{}
	}
	if requestBody.Value == nil {
		return schema.Schema{Ref: requestBody.Ref}
	}
	content := requestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	for _, mt := range content {
		if mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return schema.Schema{}
}
