package parser

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

// convertSchema maps a kin-openapi schema onto the canonical tree. allOf
// members are folded into the parent. A reference that re-enters a schema
// already being converted keeps its Ref and stops there.
func convertSchema(ref *openapi3.SchemaRef) schema.Schema {
	return newConverter().convert(ref)
}

type converter struct {
	active map[*openapi3.Schema]bool
}

func newConverter() *converter {
	return &converter{active: make(map[*openapi3.Schema]bool)}
}

func (c *converter) convert(ref *openapi3.SchemaRef) schema.Schema {
	if ref == nil {
		return schema.Schema{}
	}
	if ref.Value == nil || c.active[ref.Value] {
		return schema.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	c.active[src] = true
	defer delete(c.active, src)

	out := schema.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		Extensions:  extractExtensions(src.Extensions),
	}
	if src.Enum != nil {
		out.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Required) > 0 {
		out.Required = append([]string(nil), src.Required...)
	}
	if len(src.Properties) > 0 {
		out.Properties = make(map[string]schema.Schema, len(src.Properties))
		for name, property := range src.Properties {
			out.Properties[name] = c.convert(property)
		}
	}
	if src.Items != nil {
		items := c.convert(src.Items)
		out.Items = &items
	}
	if src.OneOf != nil {
		out.OneOf = c.convertAll(src.OneOf)
	}
	if src.AnyOf != nil {
		out.AnyOf = c.convertAll(src.AnyOf)
	}
	if src.Discriminator != nil {
		out.Discriminator = &schema.Discriminator{PropertyName: src.Discriminator.PropertyName}
		if len(src.Discriminator.Mapping) > 0 {
			out.Discriminator.Mapping = make(map[string]string, len(src.Discriminator.Mapping))
			for key, value := range src.Discriminator.Mapping {
				out.Discriminator.Mapping[key] = value
			}
		}
	}

	for _, member := range src.AllOf {
		mergeAllOf(&out, c.convert(member))
	}
	return out
}

func (c *converter) convertAll(refs openapi3.SchemaRefs) []schema.Schema {
	out := make([]schema.Schema, 0, len(refs))
	for _, ref := range refs {
		out = append(out, c.convert(ref))
	}
	return out
}

// mergeAllOf folds member into target. Keywords already set on target win.
func mergeAllOf(target *schema.Schema, member schema.Schema) {
	if target.Type == "" {
		target.Type = member.Type
	}
	if target.Format == "" {
		target.Format = member.Format
	}
	if target.Title == "" {
		target.Title = member.Title
	}
	if target.Description == "" {
		target.Description = member.Description
	}
	if target.Default == nil {
		target.Default = member.Default
	}
	if target.Enum == nil && member.Enum != nil {
		target.Enum = member.Enum
	}
	if target.Items == nil {
		target.Items = member.Items
	}
	if target.OneOf == nil {
		target.OneOf = member.OneOf
	}
	if target.AnyOf == nil {
		target.AnyOf = member.AnyOf
	}
	if target.Discriminator == nil {
		target.Discriminator = member.Discriminator
	}
	for _, name := range member.Required {
		if !containsString(target.Required, name) {
			target.Required = append(target.Required, name)
		}
	}
	if len(member.Properties) > 0 {
		if target.Properties == nil {
			target.Properties = make(map[string]schema.Schema, len(member.Properties))
		}
		for name, prop := range member.Properties {
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = prop
			}
		}
	}
	for key, value := range member.Extensions {
		if target.Extensions == nil {
			target.Extensions = make(map[string]any, len(member.Extensions))
		}
		if _, exists := target.Extensions[key]; !exists {
			target.Extensions[key] = value
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	result := make(map[string]any, len(raw))
	for key, value := range raw {
		if strings.HasPrefix(strings.ToLower(key), "x-") {
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
