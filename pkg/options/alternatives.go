package options

import (
	"github.com/goliatone/go-formoptions/pkg/schema"
	"github.com/goliatone/go-formoptions/pkg/uischema"
)

func fromAlternatives(parent *schema.Schema, overlay *uischema.Overlay, branches []schema.Schema, overlays []uischema.Overlay) []Option {
	selector := selectorField(parent, overlay)

	out := make([]Option, 0, len(branches))
	for idx := range branches {
		branch := &branches[idx]
		title := uischema.Branch(overlays, idx).Options().Title

		var (
			value any
			label string
		)
		if selector != "" {
			inner := selectorSchema(branch, selector)
			value = selectorValue(inner)
			label = labelChain{
				fixed(title),
				fixed(inner.Title),
				fixed(branch.Title),
				valueLabel(value),
			}.resolve()
		} else {
			value, _ = Constant(branch)
			label = labelChain{
				fixed(title),
				fixed(branch.Title),
				valueLabel(value),
			}.resolve()
		}

		out = append(out, Option{Schema: branch, Label: label, Value: value})
	}
	return out
}

// selectorField picks the property that identifies each branch. An overlay
// override beats the schema's own discriminator.
func selectorField(parent *schema.Schema, overlay *uischema.Overlay) string {
	if override := overlay.Options().SelectorField; override != "" {
		return override
	}
	field, _ := schema.DiscriminatorField(parent)
	return field
}

func selectorSchema(branch *schema.Schema, field string) schema.Schema {
	if branch == nil {
		return schema.Schema{}
	}
	return branch.Properties[field]
}

// selectorValue prefers a declared default, even an explicit null, over the
// const.
func selectorValue(inner schema.Schema) any {
	if value, ok := inner.DefaultValue(); ok {
		return value
	}
	return inner.Const
}
