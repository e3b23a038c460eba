package options

import (
	"github.com/goliatone/go-formoptions/internal/valuefmt"
	"github.com/goliatone/go-formoptions/pkg/schema"
	"github.com/goliatone/go-formoptions/pkg/uischema"
)

// Option is a single selectable choice. Schema is set only for options built
// from oneOf/anyOf branches and points at the caller's branch schema.
type Option struct {
	Label  string         `json:"label" yaml:"label"`
	Value  any            `json:"value" yaml:"value"`
	Schema *schema.Schema `json:"-" yaml:"-"`
}

// Resolve returns the options described by s. The boolean is false when s has
// no enum, anyOf or oneOf; callers should render nothing rather than treat it
// as a failure. An empty enum resolves to an empty, non-nil list.
func Resolve(s *schema.Schema, overlay *uischema.Overlay) ([]Option, bool) {
	if s == nil {
		return nil, false
	}
	if s.Enum != nil {
		return fromEnum(s.Enum, overlay.Options()), true
	}

	var (
		branches []schema.Schema
		overlays []uischema.Overlay
	)
	switch {
	case s.AnyOf != nil:
		branches = s.AnyOf
		if overlay != nil {
			overlays = overlay.AnyOf
		}
	case s.OneOf != nil:
		branches = s.OneOf
		if overlay != nil {
			overlays = overlay.OneOf
		}
	default:
		return nil, false
	}
	return fromAlternatives(s, overlay, branches, overlays), true
}

// StringForm is the string used to label a value and to match it against name
// table keys and order tokens. The coercion is lossy on purpose: the number 1,
// the float 1.0 and the string "1" all compare equal.
func StringForm(v any) string {
	return valuefmt.String(v)
}
