package options

import "github.com/goliatone/go-formoptions/pkg/schema"

// Constant returns the single value a branch schema admits: its const, or the
// only entry of a one-element enum. A declared null const counts.
func Constant(s *schema.Schema) (any, bool) {
	if s == nil {
		return nil, false
	}
	if value, ok := s.ConstValue(); ok {
		return value, true
	}
	if len(s.Enum) == 1 {
		return s.Enum[0], true
	}
	return nil, false
}
