package schema

import "strings"

// DiscriminatorField returns the property name declared by the schema's
// discriminator, if any. Blank names count as undeclared.
func DiscriminatorField(s *Schema) (string, bool) {
	if s == nil || s.Discriminator == nil {
		return "", false
	}
	name := strings.TrimSpace(s.Discriminator.PropertyName)
	if name == "" {
		return "", false
	}
	return name, true
}
