package uischema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formoptions/internal/valuefmt"
	"github.com/goliatone/go-formoptions/pkg/schema"
)

// Violation is an overlay entry that the resolver would ignore or that does
// not line up with the schema.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s -> %s", v.Location, v.Message)
}

// Lint checks an overlay document against the schema it decorates. Parse is
// lenient and drops directives of the wrong shape; Lint reports them, along
// with fields, items and branches the schema does not have and name or order
// entries that match no enum value. Violations are sorted by location.
func Lint(raw []byte, s *schema.Schema) ([]Violation, error) {
	node, err := decode(raw, "")
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &schema.Schema{}
	}

	l := &linter{}
	l.node(node, s, []string{"$"})

	sort.SliceStable(l.violations, func(i, j int) bool {
		if l.violations[i].Location == l.violations[j].Location {
			return l.violations[i].Message < l.violations[j].Message
		}
		return l.violations[i].Location < l.violations[j].Location
	})
	return l.violations, nil
}

type linter struct {
	violations []Violation
}

func (l *linter) report(path []string, format string, args ...any) {
	l.violations = append(l.violations, Violation{
		Location: formatLocation(path),
		Message:  fmt.Sprintf(format, args...),
	})
}

func (l *linter) node(node map[string]any, s *schema.Schema, path []string) {
	directives := make(map[string]any)
	if raw, ok := node[keyOptions]; ok {
		nested, isMap := asMap(raw)
		if !isMap {
			l.report(appendPath(path, keyOptions), "%s must be an object, found %T", keyOptions, raw)
		}
		for key, value := range nested {
			directives[key] = value
		}
	}

	for _, key := range sortedKeys(node) {
		value := node[key]
		switch {
		case key == keyOptions:
			continue
		case strings.HasPrefix(key, uiPrefix):
			directives[strings.TrimPrefix(key, uiPrefix)] = value
		case key == keyOneOf:
			l.branches(value, s.OneOf, appendPath(path, keyOneOf))
		case key == keyAnyOf:
			l.branches(value, s.AnyOf, appendPath(path, keyAnyOf))
		case key == keyItems:
			next := appendPath(path, keyItems)
			child, ok := asMap(value)
			if !ok {
				l.report(next, "items overlay must be an object, found %T", value)
				continue
			}
			if s.Items == nil {
				l.report(next, "schema has no array items here")
				continue
			}
			l.node(child, s.Items, next)
		default:
			next := appendPath(path, key)
			child, ok := asMap(value)
			if !ok {
				l.report(next, "field overlay must be an object, found %T", value)
				continue
			}
			prop, ok := s.Properties[key]
			if !ok {
				l.report(next, "schema has no field %q", key)
				continue
			}
			l.node(child, &prop, next)
		}
	}

	l.directives(directives, s, path)
}

func (l *linter) branches(value any, branches []schema.Schema, path []string) {
	list, ok := value.([]any)
	if !ok {
		l.report(path, "branch overlays must be a list, found %T", value)
		return
	}
	if len(branches) == 0 {
		l.report(path, "schema declares no such alternatives")
		return
	}
	if len(list) > len(branches) {
		l.report(path, "overlay lists %d branches, schema has %d", len(list), len(branches))
	}
	for idx, entry := range list {
		if idx >= len(branches) {
			break
		}
		next := appendPath(path, fmt.Sprintf("[%d]", idx))
		child, ok := asMap(entry)
		if !ok {
			l.report(next, "branch overlay must be an object, found %T", entry)
			continue
		}
		l.node(child, &branches[idx], next)
	}
}

func (l *linter) directives(directives map[string]any, s *schema.Schema, path []string) {
	for _, key := range sortedKeys(directives) {
		value := directives[key]
		next := appendPath(path, uiPrefix+key)
		switch key {
		case dirTitle, dirSelector, dirWidget:
			if !isScalar(value) {
				l.report(next, "value must be a string, number, or boolean (got %T)", value)
			}
		case dirNames:
			l.names(value, s, next)
		case dirOrder:
			l.order(value, s, next)
		}
	}

	if raw, ok := directives[dirSelector]; ok && isScalar(raw) {
		if len(s.OneOf) == 0 && len(s.AnyOf) == 0 {
			l.report(appendPath(path, uiPrefix+dirSelector), "schema declares no oneOf or anyOf to select from")
		}
	}
}

func (l *linter) names(value any, s *schema.Schema, path []string) {
	if list, ok := value.([]any); ok {
		if s.Enum != nil && len(list) != len(s.Enum) {
			l.report(path, "lists %d names for %d enum values", len(list), len(s.Enum))
		}
		return
	}
	table, ok := asMap(value)
	if !ok {
		l.report(path, "must be a list or an object, found %T", value)
		return
	}
	if s.Enum == nil {
		return
	}
	known := enumKeys(s.Enum)
	for _, key := range sortedKeys(table) {
		if !known[key] {
			l.report(path, "name for %q matches no enum value", key)
		}
	}
}

func (l *linter) order(value any, s *schema.Schema, path []string) {
	tokens, ok := value.([]any)
	if !ok {
		l.report(path, "must be a list, found %T", value)
		return
	}
	if s.Enum == nil {
		return
	}
	known := enumKeys(s.Enum)
	for _, token := range tokens {
		if text, isString := token.(string); isString && text == WildcardToken {
			continue
		}
		if !known[valuefmt.String(token)] {
			l.report(path, "token %q matches no enum value", valuefmt.String(token))
		}
	}
}

func enumKeys(values []any) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, value := range values {
		out[valuefmt.String(value)] = true
	}
	return out
}

func isScalar(value any) bool {
	switch value.(type) {
	case string, bool, int, int64, float64, uint64:
		return true
	default:
		return false
	}
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
