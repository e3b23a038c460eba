package uischema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formoptions/internal/valuefmt"
)

const (
	uiPrefix = "ui:"

	keyOptions  = "ui:options"
	keyOneOf    = "oneOf"
	keyAnyOf    = "anyOf"
	keyItems    = "items"
	dirTitle    = "title"
	dirNames    = "enumNames"
	dirOrder    = "enumOrder"
	dirSelector = "optionsSchemaSelector"
	dirWidget   = "widget"
)

// ParseError reports an overlay document that could not be read at all.
// Individual directives with unexpected shapes are dropped instead.
type ParseError struct {
	Path    string
	Message string
}

func (e ParseError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "invalid overlay"
	}
	if strings.TrimSpace(e.Path) == "" {
		return "uischema: " + msg
	}
	return fmt.Sprintf("uischema: %s (%s)", msg, e.Path)
}

// Parse decodes a JSON or YAML overlay document. Titles and names are reduced
// to plain text before they are stored.
func Parse(raw []byte) (*Overlay, error) {
	return parse(raw, "")
}

func parse(raw []byte, source string) (*Overlay, error) {
	node, err := decode(raw, source)
	if err != nil {
		return nil, err
	}
	overlay := FromMap(node)
	sanitizeOverlay(&overlay)
	return &overlay, nil
}

func decode(raw []byte, source string) (map[string]any, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ParseError{Path: source, Message: "overlay document is empty"}
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		payload = nil
		if yerr := yaml.Unmarshal(raw, &payload); yerr != nil {
			return nil, ParseError{Path: source, Message: "invalid JSON or YAML"}
		}
	}

	node, ok := asMap(payload)
	if !ok {
		return nil, ParseError{Path: source, Message: "overlay document must be an object"}
	}
	return node, nil
}

// FromMap converts a decoded overlay node into an Overlay. Unknown keys and
// directives of the wrong shape are ignored. A "ui:"-prefixed key wins over
// the same directive nested inside "ui:options".
func FromMap(node map[string]any) Overlay {
	var out Overlay
	if len(node) == 0 {
		return out
	}

	directives := make(map[string]any)
	if nested, ok := asMap(node[keyOptions]); ok {
		out.RawOptions = nested
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
			out.OneOf = branchOverlays(value)
		case key == keyAnyOf:
			out.AnyOf = branchOverlays(value)
		case key == keyItems:
			if child, ok := asMap(value); ok {
				items := FromMap(child)
				out.Items = &items
			}
		default:
			child, ok := asMap(value)
			if !ok {
				continue
			}
			if out.Properties == nil {
				out.Properties = make(map[string]Overlay)
			}
			out.Properties[key] = FromMap(child)
		}
	}

	out.Title = readText(directives[dirTitle])
	out.SelectorField = strings.TrimSpace(readText(directives[dirSelector]))
	out.Widget = strings.TrimSpace(readText(directives[dirWidget]))
	out.Names = readNames(directives[dirNames])
	out.Order = readOrder(directives[dirOrder])
	return out
}

func branchOverlays(value any) []Overlay {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]Overlay, len(list))
	for idx, entry := range list {
		if node, ok := asMap(entry); ok {
			out[idx] = FromMap(node)
		}
	}
	return out
}

func readNames(value any) Names {
	switch typed := value.(type) {
	case []any:
		list := make([]string, len(typed))
		for idx, entry := range typed {
			list[idx] = readText(entry)
		}
		return Names{List: list}
	case []string:
		return Names{List: append([]string(nil), typed...)}
	}
	node, ok := asMap(value)
	if !ok {
		return Names{}
	}
	table := make(map[string]string, len(node))
	for key, entry := range node {
		table[key] = readText(entry)
	}
	return Names{Map: table}
}

func readOrder(value any) []any {
	switch typed := value.(type) {
	case []any:
		return append(make([]any, 0, len(typed)), typed...)
	case []string:
		out := make([]any, len(typed))
		for idx, token := range typed {
			out[idx] = token
		}
		return out
	default:
		return nil
	}
}

func readText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case map[string]any, map[any]any, []any:
		return ""
	default:
		return valuefmt.String(typed)
	}
}

// asMap accepts both JSON-decoded objects and YAML mappings with non-string
// keys, such as numeric enum values used as name table keys.
func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, entry := range typed {
			out[valuefmt.String(key)] = entry
		}
		return out, true
	default:
		return nil, false
	}
}

func sortedKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
