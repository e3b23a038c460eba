package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formoptions/internal/valuefmt"
)

// decodeDocument parses a JSON or YAML schema document into plain
// map[string]any / []any values.
func decodeDocument(raw []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("jsonschema: raw schema is empty")
	}

	var payload any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, fmt.Errorf("jsonschema: parse schema: %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("jsonschema: parse schema: %w", err)
	}

	root, ok := plain(payload).(map[string]any)
	if !ok || root == nil {
		return nil, errors.New("jsonschema: schema must be an object")
	}
	return root, nil
}

// plain rewrites YAML mappings with non-string keys into map[string]any so
// the rest of the package deals with a single shape.
func plain(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, entry := range typed {
			out[key] = plain(entry)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, entry := range typed {
			out[valuefmt.String(key)] = plain(entry)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, entry := range typed {
			out[idx] = plain(entry)
		}
		return out
	default:
		return value
	}
}

func readString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	value, _ := payload[key].(string)
	return value
}
