package jsonschema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

// schemaFromJSONSchema converts an expanded JSON Schema payload into the
// canonical schema tree. Keywords the resolver does not read are ignored;
// keywords it does read must have the right shape.
func schemaFromJSONSchema(node any, path string) (schema.Schema, error) {
	if node == nil {
		return schema.Schema{}, fmt.Errorf("jsonschema: schema is nil at %s", path)
	}
	if _, ok := node.(bool); ok {
		// true/false schemas carry no keywords the resolver reads.
		return schema.Schema{}, nil
	}
	payload, ok := node.(map[string]any)
	if !ok {
		return schema.Schema{}, fmt.Errorf("jsonschema: schema must be an object at %s", path)
	}

	typ, err := readType(payload["type"], path)
	if err != nil {
		return schema.Schema{}, err
	}

	out := schema.Schema{
		Ref:         strings.TrimSpace(readString(payload, "$ref")),
		Type:        typ,
		Title:       strings.TrimSpace(readString(payload, "title")),
		Description: strings.TrimSpace(readString(payload, "description")),
		Default:     payload["default"],
		Const:       payload["const"],
		Format:      strings.TrimSpace(readString(payload, "format")),
		Extensions:  extractExtensions(payload),
	}
	_, out.ConstSet = payload["const"]
	_, out.DefaultSet = payload["default"]

	if enumRaw, ok := payload["enum"]; ok {
		enumList, ok := enumRaw.([]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: enum must be an array at %s", path)
		}
		out.Enum = append([]any(nil), enumList...)
	}

	if requiredRaw, ok := payload["required"]; ok {
		list, ok := requiredRaw.([]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: required must be an array at %s", path)
		}
		required := make([]string, 0, len(list))
		for idx, item := range list {
			str, ok := item.(string)
			if !ok || strings.TrimSpace(str) == "" {
				return schema.Schema{}, fmt.Errorf("jsonschema: required[%d] must be a string at %s", idx, path)
			}
			required = append(required, str)
		}
		out.Required = required
	}

	if propertiesRaw, ok := payload["properties"]; ok {
		props, ok := propertiesRaw.(map[string]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: properties must be an object at %s", path)
		}
		out.Properties = make(map[string]schema.Schema, len(props))
		for _, key := range sortedKeys(props) {
			converted, err := schemaFromJSONSchema(props[key], joinPath(path, "properties", key))
			if err != nil {
				return schema.Schema{}, err
			}
			out.Properties[key] = converted
		}
	}

	if itemsRaw, ok := payload["items"]; ok {
		switch typed := itemsRaw.(type) {
		case map[string]any:
			converted, err := schemaFromJSONSchema(typed, joinPath(path, "items"))
			if err != nil {
				return schema.Schema{}, err
			}
			out.Items = &converted
		case bool:
		case []any:
			return schema.Schema{}, fmt.Errorf("jsonschema: tuple items are not supported at %s", path)
		default:
			return schema.Schema{}, fmt.Errorf("jsonschema: items must be an object at %s", path)
		}
	}

	if out.OneOf, err = readBranches(payload, "oneOf", path); err != nil {
		return schema.Schema{}, err
	}
	if out.AnyOf, err = readBranches(payload, "anyOf", path); err != nil {
		return schema.Schema{}, err
	}
	if out.Discriminator, err = readDiscriminator(payload["discriminator"], path); err != nil {
		return schema.Schema{}, err
	}

	return out, nil
}

func readBranches(payload map[string]any, keyword, path string) ([]schema.Schema, error) {
	raw, ok := payload[keyword]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("jsonschema: %s must be an array at %s", keyword, path)
	}
	out := make([]schema.Schema, 0, len(list))
	for idx, entry := range list {
		converted, err := schemaFromJSONSchema(entry, joinPath(path, keyword, fmt.Sprintf("%d", idx)))
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

// readType accepts "type" as a string or as a list of strings. For a list the
// first non-null entry is kept.
func readType(raw any, path string) (string, error) {
	switch typed := raw.(type) {
	case nil:
		return "", nil
	case string:
		value := strings.TrimSpace(typed)
		if value != "" && !isAllowedType(value) {
			return "", fmt.Errorf("jsonschema: unsupported type %q at %s", value, path)
		}
		return value, nil
	case []any:
		for _, entry := range typed {
			value, ok := entry.(string)
			if !ok {
				return "", fmt.Errorf("jsonschema: type must be a string or array of strings at %s", path)
			}
			value = strings.TrimSpace(value)
			if value == "null" {
				continue
			}
			if !isAllowedType(value) {
				return "", fmt.Errorf("jsonschema: unsupported type %q at %s", value, path)
			}
			return value, nil
		}
		return "null", nil
	default:
		return "", fmt.Errorf("jsonschema: type must be a string or array of strings at %s", path)
	}
}

func readDiscriminator(raw any, path string) (*schema.Discriminator, error) {
	if raw == nil {
		return nil, nil
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("jsonschema: discriminator must be an object at %s", path)
	}
	out := &schema.Discriminator{
		PropertyName: strings.TrimSpace(readString(payload, "propertyName")),
	}
	if mappingRaw, ok := payload["mapping"].(map[string]any); ok {
		out.Mapping = make(map[string]string, len(mappingRaw))
		for key, value := range mappingRaw {
			if target, ok := value.(string); ok {
				out.Mapping[key] = target
			}
		}
	}
	return out, nil
}

func isVendorExtension(key string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(key)), "x-")
}

func extractExtensions(payload map[string]any) map[string]any {
	var extensions map[string]any
	for _, key := range sortedKeys(payload) {
		if !isVendorExtension(key) {
			continue
		}
		if extensions == nil {
			extensions = make(map[string]any)
		}
		extensions[key] = payload[key]
	}
	return extensions
}

func isAllowedType(value string) bool {
	switch value {
	case "object", "array", "string", "integer", "number", "boolean", "null":
		return true
	default:
		return false
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
