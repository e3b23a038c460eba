package jsonschema

import (
	"fmt"
	"net/url"
	"strings"
)

const defaultMaxRefDepth = 64

// RefError reports a $ref that could not be expanded.
type RefError struct {
	Ref     string
	Path    string
	Message string
}

func (e RefError) Error() string {
	return fmt.Sprintf("jsonschema: %s: $ref %q at %s", e.Message, e.Ref, e.Path)
}

type refExpander struct {
	root     map[string]any
	maxDepth int
}

// expandRefs returns a copy of root with every local "#/..." reference
// replaced by its target. Keywords placed beside a $ref override the target's
// keywords. A reference back into its own expansion is left in place so the
// normalized tree keeps Ref instead of recursing forever. Remote references
// are rejected.
func expandRefs(root map[string]any, maxDepth int) (map[string]any, error) {
	if maxDepth <= 0 {
		maxDepth = defaultMaxRefDepth
	}
	exp := &refExpander{root: root, maxDepth: maxDepth}
	out, err := exp.expand(root, "#", nil)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func (e *refExpander) expand(node any, path string, stack []string) (any, error) {
	switch typed := node.(type) {
	case map[string]any:
		if ref := strings.TrimSpace(readString(typed, "$ref")); ref != "" {
			return e.expandRef(typed, ref, path, stack)
		}
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			expanded, err := e.expand(value, joinPath(path, key), stack)
			if err != nil {
				return nil, err
			}
			out[key] = expanded
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for idx, value := range typed {
			expanded, err := e.expand(value, joinPath(path, fmt.Sprintf("%d", idx)), stack)
			if err != nil {
				return nil, err
			}
			out[idx] = expanded
		}
		return out, nil
	default:
		return node, nil
	}
}

func (e *refExpander) expandRef(node map[string]any, ref, path string, stack []string) (any, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, RefError{Ref: ref, Path: path, Message: "remote references are not supported"}
	}
	for _, seen := range stack {
		if seen == ref {
			return cloneShallow(node), nil
		}
	}
	if len(stack) >= e.maxDepth {
		return nil, RefError{Ref: ref, Path: path, Message: "maximum reference depth exceeded"}
	}

	target, err := resolvePointer(e.root, ref)
	if err != nil {
		return nil, RefError{Ref: ref, Path: path, Message: err.Error()}
	}

	expanded, err := e.expand(target, path, append(append([]string(nil), stack...), ref))
	if err != nil {
		return nil, err
	}
	resolved, ok := expanded.(map[string]any)
	if !ok {
		return nil, RefError{Ref: ref, Path: path, Message: "target is not a schema object"}
	}

	for key, value := range node {
		if key == "$ref" {
			continue
		}
		sibling, err := e.expand(value, joinPath(path, key), stack)
		if err != nil {
			return nil, err
		}
		resolved[key] = sibling
	}
	return resolved, nil
}

// resolvePointer follows a "#/a/b/0" JSON pointer through maps and arrays.
func resolvePointer(root map[string]any, pointer string) (any, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	if trimmed == "" || trimmed == "/" {
		return root, nil
	}
	if !strings.HasPrefix(trimmed, "/") {
		return nil, fmt.Errorf("path must be a JSON pointer")
	}

	current := any(root)
	for _, part := range strings.Split(trimmed, "/")[1:] {
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, fmt.Errorf("invalid json pointer")
		}
		decoded = strings.ReplaceAll(decoded, "~1", "/")
		decoded = strings.ReplaceAll(decoded, "~0", "~")

		switch typed := current.(type) {
		case map[string]any:
			value, ok := typed[decoded]
			if !ok {
				return nil, fmt.Errorf("path not found")
			}
			current = value
		case []any:
			idx, err := toIndex(decoded, len(typed))
			if err != nil {
				return nil, fmt.Errorf("path not found")
			}
			current = typed[idx]
		default:
			return nil, fmt.Errorf("path not found")
		}
	}
	return current, nil
}

func toIndex(raw string, length int) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty index")
	}
	var idx int
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid index")
		}
		idx = idx*10 + int(r-'0')
	}
	if idx >= length {
		return 0, fmt.Errorf("index out of range")
	}
	return idx, nil
}

func cloneShallow(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for key, value := range node {
		out[key] = value
	}
	return out
}

func joinPath(path string, segments ...string) string {
	if path == "" {
		path = "#"
	}
	replacer := strings.NewReplacer("~", "~0", "/", "~1")
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		path = path + "/" + replacer.Replace(segment)
	}
	return path
}
