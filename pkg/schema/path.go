package schema

import "strings"

// NormalizeFieldPath converts field keys into dot/".items" notation so
// "tags[].id", "tags.items.id" and " tags[] .id" address the same node.
func NormalizeFieldPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		"[].", ".items.",
		"[]", ".items",
		" ", "",
	)
	normalised := replacer.Replace(trimmed)
	for strings.Contains(normalised, "..") {
		normalised = strings.ReplaceAll(normalised, "..", ".")
	}
	return strings.Trim(normalised, ".")
}

// SplitFieldPath normalizes path and returns its segments. An empty path
// yields no segments and addresses the root.
func SplitFieldPath(path string) []string {
	normalised := NormalizeFieldPath(path)
	if normalised == "" {
		return nil
	}
	return strings.Split(normalised, ".")
}

// Lookup walks properties and array items to the node addressed by path.
// Slices and maps of the returned node share storage with the receiver, so
// callers must treat it as read-only.
func (s *Schema) Lookup(path string) (*Schema, bool) {
	if s == nil {
		return nil, false
	}
	current := s
	for _, segment := range SplitFieldPath(path) {
		if segment == "items" && current.Items != nil {
			current = current.Items
			continue
		}
		child, ok := current.Properties[segment]
		if !ok {
			return nil, false
		}
		current = &child
	}
	return current, true
}
