package uischema

import "github.com/goliatone/go-formoptions/pkg/schema"

// WildcardToken stands for "every option not listed elsewhere" inside an
// order directive.
const WildcardToken = "*"

// Overlay carries presentation hints for one schema node. It mirrors the
// schema tree: Properties and Items follow the schema's properties and array
// items, while OneOf and AnyOf line up index-for-index with the schema's
// alternative branches. RawOptions keeps the decoded "ui:options" object as
// written, including keys the resolver does not read.
type Overlay struct {
	Title         string
	Names         Names
	Order         []any
	SelectorField string
	Widget        string
	RawOptions    map[string]any
	OneOf         []Overlay
	AnyOf         []Overlay
	Items         *Overlay
	Properties    map[string]Overlay
}

// Names is an alternate name table for enumerated values. It is either
// positional (List, aligned with the enum) or keyed by the value's string
// form (Map); at most one is set.
type Names struct {
	List []string
	Map  map[string]string
}

// Defined reports whether a name table was supplied.
func (n Names) Defined() bool {
	return n.List != nil || n.Map != nil
}

// Positional reports whether the table is aligned by index.
func (n Names) Positional() bool {
	return n.List != nil
}

// Lookup returns the non-empty name for the value at index whose string form
// is key. Positional tables use index; keyed tables use key.
func (n Names) Lookup(index int, key string) (string, bool) {
	if n.List != nil {
		if index < 0 || index >= len(n.List) || n.List[index] == "" {
			return "", false
		}
		return n.List[index], true
	}
	name, ok := n.Map[key]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Field walks the overlay along path, following Properties and Items the same
// way schema.Schema.Lookup does. Missing nodes yield nil, which every accessor
// treats as an empty overlay.
func (o *Overlay) Field(path string) *Overlay {
	current := o
	for _, segment := range schema.SplitFieldPath(path) {
		if current == nil {
			return nil
		}
		if segment == "items" && current.Items != nil {
			current = current.Items
			continue
		}
		child, ok := current.Properties[segment]
		if !ok {
			return nil
		}
		current = &child
	}
	return current
}

// Branch returns the overlay aligned with the alternative branch at index.
// Overlay sequences shorter than the branch list yield nil for the tail.
func Branch(overlays []Overlay, index int) *Overlay {
	if index < 0 || index >= len(overlays) {
		return nil
	}
	return &overlays[index]
}
