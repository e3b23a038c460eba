// Package uischema models the UI overlay that sits beside a JSON Schema and
// supplies presentation hints: alternate names and ordering for enumerated
// values, per-branch titles for oneOf/anyOf alternatives, and a selector
// field override. Overlays are parsed from JSON or YAML using the
// "ui:"-prefixed keys popularised by react-jsonschema-form and are treated as
// immutable once built.
package uischema
