// Package orchestrator wires the load → detect → normalize → lookup → resolve
// pipeline, so callers can go from a schema document and an optional overlay
// to a field's options in a single call.
package orchestrator
