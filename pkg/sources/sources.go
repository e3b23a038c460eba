// Package sources fills enumerations from named value providers. A schema
// node opts in with an extension:
//
//	"x-formoptions": {"source": "timezones"}
//
// The Registry implements orchestrator.Transformer, so registering it with
// orchestrator.WithSchemaTransformer makes tagged fields resolve like any
// other enum, overlays included.
package sources

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

// ExtensionKey is the schema extension that carries option source settings.
const ExtensionKey = "x-formoptions"

const sourceKey = "source"

// ErrUnknownSource is returned when a schema names a source that is not
// registered.
var ErrUnknownSource = errors.New("sources: unknown source")

// Params are the extension settings other than "source", passed through to
// the provider, e.g. {"query": "europe", "limit": 20}.
type Params map[string]any

// String returns the trimmed string setting key.
func (p Params) String(key string) string {
	value, _ := p[key].(string)
	return strings.TrimSpace(value)
}

// Int returns the numeric setting key. JSON and YAML numbers are accepted.
func (p Params) Int(key string) (int, bool) {
	switch value := p[key].(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	default:
		return 0, false
	}
}

// Provider supplies the values of an option source.
type Provider interface {
	Values(ctx context.Context, params Params) ([]any, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, params Params) ([]any, error)

// Values calls f.
func (f ProviderFunc) Values(ctx context.Context, params Params) ([]any, error) {
	return f(ctx, params)
}

// Static returns a Provider that always yields values and ignores params.
func Static(values ...any) Provider {
	snapshot := append([]any(nil), values...)
	return ProviderFunc(func(context.Context, Params) ([]any, error) {
		return append([]any(nil), snapshot...), nil
	})
}

// Registry stores providers by name.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider. Duplicate names return an error.
func (r *Registry) Register(name string, provider Provider) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("sources: provider name is required")
	}
	if provider == nil {
		return fmt.Errorf("sources: provider %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.providers == nil {
		r.providers = make(map[string]Provider)
	}
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("sources: provider %q already registered", name)
	}
	r.providers[name] = provider
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, provider Provider) {
	if err := r.Register(name, provider); err != nil {
		panic(err)
	}
}

// Get retrieves a provider by name.
func (r *Registry) Get(name string) (Provider, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[strings.TrimSpace(name)]
	return provider, ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourceName returns the source a node asks for and its remaining settings.
func SourceName(s *schema.Schema) (string, Params, bool) {
	if s == nil {
		return "", nil, false
	}
	settings, ok := s.Extensions[ExtensionKey].(map[string]any)
	if !ok {
		return "", nil, false
	}
	name, _ := settings[sourceKey].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, false
	}
	params := make(Params, len(settings))
	for key, value := range settings {
		if key != sourceKey {
			params[key] = value
		}
	}
	return name, params, true
}

// Transform fills the enum of every tagged node in entry. Nodes that already
// declare an enum keep it. The entry is updated copy-on-write: maps and
// slices shared with the adapter's output are never modified in place.
func (r *Registry) Transform(ctx context.Context, entry *schema.Entry) error {
	if entry == nil {
		return nil
	}
	filled, _, err := r.fill(ctx, entry.Schema, "#")
	if err != nil {
		return err
	}
	entry.Schema = filled
	return nil
}

func (r *Registry) fill(ctx context.Context, node schema.Schema, path string) (schema.Schema, bool, error) {
	changed := false

	if name, params, ok := SourceName(&node); ok && node.Enum == nil {
		provider, found := r.Get(name)
		if !found {
			return node, false, fmt.Errorf("%w %q at %s", ErrUnknownSource, name, path)
		}
		values, err := provider.Values(ctx, params)
		if err != nil {
			return node, false, fmt.Errorf("sources: %s at %s: %w", name, path, err)
		}
		if values == nil {
			values = []any{}
		}
		node.Enum = values
		changed = true
	}

	if len(node.Properties) > 0 {
		var props map[string]schema.Schema
		for _, key := range sortedKeys(node.Properties) {
			child, childChanged, err := r.fill(ctx, node.Properties[key], path+"/properties/"+key)
			if err != nil {
				return node, false, err
			}
			if !childChanged {
				continue
			}
			if props == nil {
				props = make(map[string]schema.Schema, len(node.Properties))
				for k, v := range node.Properties {
					props[k] = v
				}
			}
			props[key] = child
		}
		if props != nil {
			node.Properties = props
			changed = true
		}
	}

	if node.Items != nil {
		items, itemsChanged, err := r.fill(ctx, *node.Items, path+"/items")
		if err != nil {
			return node, false, err
		}
		if itemsChanged {
			node.Items = &items
			changed = true
		}
	}

	var err error
	var branchesChanged bool
	if node.OneOf, branchesChanged, err = r.fillBranches(ctx, node.OneOf, path+"/oneOf"); err != nil {
		return node, false, err
	}
	changed = changed || branchesChanged
	if node.AnyOf, branchesChanged, err = r.fillBranches(ctx, node.AnyOf, path+"/anyOf"); err != nil {
		return node, false, err
	}
	changed = changed || branchesChanged

	return node, changed, nil
}

func (r *Registry) fillBranches(ctx context.Context, branches []schema.Schema, path string) ([]schema.Schema, bool, error) {
	var out []schema.Schema
	for idx := range branches {
		branch, changed, err := r.fill(ctx, branches[idx], fmt.Sprintf("%s/%d", path, idx))
		if err != nil {
			return branches, false, err
		}
		if !changed {
			continue
		}
		if out == nil {
			out = append([]schema.Schema(nil), branches...)
		}
		out[idx] = branch
	}
	if out == nil {
		return branches, false, nil
	}
	return out, true, nil
}

func sortedKeys(props map[string]schema.Schema) []string {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
