package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/goliatone/go-formoptions/internal/loader"
	"github.com/goliatone/go-formoptions/internal/openapi/parser"
	"github.com/goliatone/go-formoptions/pkg/jsonschema"
	pkgopenapi "github.com/goliatone/go-formoptions/pkg/openapi"
	"github.com/goliatone/go-formoptions/pkg/options"
	"github.com/goliatone/go-formoptions/pkg/schema"
	"github.com/goliatone/go-formoptions/pkg/uischema"
)

var (
	// ErrFieldNotFound reports a field path that does not exist in the schema.
	ErrFieldNotFound = errors.New("orchestrator: field not found")
	// ErrNoOptions reports a field that has no enum, anyOf or oneOf.
	ErrNoOptions = errors.New("orchestrator: field has no options")
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader. Built-in adapters created by
// New use the same loader.
func WithLoader(l schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithLoaderOptions configures the built-in loader. Ignored when WithLoader
// is also supplied.
func WithLoaderOptions(opts schema.LoaderOptions) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = opts
	}
}

// WithAdapterRegistry replaces the built-in adapter registry.
func WithAdapterRegistry(registry *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithAdapters registers extra adapters next to the built-in ones.
func WithAdapters(adapters ...schema.FormatAdapter) Option {
	return func(o *Orchestrator) {
		o.extraAdapters = append(o.extraAdapters, adapters...)
	}
}

// WithDefaultAdapter names the adapter used when no adapter claims a payload.
func WithDefaultAdapter(name string) Option {
	return func(o *Orchestrator) {
		o.defaultAdapter = name
	}
}

// WithLogger sets the logger used for debug records. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSchemaTransformer registers a Transformer that runs on the selected
// entry before the field lookup.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithOverlayFS supplies an fs.FS holding overlay documents. Overlays are
// matched to schema entries by id when a request carries no overlay.
func WithOverlayFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.overlayFS = fsys
	}
}

// Orchestrator coordinates loading, adapter detection, normalization and
// option resolution. It is safe for concurrent use once constructed.
type Orchestrator struct {
	loader         schema.Loader
	loaderOptions  schema.LoaderOptions
	registry       *AdapterRegistry
	extraAdapters  []schema.FormatAdapter
	defaultAdapter string
	logger         *slog.Logger
	transformer    Transformer
	overlayFS      fs.FS
	overlays       *uischema.Store
	initialiseErr  error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{defaultAdapter: jsonschema.DefaultAdapterName}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.loader == nil {
		o.loader = loader.New(o.loaderOptions)
	}
	if o.registry == nil {
		registry, err := NewAdapterRegistry(
			jsonschema.NewAdapter(o.loader),
			pkgopenapi.NewAdapter(o.loader, parser.New(pkgopenapi.NewParserOptions())),
		)
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.registry = registry
	}
	for _, adapter := range o.extraAdapters {
		if err := o.registry.Register(adapter); err != nil {
			o.initialiseErr = err
			return
		}
	}
	if o.overlayFS != nil {
		store, err := uischema.LoadFS(o.overlayFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load overlays: %w", err)
			return
		}
		o.overlays = store
	}
}

// Adapters lists the registered adapter names.
func (o *Orchestrator) Adapters() []string {
	return o.registry.List()
}

// Request describes a schema document, the field to resolve and the overlay
// to apply.
type Request struct {
	// Source identifies where the schema document lives. Optional when
	// Document is supplied.
	Source schema.Source

	// Document bypasses the loader when the caller already holds the payload.
	Document *schema.Document

	// Format names the adapter to use. Empty means auto-detect.
	Format string

	// SchemaID selects an entry when the document yields several, such as an
	// OpenAPI operationId.
	SchemaID string

	// Field is a dotted path to the field, e.g. "pets[].kind". Empty
	// addresses the root schema.
	Field string

	// Overlay is applied as-is when set.
	Overlay *uischema.Overlay

	// OverlaySource is loaded and parsed when Overlay is nil.
	OverlaySource schema.Source
}

// Result is the outcome of resolving a single field.
type Result struct {
	SchemaID string
	Field    string
	Options  []options.Option
}

// Resolve loads the document, selects the schema entry and returns the
// options of req.Field. A field without enum, anyOf or oneOf yields
// ErrNoOptions.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (Result, error) {
	entry, overlay, err := o.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}

	field := schema.NormalizeFieldPath(req.Field)
	node, ok := entry.Schema.Lookup(field)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q in schema %q", ErrFieldNotFound, req.Field, entry.ID)
	}
	o.logger.Debug("field located", "schema", entry.ID, "field", field)

	opts, ok := options.Resolve(node, overlay.Field(field))
	if !ok {
		return Result{}, fmt.Errorf("%w: %q in schema %q", ErrNoOptions, req.Field, entry.ID)
	}
	return Result{SchemaID: entry.ID, Field: field, Options: opts}, nil
}

// ResultSet is the outcome of resolving every option-bearing field of an
// entry, keyed by normalized field path.
type ResultSet struct {
	SchemaID string
	Fields   map[string][]options.Option
}

// ResolveAll resolves every option-bearing field under req.Field.
// Alternative branches are not descended into.
func (o *Orchestrator) ResolveAll(ctx context.Context, req Request) (ResultSet, error) {
	entry, overlay, err := o.prepare(ctx, req)
	if err != nil {
		return ResultSet{}, err
	}

	start := schema.NormalizeFieldPath(req.Field)
	root, ok := entry.Schema.Lookup(start)
	if !ok {
		return ResultSet{}, fmt.Errorf("%w: %q in schema %q", ErrFieldNotFound, req.Field, entry.ID)
	}

	out := make(map[string][]options.Option)
	walkFields(root, start, func(path string, node *schema.Schema) {
		if opts, ok := options.Resolve(node, overlay.Field(path)); ok {
			out[path] = opts
		}
	})
	o.logger.Debug("fields resolved", "schema", entry.ID, "count", len(out))
	return ResultSet{SchemaID: entry.ID, Fields: out}, nil
}

// Entry loads and normalizes the document and returns the selected entry.
func (o *Orchestrator) Entry(ctx context.Context, req Request) (schema.Entry, error) {
	entry, _, err := o.prepare(ctx, req)
	return entry, err
}

func (o *Orchestrator) prepare(ctx context.Context, req Request) (schema.Entry, *uischema.Overlay, error) {
	if ctx == nil {
		return schema.Entry{}, nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return schema.Entry{}, nil, err
	}
	if err := o.initialiseErr; err != nil {
		return schema.Entry{}, nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return schema.Entry{}, nil, err
	}
	adapter, err := o.resolveAdapter(req, doc)
	if err != nil {
		return schema.Entry{}, nil, err
	}

	ir, err := adapter.Normalize(ctx, doc, schema.NormalizeOptions{
		SchemaID:   req.SchemaID,
		FallbackID: fallbackID(doc.Location()),
	})
	if err != nil {
		return schema.Entry{}, nil, fmt.Errorf("orchestrator: normalize %s: %w", adapter.Name(), err)
	}

	entry, err := selectEntry(ir, req.SchemaID)
	if err != nil {
		return schema.Entry{}, nil, err
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &entry); err != nil {
			return schema.Entry{}, nil, fmt.Errorf("orchestrator: transform schema: %w", err)
		}
	}

	overlay, err := o.resolveOverlay(ctx, req, entry.ID)
	if err != nil {
		return schema.Entry{}, nil, err
	}
	return entry, overlay, nil
}

func (o *Orchestrator) resolveOverlay(ctx context.Context, req Request, entryID string) (*uischema.Overlay, error) {
	if req.Overlay != nil {
		return req.Overlay, nil
	}
	if req.OverlaySource != nil {
		doc, err := o.loader.Load(ctx, req.OverlaySource)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load overlay: %w", err)
		}
		overlay, err := uischema.Parse(doc.Raw())
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return overlay, nil
	}
	if overlay, ok := o.overlays.Overlay(entryID); ok {
		o.logger.Debug("overlay matched by schema id", "schema", entryID)
		return overlay, nil
	}
	return nil, nil
}

// fallbackID derives an entry id from a document location: the base name
// without extensions, so "schemas/ticket.schema.json" becomes "ticket".
func fallbackID(location string) string {
	location = strings.TrimSpace(location)
	if idx := strings.LastIndexAny(location, `/\`); idx >= 0 {
		location = location[idx+1:]
	}
	if idx := strings.Index(location, "."); idx > 0 {
		location = location[:idx]
	}
	return location
}

func walkFields(node *schema.Schema, path string, visit func(string, *schema.Schema)) {
	if node == nil {
		return
	}
	visit(path, node)

	names := make([]string, 0, len(node.Properties))
	for name := range node.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		child := node.Properties[name]
		walkFields(&child, joinField(path, name), visit)
	}
	if node.Items != nil {
		walkFields(node.Items, joinField(path, "items"), visit)
	}
}

func joinField(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}
