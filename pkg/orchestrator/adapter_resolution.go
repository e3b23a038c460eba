package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formoptions/pkg/schema"
)

func (o *Orchestrator) resolveAdapter(req Request, doc schema.Document) (schema.FormatAdapter, error) {
	if format := strings.TrimSpace(req.Format); format != "" {
		return o.registry.Get(format)
	}

	matches := o.registry.Detect(doc.Source(), doc.Raw())
	switch len(matches) {
	case 0:
		if o.defaultAdapter == "" {
			return nil, errors.New("orchestrator: unable to detect format")
		}
		o.logger.Debug("no adapter claimed document, using default", "location", doc.Location(), "adapter", o.defaultAdapter)
		return o.registry.Get(o.defaultAdapter)
	case 1:
		o.logger.Debug("adapter detected", "location", doc.Location(), "adapter", matches[0].Name())
		return matches[0], nil
	default:
		return nil, fmt.Errorf("orchestrator: multiple adapters matched payload (%s), specify format", formatAdapterNames(matches))
	}
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func selectEntry(ir schema.SchemaIR, id string) (schema.Entry, error) {
	if id = strings.TrimSpace(id); id != "" {
		entry, ok := ir.Entry(id)
		if !ok {
			return schema.Entry{}, fmt.Errorf("orchestrator: schema %q not found (available: %s)", id, formatIDs(ir.IDs()))
		}
		return entry, nil
	}
	ids := ir.IDs()
	switch len(ids) {
	case 0:
		return schema.Entry{}, errors.New("orchestrator: document produced no schemas")
	case 1:
		entry, _ := ir.Entry(ids[0])
		return entry, nil
	default:
		return schema.Entry{}, fmt.Errorf("orchestrator: multiple schemas (%s), specify schema id", formatIDs(ids))
	}
}

func formatIDs(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

func formatAdapterNames(adapters []schema.FormatAdapter) string {
	names := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		if adapter == nil {
			continue
		}
		if name := strings.TrimSpace(adapter.Name()); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
