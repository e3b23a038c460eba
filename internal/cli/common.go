package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formoptions/pkg/orchestrator"
	"github.com/goliatone/go-formoptions/pkg/schema"
)

// sourceFlags select the document, entry, field and overlay to resolve.
type sourceFlags struct {
	schemaFormat string
	schemaID     string
	field        string
	overlay      string
	overlayDir   string
}

func (f *sourceFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.schemaFormat, "schema-format", "", "Adapter to use (jsonschema, openapi); auto-detected when empty")
	flags.StringVar(&f.schemaID, "schema-id", "", "Schema entry to use, e.g. an OpenAPI operationId or components/schemas/<name>")
	flags.StringVarP(&f.field, "field", "f", "", `Field path, e.g. "status" or "items[].kind"; empty means the root schema`)
	flags.StringVar(&f.overlay, "overlay", "", "UI overlay file or URL")
	flags.StringVar(&f.overlayDir, "overlay-dir", "", "Directory of <schema-id>.ui.{json,yaml} overlays")
}

func (a *app) orchestrator(f sourceFlags) *orchestrator.Orchestrator {
	opts := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithLoaderOptions(schema.LoaderOptions{
			AllowHTTP:      a.flags.allowHTTP,
			RequestTimeout: a.flags.timeout,
		}),
		orchestrator.WithSchemaTransformer(a.sources),
	}
	if dir := strings.TrimSpace(f.overlayDir); dir != "" {
		opts = append(opts, orchestrator.WithOverlayFS(os.DirFS(dir)))
	}
	return orchestrator.New(opts...)
}

func (a *app) request(raw string, f sourceFlags) (orchestrator.Request, error) {
	src, err := schema.ParseSource(raw)
	if err != nil {
		return orchestrator.Request{}, fmt.Errorf("cli: %w", err)
	}
	req := orchestrator.Request{
		Source:   src,
		Format:   strings.TrimSpace(f.schemaFormat),
		SchemaID: strings.TrimSpace(f.schemaID),
		Field:    f.field,
	}
	if strings.TrimSpace(f.overlay) != "" {
		overlaySrc, err := schema.ParseSource(f.overlay)
		if err != nil {
			return orchestrator.Request{}, fmt.Errorf("cli: overlay: %w", err)
		}
		req.OverlaySource = overlaySrc
	}
	return req, nil
}

func (a *app) printer() (*printer, error) {
	return newPrinter(a.flags.output, a.flags.template, a.out)
}

// resolveOnce resolves req and prints it with p. With all set every
// option-bearing field under req.Field is printed.
func resolveOnce(ctx context.Context, orch *orchestrator.Orchestrator, req orchestrator.Request, all bool, p *printer) error {
	if all {
		set, err := orch.ResolveAll(ctx, req)
		if err != nil {
			return err
		}
		return p.fields(set.SchemaID, set.Fields)
	}
	result, err := orch.Resolve(ctx, req)
	if err != nil {
		return err
	}
	return p.field(result.SchemaID, result.Field, result.Options)
}
