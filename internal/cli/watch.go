package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formoptions/pkg/orchestrator"
	"github.com/goliatone/go-formoptions/pkg/schema"
)

const defaultDebounce = 150 * time.Millisecond

func (a *app) watchCmd() *cobra.Command {
	var (
		src      sourceFlags
		all      bool
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch <source>",
		Short: "Re-resolve a field whenever the schema or overlay changes",
		Long: `Watch resolves like "resolve" and then re-resolves each time the schema file,
the --overlay file or a file in --overlay-dir changes. Resolution errors are
reported and watching continues. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer()
			if err != nil {
				return err
			}
			req, err := a.request(args[0], src)
			if err != nil {
				return err
			}
			paths, err := watchedPaths(req, src)
			if err != nil {
				return err
			}
			w := &watcher{
				paths:    paths,
				debounce: debounce,
				run: func(ctx context.Context) error {
					// A fresh orchestrator rereads the overlay directory.
					return resolveOnce(ctx, a.orchestrator(src), req, all, p)
				},
				report: func(err error) {
					printError(a.errOut, err)
				},
				logger: a.logger,
			}
			return w.watch(cmd.Context())
		},
	}
	src.bind(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Resolve every option-bearing field under --field")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "Quiet period before re-resolving after a change")
	return cmd
}

// watchedPaths lists the local files and directories whose changes trigger a
// new resolution. Remote sources cannot be watched.
func watchedPaths(req orchestrator.Request, src sourceFlags) ([]string, error) {
	if req.Source.Kind() != schema.SourceKindFile {
		return nil, fmt.Errorf("cli: watch needs a local schema file, got %s", req.Source.Kind())
	}
	paths := []string{req.Source.Location()}
	if req.OverlaySource != nil {
		if req.OverlaySource.Kind() != schema.SourceKindFile {
			return nil, fmt.Errorf("cli: watch needs a local overlay file, got %s", req.OverlaySource.Kind())
		}
		paths = append(paths, req.OverlaySource.Location())
	}
	if dir := strings.TrimSpace(src.overlayDir); dir != "" {
		paths = append(paths, dir)
	}
	return paths, nil
}
