package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formoptions/pkg/uischema"
)

func (a *app) lintCmd() *cobra.Command {
	var src sourceFlags
	cmd := &cobra.Command{
		Use:   "lint <source>",
		Short: "Check a UI overlay against its schema",
		Long: `Lint reports overlay entries the resolver would ignore: directives of the
wrong shape, fields, items or branches the schema does not declare, and names
or order tokens that match no enum value. Exits non-zero when anything is
reported.`,
		Example: `  formoptions lint ticket.schema.json --overlay ticket.ui.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overlayPath := strings.TrimSpace(src.overlay)
			if overlayPath == "" {
				return errors.New("cli: lint needs --overlay")
			}
			raw, err := os.ReadFile(overlayPath)
			if err != nil {
				return fmt.Errorf("cli: read overlay: %w", err)
			}

			// The overlay is linted here, so the orchestrator must not load it.
			lookup := src
			lookup.overlay = ""
			req, err := a.request(args[0], lookup)
			if err != nil {
				return err
			}
			entry, err := a.orchestrator(lookup).Entry(cmd.Context(), req)
			if err != nil {
				return err
			}

			violations, err := uischema.Lint(raw, &entry.Schema)
			if err != nil {
				return err
			}
			for _, v := range violations {
				fmt.Fprintf(a.errOut, "%s: %s\n", overlayPath, v)
			}
			if len(violations) > 0 {
				return fmt.Errorf("cli: %d overlay problem(s) in %s", len(violations), overlayPath)
			}
			fmt.Fprintf(a.out, "%s: ok\n", overlayPath)
			return nil
		},
	}
	src.bind(cmd)
	return cmd
}
