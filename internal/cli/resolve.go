package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) resolveCmd() *cobra.Command {
	var (
		src sourceFlags
		all bool
	)
	cmd := &cobra.Command{
		Use:   "resolve <source>",
		Short: "Print the options of a field",
		Long: `Resolve loads a JSON Schema or OpenAPI document from a file or URL, applies
the UI overlay and prints the options of --field. With --all every field that
declares enum, oneOf or anyOf is printed.`,
		Example: `  formoptions resolve ticket.schema.json --field status
  formoptions resolve api.yaml --schema-id createPet --field pet.kind -o table
  formoptions resolve ticket.schema.json --all --overlay ticket.ui.yaml`,
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
			return resolveOnce(cmd.Context(), a.orchestrator(src), req, all, p)
		},
	}
	src.bind(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Resolve every option-bearing field under --field")
	return cmd
}
