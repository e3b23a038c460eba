package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) adaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List the registered schema adapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printNames(a.orchestrator(sourceFlags{}).Adapters())
		},
	}
}

func (a *app) sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the option sources usable from x-formoptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printNames(a.sources.Names())
		},
	}
}

// printNames writes names as a JSON or YAML list, or one per line.
func (a *app) printNames(names []string) error {
	if names == nil {
		names = []string{}
	}
	switch a.flags.output {
	case formatJSON:
		return writeJSON(a.out, names)
	case formatYAML:
		return writeYAML(a.out, names)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(a.out, name); err != nil {
			return err
		}
	}
	return nil
}
