package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formoptions/internal/prompt"
	"github.com/goliatone/go-formoptions/pkg/options"
)

var errNotInteractive = errors.New("cli: pick needs an interactive terminal on stdin and stdout")

func (a *app) pickCmd() *cobra.Command {
	var (
		src     sourceFlags
		multi   bool
		current []string
		message string
	)
	cmd := &cobra.Command{
		Use:   "pick <source>",
		Short: "Choose among the options of a field interactively",
		Long: `Pick resolves the options of --field and asks for a choice on the terminal.
The chosen options are printed in the selected output format.`,
		Example: `  formoptions pick ticket.schema.json --field status
  formoptions pick ticket.schema.json --field tags.items --multi --current bug`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, err := a.promptDriver()
			if err != nil {
				return err
			}
			p, err := a.printer()
			if err != nil {
				return err
			}
			req, err := a.request(args[0], src)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			result, err := a.orchestrator(src).Resolve(ctx, req)
			if err != nil {
				return err
			}
			if message == "" {
				message = fmt.Sprintf("Select %s", displayField(result.Field))
			}

			var chosen []options.Option
			if multi {
				defaults := make([]any, len(current))
				for idx, value := range current {
					defaults[idx] = value
				}
				chosen, err = prompt.PickMany(ctx, driver, message, result.Options, defaults)
			} else {
				var first any
				if len(current) > 0 {
					first = current[0]
				}
				var opt options.Option
				opt, err = prompt.Pick(ctx, driver, message, result.Options, first)
				chosen = []options.Option{opt}
			}
			if err != nil {
				return err
			}
			return p.field(result.SchemaID, result.Field, chosen)
		},
	}
	src.bind(cmd)
	cmd.Flags().BoolVar(&multi, "multi", false, "Allow choosing several options")
	cmd.Flags().StringSliceVar(&current, "current", nil, "Value(s) to preselect")
	cmd.Flags().StringVar(&message, "message", "", "Prompt message")
	return cmd
}

func (a *app) promptDriver() (prompt.Driver, error) {
	if a.driver != nil {
		return a.driver, nil
	}
	if !isInteractive(a.in, a.out) {
		return nil, errNotInteractive
	}
	in, inOK := a.in.(terminal.FileReader)
	out, outOK := a.out.(terminal.FileWriter)
	if !inOK || !outOK {
		return nil, errNotInteractive
	}
	return prompt.NewSurveyDriver(prompt.Stdio{In: in, Out: out, Err: a.errOut}), nil
}

func displayField(field string) string {
	if field == "" {
		return "a value"
	}
	return field
}
