package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formoptions/components/timezones"
	"github.com/goliatone/go-formoptions/internal/prompt"
	"github.com/goliatone/go-formoptions/pkg/sources"
)

// Version is reported by --version. Release builds override it with ldflags.
var Version = "dev"

var (
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

const (
	groupResolution = "resolution"
	groupTooling    = "tooling"
)

// RootOption customises the command tree, mostly for tests.
type RootOption func(*app)

// WithIO replaces the process streams.
func WithIO(in io.Reader, out, errOut io.Writer) RootOption {
	return func(a *app) {
		if in != nil {
			a.in = in
		}
		if out != nil {
			a.out = out
		}
		if errOut != nil {
			a.errOut = errOut
		}
	}
}

// WithPromptDriver makes pick use driver instead of a survey terminal
// prompt. The TTY check is skipped.
func WithPromptDriver(driver prompt.Driver) RootOption {
	return func(a *app) {
		a.driver = driver
	}
}

// WithSources replaces the option sources available to x-formoptions fields.
func WithSources(reg *sources.Registry) RootOption {
	return func(a *app) {
		if reg != nil {
			a.sources = reg
		}
	}
}

// defaultSources registers the built-in option sources.
func defaultSources() *sources.Registry {
	reg := sources.NewRegistry()
	if err := timezones.Register(reg); err != nil {
		panic(err)
	}
	return reg
}

// globalFlags are persistent flags shared by every command.
type globalFlags struct {
	output    string
	template  string
	logLevel  string
	allowHTTP bool
	timeout   time.Duration
}

type app struct {
	cfg     Config
	flags   globalFlags
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	driver  prompt.Driver
	sources *sources.Registry
	logger  *slog.Logger
}

// NewRootCmd builds the formoptions command tree. cfg supplies flag defaults.
func NewRootCmd(cfg Config, opts ...RootOption) *cobra.Command {
	a := &app{
		cfg:     cfg,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		sources: defaultSources(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:     "formoptions",
		Version: Version,
		Short:   "Resolve selectable options from JSON Schema and OpenAPI documents",
		Long: `formoptions turns enum, oneOf and anyOf fields of a JSON Schema or OpenAPI
document into ordered {label, value} options, applying labels and ordering
from a UI overlay.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(a.errOut, a.flags.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetHelpFunc(customHelpFunc)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.output, "output", "o", defaultString(cfg.Output, formatJSON), "Output format: json, yaml, table or template")
	pf.StringVar(&a.flags.template, "template", "", "Template file or inline pongo2 template for --output template")
	pf.StringVar(&a.flags.logLevel, "log-level", defaultString(cfg.LogLevel, "warn"), "Log level: debug, info, warn or error")
	pf.BoolVar(&a.flags.allowHTTP, "allow-http", cfg.AllowHTTP, "Allow http(s) schema and overlay sources")
	pf.DurationVar(&a.flags.timeout, "timeout", cfg.HTTPTimeout, "Timeout for remote document fetches")

	root.AddGroup(&cobra.Group{ID: groupResolution, Title: "Resolution:"})
	root.AddGroup(&cobra.Group{ID: groupTooling, Title: "CLI & Tooling:"})

	for _, cmd := range []*cobra.Command{a.resolveCmd(), a.pickCmd(), a.watchCmd()} {
		cmd.GroupID = groupResolution
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{a.lintCmd(), a.adaptersCmd(), a.sourcesCmd()} {
		cmd.GroupID = groupTooling
		root.AddCommand(cmd)
	}

	root.SetHelpCommand(&cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: groupTooling,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				return cmd.Root().Help()
			}
			return target.Help()
		},
	})

	return root
}

// Execute runs the command tree with args and returns the process exit code.
// Errors are printed once to stderr.
func Execute(ctx context.Context, args []string, opts ...RootOption) int {
	cfg, err := LoadConfig()
	if err != nil {
		printError(os.Stderr, err)
		return 1
	}
	root := NewRootCmd(cfg, opts...)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err)
		if errors.Is(err, prompt.ErrAborted) {
			return 130
		}
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	_, _ = errorColor.Fprintf(w, "✗ %s\n", err)
}

// customHelpFunc prints grouped commands with coloured section titles.
func customHelpFunc(cmd *cobra.Command, _ []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	} else if cmd.Short != "" {
		help.WriteString(cmd.Short)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	for _, group := range cmd.Groups() {
		help.WriteString(groupTitleColor.Sprint(group.Title))
		help.WriteString("\n")
		for _, c := range cmd.Commands() {
			if c.GroupID == group.ID && c.IsAvailableCommand() {
				fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
			}
		}
		help.WriteString("\n")
	}

	if cmd.Example != "" {
		help.WriteString(sectionTitleColor.Sprint("Examples:"))
		help.WriteString("\n")
		help.WriteString(cmd.Example)
		help.WriteString("\n\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailableInheritedFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
