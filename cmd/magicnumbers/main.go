// magicnumbers: numerology readings over MCP and on the command line.
//
// Usage:
//
//	magicnumbers serve                 # Start MCP server (stdio transport)
//	magicnumbers read 0176-555-1221    # Read a number
//	magicnumbers generate --length 8   # Draw and read a random number
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/magicnumbers/internal/catalog"
	"github.com/HendryAvila/magicnumbers/internal/config"
	"github.com/HendryAvila/magicnumbers/internal/logging"
	"github.com/HendryAvila/magicnumbers/internal/numerology"
	mnserver "github.com/HendryAvila/magicnumbers/internal/server"
	"github.com/HendryAvila/magicnumbers/internal/tools"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what PersistentPreRunE resolves for the subcommands.
type app struct {
	cfg    config.Config
	logger *zap.Logger

	locale   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "magicnumbers",
		Short: "Numerology readings for any number",
		Long: `magicnumbers turns a digit string into a numerology reading: cross sum,
angel number patterns, master numbers, frequency, resonance and narrative.

Run "magicnumbers serve" to expose the readings as MCP tools over stdio.

Configuration comes from MAGICNUMBERS_* environment variables; flags win.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.locale, "locale", "", "locale for the reading text (default from MAGICNUMBERS_LOCALE)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (default from MAGICNUMBERS_LOG_LEVEL)")

	root.AddCommand(
		a.serveCmd(),
		a.readCmd(),
		a.generateCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("locale") {
		cfg.Locale = a.locale
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) presenter() *tools.Presenter {
	return tools.NewPresenter(catalog.Default(), a.cfg.Locale)
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Starts the MCP server on stdin/stdout. Logs go to stderr.

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "magicnumbers": {
        "command": "magicnumbers",
        "args": ["serve"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := mnserver.New(a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()
			return server.ServeStdio(s)
		},
	}
}

func (a *app) readCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "read <digits>...",
		Short: "Read a number you supply",
		Long: `Prints the reading of the given number. Several arguments are joined
with spaces; non-digit characters are ignored for the analysis.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if numerology.Clean(input) == "" {
				return fmt.Errorf("%q contains no digits", input)
			}
			return a.print(cmd, numerology.Analyze(input), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the structured result as JSON")
	return cmd
}

func (a *app) generateCmd() *cobra.Command {
	var (
		length int
		seed   int64
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draw a random number and read it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				length = a.cfg.Digits
			}
			if length < config.MinDigits || length > config.MaxDigits {
				return fmt.Errorf("--length must be between %d and %d", config.MinDigits, config.MaxDigits)
			}

			src := numerology.NewTimeSource()
			if cmd.Flags().Changed("seed") {
				src = numerology.NewSource(seed)
			}
			digits := numerology.Generate(src, length)
			a.logger.Debug("generated", zap.String("digits", digits))
			return a.print(cmd, numerology.Analyze(digits), asJSON)
		},
	}
	cmd.Flags().IntVar(&length, "length", numerology.DefaultLength, "number of digits (default from MAGICNUMBERS_DIGITS)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for a reproducible number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the structured result as JSON")
	return cmd
}

func (a *app) print(cmd *cobra.Command, res numerology.Result, asJSON bool) error {
	format := tools.FormatText
	if asJSON {
		format = tools.FormatJSON
	}
	out, err := a.presenter().Render(res, a.cfg.Locale, format, "")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "magicnumbers v%s\n", mnserver.Version)
			return err
		},
	}
}
