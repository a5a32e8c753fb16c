package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/scigolib/nwb/internal/config"
	"github.com/scigolib/nwb/internal/logging"
)

const appName = "nwbinspect"

// RootOptions holds global flags for all commands and the configuration
// resolved from them.
type RootOptions struct {
	ConfigPath string
	Format     string // overrides the configured format when set
	Verbose    bool

	Config config.Config
	Logger zerolog.Logger
}

// NewRootCommand creates the root command of the nwbinspect CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Config: config.Default(), Logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Inspect and validate NWB v1 electrophysiology files",
		Long: `Inspect and validate NWB v1 intracellular electrophysiology files.

Files ending in .yaml or .yml are read as container snapshots (see the dump
command); everything else is opened as HDF5.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "TOML configuration file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))

	return cmd
}

// resolve merges configuration file and flags and builds the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid configuration", err)
		}
		cfg = loaded
	}
	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.Verbose {
		cfg.LogLevel = zerolog.DebugLevel
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}
	o.Config = cfg

	// Logs go to stderr so they never mix with structured output.
	if cfg.Format == config.FormatText {
		o.Logger = logging.New(cmd.ErrOrStderr(), appName, cfg.LogLevel)
	} else {
		o.Logger = logging.NewJSON(cmd.ErrOrStderr(), appName, cfg.LogLevel)
	}
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Config.Format, Writer: cmd.OutOrStdout()}
}
