package cli

import (
	"github.com/spf13/cobra"

	"github.com/scigolib/nwb/store"
	"github.com/scigolib/nwb/store/memstore"
)

// NewDumpCommand creates the dump command.
func NewDumpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the container tree as a YAML snapshot",
		Long: `Print every group, dataset and attribute of a file as a YAML snapshot.

The snapshot can be passed back to the other commands in place of the file.
The --format flag does not apply; the output is always YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, opts, args[0])
		},
	}
}

func runDump(cmd *cobra.Command, opts *RootOptions, file string) error {
	out := opts.formatter(cmd)

	c, err := openContainer(file)
	if err != nil {
		return out.Fail(ErrCodeOpen, "cannot open "+file, err)
	}
	defer c.Close()

	snapshot := memstore.New()
	if err := store.Copy(snapshot, c); err != nil {
		return out.Fail(ErrCodeRead, "cannot read "+file, err)
	}
	opts.Logger.Debug().Str("file", file).Msg("copied container")

	if err := snapshot.DumpYAML(cmd.OutOrStdout()); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return nil
}
