package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/scigolib/nwb"
)

type infoResult struct {
	TopLevel map[string]string `json:"toplevel" yaml:"toplevel"`
	General  map[string]string `json:"general" yaml:"general"`
	Subject  map[string]string `json:"subject" yaml:"subject"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show session metadata",
		Long: `Show the top-level, general and subject fields of a file.

Fields that are absent or hold the placeholder value are omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, opts, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, opts *RootOptions, file string) error {
	out := opts.formatter(cmd)

	c, err := openContainer(file)
	if err != nil {
		return out.Fail(ErrCodeOpen, "cannot open "+file, err)
	}
	defer c.Close()

	top, err := nwb.ReadTopLevelInfo(c)
	if err != nil {
		return out.Fail(ErrCodeRead, "cannot read top-level fields", err)
	}
	general, err := nwb.ReadGeneralInfo(c)
	if err != nil {
		return out.Fail(ErrCodeRead, "cannot read general fields", err)
	}
	subject, err := nwb.ReadSubjectInfo(c)
	if err != nil {
		return out.Fail(ErrCodeRead, "cannot read subject fields", err)
	}

	result := infoResult{
		TopLevel: top.Fields(opts.Config.TimestampDigits),
		General:  general.Fields(),
		Subject:  subject.Fields(),
	}
	opts.Logger.Debug().Str("file", file).
		Int("toplevel", len(result.TopLevel)).
		Int("general", len(result.General)).
		Int("subject", len(result.Subject)).
		Msg("read session metadata")

	err = out.Success(result, func(w io.Writer) error {
		sections := []struct {
			name   string
			fields map[string]string
		}{
			{"toplevel", result.TopLevel},
			{"general", result.General},
			{"subject", result.Subject},
		}
		for i, s := range sections {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := writeSection(w, s.name, s.fields); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return nil
}

// writeSection prints fields sorted by key below a [name] header.
func writeSection(w io.Writer, name string, fields map[string]string) error {
	if _, err := fmt.Fprintf(w, "[%s]\n", name); err != nil {
		return err
	}
	if len(fields) == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", k, fields[k]); err != nil {
			return err
		}
	}
	return nil
}
