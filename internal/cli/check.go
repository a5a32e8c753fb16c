package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/scigolib/nwb"
)

type checkResult struct {
	File   string               `json:"file" yaml:"file"`
	Pass   bool                 `json:"pass" yaml:"pass"`
	Report *nwb.IntegrityReport `json:"report" yaml:"report"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate the integrity of a file",
		Long: `Validate the integrity of an NWB v1 file.

The check verifies the format version, that every device has a lab notebook
and that every channel's name agrees with its source attribute.

Exit codes:
  0  the file passed
  1  the file failed or uses an unsupported version
  2  the file could not be read`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, opts *RootOptions, file string) error {
	out := opts.formatter(cmd)

	c, err := openContainer(file)
	if err != nil {
		return out.Fail(ErrCodeOpen, "cannot open "+file, err)
	}
	defer c.Close()

	report, checkErr := nwb.CheckIntegrity(c,
		nwb.WithLogger(opts.Logger.With().Str("file", file).Logger()),
		nwb.WithMaxMajorVersion(opts.Config.MaxMajorVersion),
	)
	if report == nil {
		return out.Fail(ErrCodeRead, "cannot check "+file, checkErr)
	}

	result := checkResult{File: file, Pass: checkErr == nil && report.OK(), Report: report}
	err = out.Success(result, func(w io.Writer) error {
		_, err := io.WriteString(w, report.String())
		return err
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}

	switch {
	case errors.Is(checkErr, nwb.ErrUnsupportedVersion):
		return WrapExitError(ExitFailure, "unsupported file", checkErr)
	case !result.Pass:
		return NewExitError(ExitFailure, "integrity check failed")
	}
	return nil
}
