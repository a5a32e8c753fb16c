package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scigolib/nwb"
	"github.com/scigolib/nwb/store"
)

type channelSummary struct {
	Name       string   `json:"name" yaml:"name"`
	Channel    string   `json:"channel" yaml:"channel"`
	Sweep      *int     `json:"sweep,omitempty" yaml:"sweep,omitempty"`
	Unit       string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Conversion *float64 `json:"conversion,omitempty" yaml:"conversion,omitempty"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
}

type branchSummary struct {
	Path     string           `json:"path" yaml:"path"`
	Channels []channelSummary `json:"channels" yaml:"channels"`
}

type listResult struct {
	Devices      []string        `json:"devices" yaml:"devices"`
	Electrodes   []string        `json:"electrodes" yaml:"electrodes"`
	LabNotebooks []string        `json:"labnotebooks" yaml:"labnotebooks"`
	Stimsets     []string        `json:"stimsets" yaml:"stimsets"`
	Branches     []branchSummary `json:"branches" yaml:"branches"`
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List devices, electrodes, lab notebooks, stimulus sets and channels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, args[0])
		},
	}
}

func runList(cmd *cobra.Command, opts *RootOptions, file string) error {
	out := opts.formatter(cmd)

	c, err := openContainer(file)
	if err != nil {
		return out.Fail(ErrCodeOpen, "cannot open "+file, err)
	}
	defer c.Close()

	result, err := collectList(c)
	if err != nil {
		return out.Fail(ErrCodeRead, "cannot list "+file, err)
	}

	err = out.Success(result, func(w io.Writer) error {
		return writeList(w, result)
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return nil
}

func collectList(r store.Reader) (listResult, error) {
	var (
		result listResult
		err    error
	)
	if result.Devices, err = nwb.ListDevices(r); err != nil {
		return listResult{}, err
	}
	if result.Electrodes, err = nwb.ListElectrodes(r); err != nil {
		return listResult{}, err
	}
	if result.LabNotebooks, err = nwb.ListLabNotebooks(r); err != nil {
		return listResult{}, err
	}
	if result.Stimsets, err = nwb.ListStimsets(r); err != nil {
		return listResult{}, err
	}

	for _, branch := range []string{nwb.PathAcquisition, nwb.PathStimulus} {
		b, err := summarizeBranch(r, branch)
		if err != nil {
			return listResult{}, err
		}
		result.Branches = append(result.Branches, b)
	}
	return result, nil
}

// summarizeBranch reads every channel below branch. A channel that cannot
// be read is listed with its error.
func summarizeBranch(r store.Reader, branch string) (branchSummary, error) {
	summary := branchSummary{Path: branch, Channels: []channelSummary{}}
	if !r.GroupExists(branch) {
		return summary, nil
	}

	g, err := r.OpenGroup(branch)
	if err != nil {
		return branchSummary{}, err
	}
	defer g.Close()

	names, err := g.ListGroups("")
	if err != nil {
		return branchSummary{}, err
	}
	for _, name := range names {
		cs := channelSummary{Name: name, Channel: "-"}
		info, err := nwb.ReadChannel(g, name)
		if err != nil {
			cs.Error = err.Error()
			summary.Channels = append(summary.Channels, cs)
			continue
		}
		if n, ok := info.Provenance.ChannelNumber.Get(); ok && info.Provenance.ChannelType != nwb.ChannelTypeUnknown {
			cs.Channel = info.Provenance.ChannelType.Code() + strconv.Itoa(n)
		}
		if sweep, ok := info.Provenance.Sweep.Get(); ok {
			cs.Sweep = &sweep
		}
		if unit, ok := info.Unit.Get(); ok {
			cs.Unit = unit.String()
		}
		if conversion, ok := info.Conversion.Get(); ok {
			cs.Conversion = &conversion
		}
		summary.Channels = append(summary.Channels, cs)
	}
	return summary, nil
}

func writeList(w io.Writer, result listResult) error {
	for _, l := range []struct {
		name  string
		items []string
	}{
		{"devices", result.Devices},
		{"electrodes", result.Electrodes},
		{"labnotebooks", result.LabNotebooks},
		{"stimsets", result.Stimsets},
	} {
		items := "-"
		if len(l.items) > 0 {
			items = strings.Join(l.items, ", ")
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", l.name, items); err != nil {
			return err
		}
	}

	for _, b := range result.Branches {
		if _, err := fmt.Fprintf(w, "\n%s\n", b.Path); err != nil {
			return err
		}
		if len(b.Channels) == 0 {
			if _, err := fmt.Fprintln(w, "  (none)"); err != nil {
				return err
			}
		}
		for _, cs := range b.Channels {
			if _, err := fmt.Fprintf(w, "  %s\n", formatChannel(cs)); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatChannel(cs channelSummary) string {
	if cs.Error != "" {
		return fmt.Sprintf("%s error: %s", cs.Name, cs.Error)
	}
	parts := []string{cs.Name, cs.Channel}
	if cs.Sweep != nil {
		parts = append(parts, fmt.Sprintf("sweep=%d", *cs.Sweep))
	}
	if cs.Unit != "" {
		parts = append(parts, "unit="+cs.Unit)
	}
	if cs.Conversion != nil {
		parts = append(parts, "conversion="+strconv.FormatFloat(*cs.Conversion, 'g', -1, 64))
	}
	return strings.Join(parts, " ")
}
