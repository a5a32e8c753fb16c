package nwb

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/scigolib/nwb/internal/utils"
	"github.com/scigolib/nwb/store"
)

// FindingKind classifies an integrity finding.
type FindingKind int

// Finding kinds.
const (
	// FindingUnsupportedVersion: the container uses a newer major format version.
	FindingUnsupportedVersion FindingKind = iota + 1
	// FindingUnknownVersion: the format version is absent or unparsable. A warning.
	FindingUnknownVersion
	// FindingLabNotebookCorrupt: devices and lab notebook groups differ.
	FindingLabNotebookCorrupt
	// FindingChannelMismatch: a channel's name and source attribute disagree.
	FindingChannelMismatch
	// FindingMissingData: a channel has no data dataset.
	FindingMissingData
	// FindingInvalidName: a group in a channel branch is not named like a channel.
	FindingInvalidName
	// FindingMissingProvenance: a channel's source attribute is absent or unreadable.
	FindingMissingProvenance
)

var findingKindNames = map[FindingKind]string{
	FindingUnsupportedVersion: "unsupported-version",
	FindingUnknownVersion:     "unknown-version",
	FindingLabNotebookCorrupt: "labnotebook-corrupt",
	FindingChannelMismatch:    "channel-mismatch",
	FindingMissingData:        "missing-data",
	FindingInvalidName:        "invalid-name",
	FindingMissingProvenance:  "missing-provenance",
}

// String returns the kebab case name of the kind.
func (k FindingKind) String() string {
	if name, ok := findingKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("finding(%d)", int(k))
}

// MarshalText encodes the kind by name for JSON and YAML reports.
func (k FindingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsWarning reports whether findings of this kind leave the check passing.
func (k FindingKind) IsWarning() bool {
	return k == FindingUnknownVersion
}

// Finding is one problem found in a container.
type Finding struct {
	Kind    FindingKind `json:"kind" yaml:"kind"`
	Path    string      `json:"path" yaml:"path"`
	Message string      `json:"message" yaml:"message"`
}

// String formats the finding as "kind path: message".
func (f Finding) String() string {
	return fmt.Sprintf("%s %s: %s", f.Kind, f.Path, f.Message)
}

// IntegrityReport is the outcome of CheckIntegrity.
type IntegrityReport struct {
	// Version is the format version as stored, "" when absent.
	Version      string    `json:"version" yaml:"version"`
	Devices      []string  `json:"devices" yaml:"devices"`
	LabNotebooks []string  `json:"labnotebooks" yaml:"labnotebooks"`
	Channels     int       `json:"channels" yaml:"channels"`
	Findings     []Finding `json:"findings" yaml:"findings"`
}

// OK reports whether the container passed: every finding is a warning.
func (r *IntegrityReport) OK() bool {
	for _, f := range r.Findings {
		if !f.Kind.IsWarning() {
			return false
		}
	}
	return true
}

// String renders the report for humans.
func (r *IntegrityReport) String() string {
	var b strings.Builder
	version := r.Version
	if version == "" {
		version = "unknown"
	}
	fmt.Fprintf(&b, "NWB version: %s\n", version)
	fmt.Fprintf(&b, "Channels checked: %d\n", r.Channels)
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	if r.OK() {
		b.WriteString("Result: PASS\n")
	} else {
		b.WriteString("Result: FAIL\n")
	}
	return b.String()
}

func (r *IntegrityReport) add(log zerolog.Logger, kind FindingKind, path, format string, args ...any) {
	f := Finding{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
	r.Findings = append(r.Findings, f)
	log.Warn().Str("kind", kind.String()).Str("path", path).Msg(f.Message)
}

// unreadableVersion reports whether err means a version is stored in a form
// that cannot be decoded, as opposed to a failing store.
func unreadableVersion(err error) bool {
	return errors.Is(err, store.ErrNotText) ||
		errors.Is(err, store.ErrUnsupported) ||
		errors.Is(err, ErrUnexpectedRows)
}

// CheckIntegrity cross-checks the contents of a container:
//
//  1. the format version must not be newer than the supported major version;
//     otherwise checking stops and an error wrapping ErrUnsupportedVersion is
//     returned together with the report
//  2. every device must have a lab notebook group and vice versa
//  3. every channel below /acquisition/timeseries and /stimulus/presentation
//     must have a name and a source attribute that agree on channel type and
//     number, and a data dataset
//
// Individual problems are collected in the report rather than returned as
// errors; use IntegrityReport.OK for the overall outcome. A channel whose
// source attribute cannot be decoded stops the check of its branch. A format
// version stored in an undecodable form is reported as unknown. The returned
// error is reserved for the version cutoff and store failures.
func CheckIntegrity(r store.Reader, opts ...CheckOption) (*IntegrityReport, error) {
	cfg := defaultCheckConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger
	report := &IntegrityReport{Findings: []Finding{}}

	version, err := ReadNWBVersion(r)
	if err != nil && !unreadableVersion(err) {
		return nil, err
	}
	v, ok := version.Get()
	switch {
	case err != nil:
		report.add(log, FindingUnknownVersion, "/nwb_version", "cannot read format version: %v", err)
	case !ok:
		report.add(log, FindingUnknownVersion, "/nwb_version", "no format version stored")
	default:
		report.Version = v
		major, ok := MajorVersion(v)
		switch {
		case !ok:
			report.add(log, FindingUnknownVersion, "/nwb_version", "cannot parse format version %q", v)
		case major > cfg.maxMajor:
			report.add(log, FindingUnsupportedVersion, "/nwb_version",
				"major version %d is newer than supported version %d", major, cfg.maxMajor)
			return report, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
		}
	}

	if err := checkLabNotebooks(r, report, log); err != nil {
		return nil, err
	}

	for _, branch := range []string{PathAcquisition, PathStimulus} {
		if err := checkChannelBranch(r, branch, report, log); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("channels", report.Channels).
		Int("findings", len(report.Findings)).
		Bool("ok", report.OK()).
		Msg("integrity check finished")
	return report, nil
}

// checkLabNotebooks compares the device list with the lab notebook groups as sets.
func checkLabNotebooks(r store.Reader, report *IntegrityReport, log zerolog.Logger) error {
	devices, err := ListDevices(r)
	if err != nil {
		return err
	}
	notebooks, err := ListLabNotebooks(r)
	if err != nil {
		return err
	}
	report.Devices = devices
	report.LabNotebooks = notebooks

	missing := difference(devices, notebooks)
	orphaned := difference(notebooks, devices)
	if len(missing) == 0 && len(orphaned) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("devices without lab notebook: %s", strings.Join(missing, ", ")))
	}
	if len(orphaned) > 0 {
		parts = append(parts, fmt.Sprintf("lab notebooks without device: %s", strings.Join(orphaned, ", ")))
	}
	report.add(log, FindingLabNotebookCorrupt, PathLabNotebook, "%s", strings.Join(parts, "; "))
	return nil
}

// difference returns the sorted distinct elements of a that are not in b.
func difference(a, b []string) []string {
	var out []string
	for _, s := range a {
		if !slices.Contains(b, s) && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// checkChannelBranch checks every channel group below branch through a
// handle that is released on every return path.
func checkChannelBranch(r store.Reader, branch string, report *IntegrityReport, log zerolog.Logger) error {
	if !r.GroupExists(branch) {
		log.Debug().Str("path", branch).Msg("channel branch absent")
		return nil
	}

	g, err := r.OpenGroup(branch)
	if err != nil {
		return err
	}
	defer g.Close()

	names, err := g.ListGroups("")
	if err != nil {
		return utils.WrapPathError("check channels", branch, err)
	}
	log.Debug().Str("path", branch).Int("groups", len(names)).Msg("checking channel branch")

	for i, name := range names {
		report.Channels++
		p := store.JoinPath(branch, name)

		id, ok := ParseChannelName(name)
		if !ok {
			report.add(log, FindingInvalidName, p, "group name does not follow data_<index>_<TYPE><number>[_<suffix>]")
			continue
		}

		rec, err := LoadProvenance(g, name)
		if err != nil {
			report.add(log, FindingMissingProvenance, p, "%v; %d remaining channels not checked", err, len(names)-i-1)
			return nil
		}

		if rec.ChannelType != id.Type || rec.ChannelNumber != Some(id.Number) {
			report.add(log, FindingChannelMismatch, p, "name encodes %s, source encodes %s",
				describeChannel(id.Type, Some(id.Number)), describeChannel(rec.ChannelType, rec.ChannelNumber))
		}
		if !g.DatasetExists(name + "/" + datasetData) {
			report.add(log, FindingMissingData, p, "no %s dataset", datasetData)
		}
	}
	return nil
}

func describeChannel(t ChannelType, number Optional[int]) string {
	if t == ChannelTypeUnknown {
		return "no channel"
	}
	n, ok := number.Get()
	if !ok {
		return t.String() + " without number"
	}
	return fmt.Sprintf("%s%d", t.Code(), n)
}
