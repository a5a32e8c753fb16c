package nwb

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/scigolib/nwb/internal/utils"
	"github.com/scigolib/nwb/store"
)

// Fixed group locations of the NWB v1 layout.
const (
	PathAcquisition        = "/acquisition/timeseries"
	PathStimulus           = "/stimulus/presentation"
	PathStimulusTemplate   = "/stimulus/template"
	PathGeneral            = "/general"
	PathDevices            = "/general/devices"
	PathIntracellularEphys = "/general/intracellular_ephys"
	PathLabNotebook        = "/general/labnotebook"
	PathStimsets           = "/general/stimsets"
	PathSubject            = "/general/subject"
)

// Top-level dataset names.
const (
	datasetSessionDescription = "session_description"
	datasetNWBVersion         = "nwb_version"
	datasetIdentifier         = "identifier"
	datasetSessionStartTime   = "session_start_time"
	datasetFileCreateDate     = "file_create_date"
)

// DefaultTimestampDigits is the fractional second precision timestamps are
// written with.
const DefaultTimestampDigits = 6

// TopLevelInfo holds the datasets at the container root.
type TopLevelInfo struct {
	SessionDescription Optional[string]
	NWBVersion         Optional[string]
	Identifier         Optional[string]
	// SessionStartTime is in seconds since the Unix epoch.
	SessionStartTime Optional[float64]
	// FileCreateDate lists the creation and every later modification time,
	// oldest first, in timestamp text form.
	FileCreateDate []string
}

// GeneralInfo holds the free text datasets below /general.
type GeneralInfo struct {
	SessionID             Optional[string]
	Experimenter          Optional[string]
	Institution           Optional[string]
	Lab                   Optional[string]
	RelatedPublications   Optional[string]
	Notes                 Optional[string]
	ExperimentDescription Optional[string]
	DataCollection        Optional[string]
	Stimulus              Optional[string]
	Pharmacology          Optional[string]
	Surgery               Optional[string]
	Protocol              Optional[string]
	Virus                 Optional[string]
	Slices                Optional[string]
}

// SubjectInfo holds the datasets below /general/subject.
type SubjectInfo struct {
	SubjectID   Optional[string]
	Description Optional[string]
	Species     Optional[string]
	Genotype    Optional[string]
	Sex         Optional[string]
	Age         Optional[string]
	Weight      Optional[string]
}

// textDataset binds a dataset name to the record field it fills.
type textDataset struct {
	name  string
	value *Optional[string]
}

func (g *GeneralInfo) datasets() []textDataset {
	return []textDataset{
		{"session_id", &g.SessionID},
		{"experimenter", &g.Experimenter},
		{"institution", &g.Institution},
		{"lab", &g.Lab},
		{"related_publications", &g.RelatedPublications},
		{"notes", &g.Notes},
		{"experiment_description", &g.ExperimentDescription},
		{"data_collection", &g.DataCollection},
		{"stimulus", &g.Stimulus},
		{"pharmacology", &g.Pharmacology},
		{"surgery", &g.Surgery},
		{"protocol", &g.Protocol},
		{"virus", &g.Virus},
		{"slices", &g.Slices},
	}
}

func (s *SubjectInfo) datasets() []textDataset {
	return []textDataset{
		{"subject_id", &s.SubjectID},
		{"description", &s.Description},
		{"species", &s.Species},
		{"genotype", &s.Genotype},
		{"sex", &s.Sex},
		{"age", &s.Age},
		{"weight", &s.Weight},
	}
}

// readTextField reads a single row text dataset. An absent dataset, an empty
// one and the placeholder all yield an unset value.
func readTextField(r store.Reader, p string) (Optional[string], error) {
	rows, err := r.LoadTextDataset(p)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return None[string](), nil
	case err != nil:
		return None[string](), utils.WrapPathError("read field", p, err)
	}

	switch len(rows) {
	case 0:
		return None[string](), nil
	case 1:
		return textField(rows[0]), nil
	default:
		return None[string](), utils.WrapPathError("read field", p,
			fmt.Errorf("%w: got %d", ErrUnexpectedRows, len(rows)))
	}
}

// readNumberField reads a single value numeric dataset. An absent or empty
// dataset yields an unset value.
func readNumberField(r store.Reader, p string) (Optional[float64], error) {
	values, err := r.LoadNumericDataset(p)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return None[float64](), nil
	case err != nil:
		return None[float64](), utils.WrapPathError("read field", p, err)
	}

	switch len(values) {
	case 0:
		return None[float64](), nil
	case 1:
		return Some(values[0]), nil
	default:
		return None[float64](), utils.WrapPathError("read field", p,
			fmt.Errorf("%w: got %d", ErrUnexpectedRows, len(values)))
	}
}

func readTextFields(r store.Reader, base string, fields []textDataset) error {
	for _, f := range fields {
		v, err := readTextField(r, store.JoinPath(base, f.name))
		if err != nil {
			return err
		}
		*f.value = v
	}
	return nil
}

// writeTextField writes v as a single row dataset. Unset values and the
// placeholder are skipped so that absence survives a round trip.
func writeTextField(w store.Writer, p string, v Optional[string]) error {
	s, ok := v.Get()
	if !ok || s == Placeholder {
		return nil
	}
	return utils.WrapPathError("write field", p, w.WriteTextDataset(p, []string{s}))
}

func writeTextFields(w store.Writer, base string, fields []textDataset) error {
	for _, f := range fields {
		if err := writeTextField(w, store.JoinPath(base, f.name), *f.value); err != nil {
			return err
		}
	}
	return nil
}

// ReadTopLevelInfo reads the datasets at the container root. A
// session_start_time that is not a valid timestamp reads as unset.
func ReadTopLevelInfo(r store.Reader) (TopLevelInfo, error) {
	var (
		info  TopLevelInfo
		start Optional[string]
	)
	err := readTextFields(r, "/", []textDataset{
		{datasetSessionDescription, &info.SessionDescription},
		{datasetNWBVersion, &info.NWBVersion},
		{datasetIdentifier, &info.Identifier},
		{datasetSessionStartTime, &start},
	})
	if err != nil {
		return TopLevelInfo{}, err
	}

	if s, ok := start.Get(); ok {
		if secs, ok := ParseTimestamp(s); ok {
			info.SessionStartTime = Some(secs)
		}
	}

	dates, err := r.LoadTextDataset("/" + datasetFileCreateDate)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return TopLevelInfo{}, utils.WrapPathError("read field", "/"+datasetFileCreateDate, err)
	default:
		for _, d := range dates {
			if d != Placeholder {
				info.FileCreateDate = append(info.FileCreateDate, d)
			}
		}
	}
	return info, nil
}

// WriteTopLevelInfo writes the set fields of info to the container root.
// file_create_date is written chunked so AddModificationTimeEntry can extend it.
func WriteTopLevelInfo(w store.Writer, info TopLevelInfo) error {
	start := None[string]()
	if secs, ok := info.SessionStartTime.Get(); ok {
		start = Some(FormatTimestamp(secs, DefaultTimestampDigits))
	}

	err := writeTextFields(w, "/", []textDataset{
		{datasetSessionDescription, &info.SessionDescription},
		{datasetNWBVersion, &info.NWBVersion},
		{datasetIdentifier, &info.Identifier},
		{datasetSessionStartTime, &start},
	})
	if err != nil {
		return err
	}

	if len(info.FileCreateDate) == 0 {
		return nil
	}
	p := "/" + datasetFileCreateDate
	return utils.WrapPathError("write field", p, w.WriteTextDataset(p, info.FileCreateDate, store.Chunked()))
}

// AddModificationTimeEntry appends t to file_create_date.
func AddModificationTimeEntry(w store.Writer, t time.Time) error {
	p := "/" + datasetFileCreateDate
	entry := FormatTimestamp(TimeTimestamp(t), DefaultTimestampDigits)
	return utils.WrapPathError("append modification time", p, w.AppendTextDataset(p, entry))
}

// ReadGeneralInfo reads the datasets below /general.
func ReadGeneralInfo(r store.Reader) (GeneralInfo, error) {
	var info GeneralInfo
	if err := readTextFields(r, PathGeneral, info.datasets()); err != nil {
		return GeneralInfo{}, err
	}
	return info, nil
}

// WriteGeneralInfo writes the set fields of info below /general.
func WriteGeneralInfo(w store.Writer, info GeneralInfo) error {
	return writeTextFields(w, PathGeneral, info.datasets())
}

// ReadSubjectInfo reads the datasets below /general/subject.
func ReadSubjectInfo(r store.Reader) (SubjectInfo, error) {
	var info SubjectInfo
	if err := readTextFields(r, PathSubject, info.datasets()); err != nil {
		return SubjectInfo{}, err
	}
	return info, nil
}

// WriteSubjectInfo writes the set fields of info below /general/subject.
func WriteSubjectInfo(w store.Writer, info SubjectInfo) error {
	return writeTextFields(w, PathSubject, info.datasets())
}

// fieldMap collects the set fields by dataset name.
func fieldMap(fields []textDataset) map[string]string {
	out := make(map[string]string)
	for _, f := range fields {
		if v, ok := f.value.Get(); ok {
			out[f.name] = v
		}
	}
	return out
}

// Fields returns the set fields keyed by dataset name. The start time is
// formatted with fracDigits fractional digits and the creation dates are
// joined by ", ".
func (t TopLevelInfo) Fields(fracDigits int) map[string]string {
	out := fieldMap([]textDataset{
		{datasetSessionDescription, &t.SessionDescription},
		{datasetNWBVersion, &t.NWBVersion},
		{datasetIdentifier, &t.Identifier},
	})
	if secs, ok := t.SessionStartTime.Get(); ok {
		out[datasetSessionStartTime] = FormatTimestamp(secs, fracDigits)
	}
	if len(t.FileCreateDate) > 0 {
		out[datasetFileCreateDate] = strings.Join(t.FileCreateDate, ", ")
	}
	return out
}

// Fields returns the set fields keyed by dataset name.
func (g GeneralInfo) Fields() map[string]string {
	return fieldMap(g.datasets())
}

// Fields returns the set fields keyed by dataset name.
func (s SubjectInfo) Fields() map[string]string {
	return fieldMap(s.datasets())
}
