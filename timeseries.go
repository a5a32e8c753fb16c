package nwb

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/scigolib/nwb/internal/utils"
	"github.com/scigolib/nwb/store"
)

// Names inside a channel group.
const (
	datasetData         = "data"
	datasetNumSamples   = "num_samples"
	datasetStartingTime = "starting_time"

	attrUnit       = "unit"
	attrConversion = "conversion"
	attrRate       = "rate"
)

// ChannelData is one channel of a sweep as it is written to a container.
type ChannelData struct {
	ID ChannelIdentifier
	// Provenance is written as the source attribute. An unset channel type
	// and number are filled in from ID.
	Provenance ProvenanceRecord
	// Unit of the values in Data, e.g. "mV". Stored as base unit plus
	// conversion factor.
	Unit Unit
	Data []float64
	// StartingTime of the first sample in seconds, with the sampling rate in Hz.
	StartingTime Optional[float64]
	Rate         Optional[float64]
}

// ChannelInfo is the metadata read back from a channel group.
type ChannelInfo struct {
	Path string
	// ID is valid only when NameValid is set.
	ID         ChannelIdentifier
	NameValid  bool
	Provenance ProvenanceRecord
	// Unit and Conversion are unset when the data dataset or its unit
	// attribute is missing.
	Unit         Optional[Unit]
	Conversion   Optional[float64]
	NumSamples   Optional[float64]
	StartingTime Optional[float64]
	Rate         Optional[float64]
}

// channelBranch returns the group a channel of type t is written below.
func channelBranch(t ChannelType) (string, error) {
	switch t {
	case ChannelTypeADC:
		return PathAcquisition, nil
	case ChannelTypeDAC, ChannelTypeTTL:
		return PathStimulus, nil
	default:
		return "", fmt.Errorf("%w: %s channels cannot be written", ErrInvalidChannel, t)
	}
}

// resolveProvenance completes rec from id and rejects records that
// contradict the channel name.
func resolveProvenance(id ChannelIdentifier, rec ProvenanceRecord) (ProvenanceRecord, error) {
	if rec.ChannelType == ChannelTypeUnknown {
		rec.ChannelType = id.Type
		if !rec.ChannelNumber.IsSet() {
			rec.ChannelNumber = Some(id.Number)
		}
	}
	if !rec.TTLBit.IsSet() {
		rec.TTLBit = id.TTLBit
	}

	if rec.ChannelType != id.Type {
		return rec, fmt.Errorf("%w: name says %s, source says %s", ErrInconsistentChannel, id.Type, rec.ChannelType)
	}
	if n, ok := rec.ChannelNumber.Get(); !ok || n != id.Number {
		return rec, fmt.Errorf("%w: name says channel %d, source says %s",
			ErrInconsistentChannel, id.Number, rec.ChannelNumber)
	}
	if device, ok := rec.Device.Get(); ok {
		// The source attribute is stored joined, so the device must survive
		// splitting on ";" and trimming of each entry.
		if strings.Contains(device, ";") || strings.TrimSpace(device) != device {
			return rec, fmt.Errorf("%w: device %q cannot be stored in a source attribute", ErrInvalidChannel, device)
		}
	}
	return rec, nil
}

// WriteChannel writes ch as a channel group and returns its path. ADC
// channels go below /acquisition/timeseries, DAC and TTL channels below
// /stimulus/presentation.
func WriteChannel(w store.Writer, ch ChannelData) (string, error) {
	if err := ch.ID.Validate(); err != nil {
		return "", err
	}
	branch, err := channelBranch(ch.ID.Type)
	if err != nil {
		return "", err
	}
	rec, err := resolveProvenance(ch.ID, ch.Provenance)
	if err != nil {
		return "", utils.WrapError("write channel "+ch.ID.Name(), err)
	}
	if ch.Unit.Base == "" {
		return "", fmt.Errorf("%w: channel %s has no unit", ErrMalformedUnit, ch.ID.Name())
	}
	conversion, err := PrefixMultiplier(ch.Unit.Prefix)
	if err != nil {
		return "", err
	}

	p := store.JoinPath(branch, ch.ID.Name())
	data := store.JoinPath(p, datasetData)

	steps := []func() error{
		func() error { return w.CreateGroup(p) },
		func() error { return w.WriteTextAttribute(p, SourceAttribute, rec.String()) },
		func() error { return w.WriteNumericDataset(data, ch.Data) },
		func() error { return w.WriteTextAttribute(data, attrUnit, ch.Unit.Base) },
		func() error { return w.WriteNumericAttribute(data, attrConversion, conversion) },
		func() error {
			return w.WriteNumericDataset(store.JoinPath(p, datasetNumSamples), []float64{float64(len(ch.Data))})
		},
	}
	if start, ok := ch.StartingTime.Get(); ok {
		st := store.JoinPath(p, datasetStartingTime)
		steps = append(steps, func() error { return w.WriteNumericDataset(st, []float64{start}) })
		if rate, ok := ch.Rate.Get(); ok {
			steps = append(steps, func() error { return w.WriteNumericAttribute(st, attrRate, rate) })
		}
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return "", utils.WrapPathError("write channel", p, err)
		}
	}
	return p, nil
}

// ReadChannelUnit returns the unit of a channel's data together with the
// conversion factor to that unit. Both attributes are mandatory on data;
// a missing conversion factor defaults to 1.
func ReadChannelUnit(r store.Reader, channelPath string) (Unit, float64, error) {
	data := path.Join(channelPath, datasetData)

	raw, err := r.LoadTextAttribute(data, attrUnit)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return Unit{}, 0, utils.WrapPathError("read unit", data, ErrMissingAttribute)
	case errors.Is(err, store.ErrNotText):
		return Unit{}, 0, utils.WrapPathError("read unit", data, ErrNotText)
	case err != nil:
		return Unit{}, 0, utils.WrapPathError("read unit", data, err)
	case len(raw) != 1:
		return Unit{}, 0, utils.WrapPathError("read unit", data, fmt.Errorf("%w: got %d", ErrUnexpectedRows, len(raw)))
	}

	unit, err := ParseUnit(raw[0])
	if err != nil {
		return Unit{}, 0, utils.WrapPathError("read unit", data, err)
	}

	conversion := 1.0
	values, err := r.LoadNumericAttribute(data, attrConversion)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return Unit{}, 0, utils.WrapPathError("read conversion", data, err)
	case len(values) > 0:
		conversion = values[0]
	}
	return unit, conversion, nil
}

// ReadChannel reads the metadata of the channel group at channelPath, which
// may be relative to the root of r. Only a broken source attribute is an
// error; other missing pieces are left unset.
func ReadChannel(r store.Reader, channelPath string) (ChannelInfo, error) {
	info := ChannelInfo{Path: channelPath}
	info.ID, info.NameValid = ParseChannelName(store.Base(channelPath))

	rec, err := LoadProvenance(r, channelPath)
	if err != nil {
		return ChannelInfo{}, err
	}
	info.Provenance = rec

	if unit, conversion, err := ReadChannelUnit(r, channelPath); err == nil {
		info.Unit = Some(unit)
		info.Conversion = Some(conversion)
	}

	if info.NumSamples, err = readNumberField(r, path.Join(channelPath, datasetNumSamples)); err != nil {
		return ChannelInfo{}, err
	}
	st := path.Join(channelPath, datasetStartingTime)
	if info.StartingTime, err = readNumberField(r, st); err != nil {
		return ChannelInfo{}, err
	}
	if info.StartingTime.IsSet() {
		if rate, err := r.LoadNumericAttribute(st, attrRate); err == nil && len(rate) > 0 {
			info.Rate = Some(rate[0])
		}
	}
	return info, nil
}
