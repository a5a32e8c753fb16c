package nwb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/scigolib/nwb/internal/utils"
	"github.com/scigolib/nwb/store"
)

// SourceAttribute is the attribute every channel carries its provenance in.
const SourceAttribute = "source"

// Recognized source keys. Matching is case sensitive.
const (
	keyDevice          = "Device"
	keySweep           = "Sweep"
	keyElectrodeNumber = "ElectrodeNumber"
	keyTTLBit          = "TTLBit"
)

// ProvenanceRecord is the decoded "source" attribute of a channel.
type ProvenanceRecord struct {
	Device          Optional[string]
	Sweep           Optional[int]
	ElectrodeNumber Optional[int]
	// ChannelType and ChannelNumber are set together by an AD, DA or TTL entry.
	ChannelType   ChannelType
	ChannelNumber Optional[int]
	TTLBit        Optional[int]
}

// provenanceSetters folds one recognized key into a record.
var provenanceSetters = map[string]func(*ProvenanceRecord, string) error{
	keyDevice: func(r *ProvenanceRecord, v string) error {
		r.Device = Some(v)
		return nil
	},
	keySweep:           intSetter(func(r *ProvenanceRecord, n int) { r.Sweep = Some(n) }),
	keyElectrodeNumber: intSetter(func(r *ProvenanceRecord, n int) { r.ElectrodeNumber = Some(n) }),
	keyTTLBit:          intSetter(func(r *ProvenanceRecord, n int) { r.TTLBit = Some(n) }),
	"AD":               channelSetter(ChannelTypeADC),
	"DA":               channelSetter(ChannelTypeDAC),
	"TTL":              channelSetter(ChannelTypeTTL),
}

func intSetter(set func(*ProvenanceRecord, int)) func(*ProvenanceRecord, string) error {
	return func(r *ProvenanceRecord, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		set(r, n)
		return nil
	}
}

func channelSetter(t ChannelType) func(*ProvenanceRecord, string) error {
	return intSetter(func(r *ProvenanceRecord, n int) {
		r.ChannelType = t
		r.ChannelNumber = Some(n)
	})
}

// NormalizeSource flattens the raw strings of a source attribute into one
// key=value entry per element. Older writers stored a single ";" joined
// string, newer ones one string per entry; only the former is split.
// Empty entries are dropped.
func NormalizeSource(raw []string) []string {
	entries := raw
	if len(raw) == 1 {
		entries = strings.Split(raw[0], ";")
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// ParseProvenance decodes the raw strings of a source attribute. Entries are
// applied in order, so a later entry for a key overrides an earlier one.
// Keys must match exactly, including case and surrounding space.
// Unrecognized keys and entries without "=" are ignored; a recognized numeric
// key with a non-numeric value fails with ErrMalformedProvenance.
func ParseProvenance(raw []string) (ProvenanceRecord, error) {
	var rec ProvenanceRecord
	for _, entry := range NormalizeSource(raw) {
		key, value, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		set, ok := provenanceSetters[key]
		if !ok {
			continue
		}
		if err := set(&rec, value); err != nil {
			return ProvenanceRecord{}, fmt.Errorf("%w: %q: %v", ErrMalformedProvenance, entry, err)
		}
	}
	return rec, nil
}

// Entries returns the record as key=value entries in canonical order:
// Device, Sweep, ElectrodeNumber, AD|DA|TTL, TTLBit. Unset fields are omitted.
func (r ProvenanceRecord) Entries() []string {
	var entries []string
	if v, ok := r.Device.Get(); ok {
		entries = append(entries, keyDevice+"="+v)
	}
	if v, ok := r.Sweep.Get(); ok {
		entries = append(entries, keySweep+"="+strconv.Itoa(v))
	}
	if v, ok := r.ElectrodeNumber.Get(); ok {
		entries = append(entries, keyElectrodeNumber+"="+strconv.Itoa(v))
	}
	if v, ok := r.ChannelNumber.Get(); ok {
		if code := channelSourceKey(r.ChannelType); code != "" {
			entries = append(entries, code+"="+strconv.Itoa(v))
		}
	}
	if v, ok := r.TTLBit.Get(); ok {
		entries = append(entries, keyTTLBit+"="+strconv.Itoa(v))
	}
	return entries
}

// channelSourceKey returns the source key of a channel type. Only ADC, DAC
// and TTL channels can be described by a source attribute.
func channelSourceKey(t ChannelType) string {
	switch t {
	case ChannelTypeADC, ChannelTypeDAC, ChannelTypeTTL:
		return t.Code()
	default:
		return ""
	}
}

// String returns the canonical single string form, entries joined by ";".
func (r ProvenanceRecord) String() string {
	return strings.Join(r.Entries(), ";")
}

// LoadProvenance reads and decodes the source attribute of the channel at
// channelPath. Every channel must carry one, so an absent attribute fails
// with ErrMissingAttribute and a non-text one with ErrNotText.
func LoadProvenance(r store.Reader, channelPath string) (ProvenanceRecord, error) {
	raw, err := r.LoadTextAttribute(channelPath, SourceAttribute)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ProvenanceRecord{}, utils.WrapPathError("load provenance", channelPath, ErrMissingAttribute)
	case errors.Is(err, store.ErrNotText):
		return ProvenanceRecord{}, utils.WrapPathError("load provenance", channelPath, ErrNotText)
	case err != nil:
		return ProvenanceRecord{}, utils.WrapPathError("load provenance", channelPath, err)
	}

	rec, err := ParseProvenance(raw)
	if err != nil {
		return ProvenanceRecord{}, utils.WrapPathError("load provenance", channelPath, err)
	}
	return rec, nil
}
