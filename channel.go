package nwb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ChannelType classifies a channel by the hardware it was acquired on or
// presented through.
type ChannelType int

// Channel types. ChannelTypeUnknown is the zero value and means "not set".
const (
	ChannelTypeUnknown ChannelType = iota
	ChannelTypeADC
	ChannelTypeDAC
	ChannelTypeTTL
	ChannelTypeOther
)

// channelCodes maps the name/provenance codes to channel types.
var channelCodes = map[string]ChannelType{
	"AD":  ChannelTypeADC,
	"DA":  ChannelTypeDAC,
	"TTL": ChannelTypeTTL,
}

// otherChannelCode is the code channel names of ChannelTypeOther are written with.
const otherChannelCode = "OTH"

// ChannelTypeFromCode maps a type code to a channel type. Codes are case
// insensitive; anything but AD, DA and TTL is ChannelTypeOther.
func ChannelTypeFromCode(code string) ChannelType {
	if t, ok := channelCodes[strings.ToUpper(code)]; ok {
		return t
	}
	return ChannelTypeOther
}

// Code returns the code used in channel names and source attributes.
func (t ChannelType) Code() string {
	switch t {
	case ChannelTypeADC:
		return "AD"
	case ChannelTypeDAC:
		return "DA"
	case ChannelTypeTTL:
		return "TTL"
	case ChannelTypeOther:
		return otherChannelCode
	default:
		return ""
	}
}

func (t ChannelType) String() string {
	switch t {
	case ChannelTypeADC:
		return "ADC"
	case ChannelTypeDAC:
		return "DAC"
	case ChannelTypeTTL:
		return "TTL"
	case ChannelTypeOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// ChannelIdentifier is the structured form of a channel name
// data_<groupIndex>_<TYPE><number>[_<suffix>].
type ChannelIdentifier struct {
	GroupIndex int
	Type       ChannelType
	Number     int
	// Suffix is the optional trailing token, e.g. the TTL bit of a TTL channel.
	Suffix string
	// TTLBit is set when Suffix is purely numeric.
	TTLBit Optional[int]
}

var channelNameRegexp = regexp.MustCompile(`^data_([[:alnum:]]+)_([A-Za-z]{1,3})([0-9]+)(?:_([[:alnum:]]+))?$`)

// ParseChannelName decodes a channel name. ok is false when the name does not
// follow the convention, which is expected for groups that are not channels.
// The type code is case insensitive and a group index that is not an integer
// counts as a mismatch.
func ParseChannelName(name string) (id ChannelIdentifier, ok bool) {
	m := channelNameRegexp.FindStringSubmatch(name)
	if m == nil {
		return ChannelIdentifier{}, false
	}

	groupIndex, err := strconv.Atoi(m[1])
	if err != nil {
		return ChannelIdentifier{}, false
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return ChannelIdentifier{}, false
	}

	id = ChannelIdentifier{
		GroupIndex: groupIndex,
		Type:       ChannelTypeFromCode(m[2]),
		Number:     number,
		Suffix:     m[4],
	}
	if bit, err := strconv.Atoi(m[4]); err == nil {
		id.TTLBit = Some(bit)
	}
	return id, true
}

// Name encodes the identifier as a channel name. The group index is zero
// padded to five digits. A set TTLBit is used as suffix when Suffix is empty,
// so parsing the name back yields the identifier with Suffix filled in.
func (id ChannelIdentifier) Name() string {
	name := fmt.Sprintf("data_%05d_%s%d", id.GroupIndex, id.Type.Code(), id.Number)
	if suffix := id.suffix(); suffix != "" {
		return name + "_" + suffix
	}
	return name
}

func (id ChannelIdentifier) suffix() string {
	if id.Suffix != "" {
		return id.Suffix
	}
	if bit, ok := id.TTLBit.Get(); ok {
		return strconv.Itoa(bit)
	}
	return ""
}

// Validate reports whether the identifier can be written as a channel name.
// A set TTLBit must agree with a numeric Suffix; an empty Suffix is accepted
// and takes the bit's decimal form on encoding.
func (id ChannelIdentifier) Validate() error {
	switch {
	case id.Type == ChannelTypeUnknown:
		return fmt.Errorf("%w: channel type not set", ErrInvalidChannel)
	case id.GroupIndex < 0 || id.Number < 0:
		return fmt.Errorf("%w: negative group index or channel number", ErrInvalidChannel)
	case id.Suffix != "" && !isAlnum(id.Suffix):
		return fmt.Errorf("%w: suffix %q is not alphanumeric", ErrInvalidChannel, id.Suffix)
	}
	if bit, ok := id.TTLBit.Get(); ok {
		if bit < 0 {
			return fmt.Errorf("%w: negative TTL bit", ErrInvalidChannel)
		}
		if n, err := strconv.Atoi(id.Suffix); id.Suffix != "" && (err != nil || n != bit) {
			return fmt.Errorf("%w: TTL bit %d disagrees with suffix %q", ErrInvalidChannel, bit, id.Suffix)
		}
	}
	return nil
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
