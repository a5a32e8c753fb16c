package nwb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannelName(t *testing.T) {
	tests := []struct {
		name string
		want ChannelIdentifier
	}{
		{"data_00000_AD0", ChannelIdentifier{GroupIndex: 0, Type: ChannelTypeADC, Number: 0}},
		{"data_00012_DA3", ChannelIdentifier{GroupIndex: 12, Type: ChannelTypeDAC, Number: 3}},
		{"data_00001_ad3", ChannelIdentifier{GroupIndex: 1, Type: ChannelTypeADC, Number: 3}},
		{"data_7_TTL1", ChannelIdentifier{GroupIndex: 7, Type: ChannelTypeTTL, Number: 1}},
		{"data_00003_TTL1_4", ChannelIdentifier{
			GroupIndex: 3, Type: ChannelTypeTTL, Number: 1, Suffix: "4", TTLBit: Some(4),
		}},
		{"data_00003_TTL1_04", ChannelIdentifier{
			GroupIndex: 3, Type: ChannelTypeTTL, Number: 1, Suffix: "04", TTLBit: Some(4),
		}},
		{"data_00002_AD1_raw", ChannelIdentifier{GroupIndex: 2, Type: ChannelTypeADC, Number: 1, Suffix: "raw"}},
		{"data_00002_X5", ChannelIdentifier{GroupIndex: 2, Type: ChannelTypeOther, Number: 5}},
		{"data_00002_ADC5", ChannelIdentifier{GroupIndex: 2, Type: ChannelTypeOther, Number: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseChannelName(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChannelName_SoftFailure(t *testing.T) {
	for _, name := range []string{
		"",
		"data",
		"data_00000",
		"data_00000_AD",
		"data_00000_0",
		"data_00000_ABCD0",
		"data_abc_AD0",
		"data_00000_AD0_",
		"data_00000_AD0_a-b",
		"stimulus_00000_AD0",
		"xdata_00000_AD0",
	} {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseChannelName(name)
			assert.False(t, ok)
			assert.Equal(t, ChannelIdentifier{}, got)
		})
	}
}

func TestChannelIdentifier_Name(t *testing.T) {
	tests := []struct {
		id   ChannelIdentifier
		want string
	}{
		{ChannelIdentifier{GroupIndex: 1, Type: ChannelTypeADC, Number: 3}, "data_00001_AD3"},
		{ChannelIdentifier{GroupIndex: 0, Type: ChannelTypeDAC, Number: 0}, "data_00000_DA0"},
		{ChannelIdentifier{GroupIndex: 123456, Type: ChannelTypeADC, Number: 2}, "data_123456_AD2"},
		{ChannelIdentifier{Type: ChannelTypeTTL, Number: 1, TTLBit: Some(2)}, "data_00000_TTL1_2"},
		{ChannelIdentifier{Type: ChannelTypeTTL, Number: 1, Suffix: "2", TTLBit: Some(2)}, "data_00000_TTL1_2"},
		{ChannelIdentifier{Type: ChannelTypeOther, Number: 4, Suffix: "aux"}, "data_00000_OTH4_aux"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.Name())
		})
	}
}

func TestChannelIdentifier_RoundTrip(t *testing.T) {
	types := []ChannelType{ChannelTypeADC, ChannelTypeDAC, ChannelTypeTTL, ChannelTypeOther}
	suffixes := []struct {
		suffix  string
		bit     Optional[int]
		decoded string // suffix parsed back from the name
	}{
		{"", None[int](), ""},
		{"7", Some(7), "7"},
		{"007", Some(7), "007"},
		{"raw", None[int](), "raw"},
		{"b2", None[int](), "b2"},
		{"", Some(5), "5"},
	}

	for _, typ := range types {
		for _, groupIndex := range []int{0, 1, 99999, 100000} {
			for _, number := range []int{0, 1, 15} {
				for _, sfx := range suffixes {
					id := ChannelIdentifier{
						GroupIndex: groupIndex,
						Type:       typ,
						Number:     number,
						Suffix:     sfx.suffix,
						TTLBit:     sfx.bit,
					}
					require.NoError(t, id.Validate())

					got, ok := ParseChannelName(id.Name())
					require.True(t, ok, id.Name())
					want := id
					want.Suffix = sfx.decoded
					assert.Equal(t, want, got, id.Name())
					assert.Equal(t, id.Name(), got.Name())
				}
			}
		}
	}
}

func TestChannelIdentifier_Validate(t *testing.T) {
	tests := []struct {
		name string
		id   ChannelIdentifier
	}{
		{"unknown type", ChannelIdentifier{Number: 1}},
		{"negative number", ChannelIdentifier{Type: ChannelTypeADC, Number: -1}},
		{"negative group", ChannelIdentifier{Type: ChannelTypeADC, GroupIndex: -1}},
		{"bad suffix", ChannelIdentifier{Type: ChannelTypeADC, Suffix: "a_b"}},
		{"negative bit", ChannelIdentifier{Type: ChannelTypeTTL, TTLBit: Some(-1)}},
		{"bit disagrees", ChannelIdentifier{Type: ChannelTypeTTL, Suffix: "3", TTLBit: Some(4)}},
		{"bit with word suffix", ChannelIdentifier{Type: ChannelTypeTTL, Suffix: "raw", TTLBit: Some(4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.id.Validate(), ErrInvalidChannel)
		})
	}
}

func TestChannelType(t *testing.T) {
	assert.Equal(t, ChannelTypeADC, ChannelTypeFromCode("AD"))
	assert.Equal(t, ChannelTypeADC, ChannelTypeFromCode("ad"))
	assert.Equal(t, ChannelTypeDAC, ChannelTypeFromCode("Da"))
	assert.Equal(t, ChannelTypeTTL, ChannelTypeFromCode("ttl"))
	assert.Equal(t, ChannelTypeOther, ChannelTypeFromCode("XY"))
	assert.Equal(t, ChannelTypeOther, ChannelTypeFromCode(""))

	assert.Equal(t, "ADC", ChannelTypeADC.String())
	assert.Equal(t, "OTHER", ChannelTypeOther.String())
	assert.Equal(t, "UNKNOWN", ChannelTypeUnknown.String())
	assert.Equal(t, "", ChannelTypeUnknown.Code())
	assert.Equal(t, ChannelTypeOther, ChannelTypeFromCode(ChannelTypeOther.Code()))
}
