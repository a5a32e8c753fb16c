package nwb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/nwb/store/memstore"
)

func TestMajorVersion(t *testing.T) {
	tests := []struct {
		version string
		major   int
		ok      bool
	}{
		{"NWB-1.0.5", 1, true},
		{"NWB-1.0.2", 1, true},
		{"nwb-1.0.5", 1, true},
		{"2.2.4", 2, true},
		{"2.0b", 2, true},
		{"1", 1, true},
		{"10.1", 10, true},
		{"", 0, false},
		{"NWB-", 0, false},
		{"v1.0", 0, false},
		{"1abc", 0, false},
		{"NWB 1.0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			major, ok := MajorVersion(tt.version)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.major, major)
		})
	}
}

func TestReadNWBVersion(t *testing.T) {
	t.Run("v1 dataset", func(t *testing.T) {
		s := memstore.New()
		require.NoError(t, s.WriteTextDataset("/nwb_version", []string{"NWB-1.0.5"}))

		v, err := ReadNWBVersion(s)
		require.NoError(t, err)
		assert.Equal(t, Some("NWB-1.0.5"), v)
	})

	t.Run("v2 attribute", func(t *testing.T) {
		s := memstore.New()
		require.NoError(t, s.WriteTextAttribute("/", "nwb_version", "2.2.4"))

		v, err := ReadNWBVersion(s)
		require.NoError(t, err)
		assert.Equal(t, Some("2.2.4"), v)
	})

	t.Run("dataset wins", func(t *testing.T) {
		s := memstore.New()
		require.NoError(t, s.WriteTextDataset("/nwb_version", []string{"NWB-1.0.5"}))
		require.NoError(t, s.WriteTextAttribute("/", "nwb_version", "2.2.4"))

		v, err := ReadNWBVersion(s)
		require.NoError(t, err)
		assert.Equal(t, Some("NWB-1.0.5"), v)
	})

	t.Run("absent", func(t *testing.T) {
		v, err := ReadNWBVersion(memstore.New())
		require.NoError(t, err)
		assert.False(t, v.IsSet())
	})

	t.Run("numeric attribute", func(t *testing.T) {
		s := memstore.New()
		require.NoError(t, s.WriteNumericAttribute("/", "nwb_version", 2))

		_, err := ReadNWBVersion(s)
		require.Error(t, err)
	})
}
