package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/nwb/store/memstore"
)

func TestDump_RoundTrip(t *testing.T) {
	out, _, err := execute(t, "dump", validSession)
	require.NoError(t, err)

	original, err := memstore.LoadYAMLFile(validSession)
	require.NoError(t, err)
	want := &bytes.Buffer{}
	require.NoError(t, original.DumpYAML(want))
	assert.Equal(t, want.String(), out)

	reloaded, err := memstore.LoadYAML(strings.NewReader(out))
	require.NoError(t, err)
	assert.True(t, reloaded.IsChunked("/file_create_date"))
}

func TestDump_HDF5(t *testing.T) {
	out, _, err := execute(t, "dump", hdf5Session)
	require.NoError(t, err)

	reloaded, err := memstore.LoadYAML(strings.NewReader(out))
	require.NoError(t, err)

	version, err := reloaded.LoadTextDataset("/nwb_version")
	require.NoError(t, err)
	assert.Equal(t, []string{"NWB-1.0.5"}, version)

	source, err := reloaded.LoadTextAttribute("/stimulus/presentation/data_00000_TTL1_3", "source")
	require.NoError(t, err)
	assert.Equal(t, []string{"Device=ITC18USB_Dev_0;Sweep=0;TTL=1;TTLBit=3"}, source)

	data, err := reloaded.LoadNumericDataset("/stimulus/presentation/data_00000_DA0/data")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 100, 0}, data)
	assert.True(t, reloaded.GroupExists("/general/labnotebook/ITC18USB_Dev_0"))
}

func TestDump_MissingFile(t *testing.T) {
	_, _, err := execute(t, "dump", "absent.nwb")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
