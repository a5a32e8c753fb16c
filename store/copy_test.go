package store_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/nwb/store"
	"github.com/scigolib/nwb/store/memstore"
)

func TestCopy(t *testing.T) {
	src := memstore.New()
	require.NoError(t, src.WriteTextAttribute("/", "nwb_version", "2.2.4"))
	require.NoError(t, src.WriteTextDataset("/file_create_date", []string{"2020-01-02T03:04:05Z"}, store.Chunked()))
	require.NoError(t, src.CreateGroup("/general/labnotebook/Dev1"))
	require.NoError(t, src.WriteNumericDataset("/acquisition/timeseries/data_00000_AD0/data", []float64{1, 2}))
	require.NoError(t, src.WriteTextAttribute("/acquisition/timeseries/data_00000_AD0", "source", "AD=0"))
	require.NoError(t, src.WriteNumericAttribute("/acquisition/timeseries/data_00000_AD0/data", "conversion", 0.001))

	dst := memstore.New()
	require.NoError(t, store.Copy(dst, src))

	var want, got bytes.Buffer
	require.NoError(t, src.DumpYAML(&want))
	require.NoError(t, dst.DumpYAML(&got))
	assert.Equal(t, want.String(), got.String())
	assert.True(t, dst.IsChunked("/file_create_date"))
	assert.True(t, dst.GroupExists("/general/labnotebook/Dev1"))
}

func TestCopy_ClosedSource(t *testing.T) {
	src := memstore.New()
	require.NoError(t, src.Close())

	require.ErrorIs(t, store.Copy(memstore.New(), src), store.ErrClosed)
}

// undecodable fails every text dataset read the way h5store does for
// variable-length strings.
type undecodable struct{ *memstore.Store }

func (undecodable) LoadTextDataset(string) ([]string, error) {
	return nil, fmt.Errorf("%w: %w", store.ErrUnsupported, store.ErrNotText)
}

func TestCopy_UnsupportedEncoding(t *testing.T) {
	src := memstore.New()
	require.NoError(t, src.WriteTextDataset("/nwb_version", []string{"NWB-1.0.5"}))

	err := store.Copy(memstore.New(), undecodable{src})
	require.ErrorIs(t, err, store.ErrUnsupported)
	require.NotErrorIs(t, err, store.ErrNotNumeric)
}
