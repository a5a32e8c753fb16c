package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_ValidText(t *testing.T) {
	out, _, err := execute(t, "list", validSession)
	require.NoError(t, err)
	assertGolden(t, "list_valid", out)
}

func TestList_CorruptJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "list", corruptSession)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   listResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []string{"DeviceA"}, resp.Data.Devices)
	assert.Equal(t, []string{"DeviceA", "DeviceB"}, resp.Data.LabNotebooks)
	assert.Empty(t, resp.Data.Electrodes)
	assert.Empty(t, resp.Data.Stimsets)

	require.Len(t, resp.Data.Branches, 2)
	acq := resp.Data.Branches[0]
	assert.Equal(t, "/acquisition/timeseries", acq.Path)
	require.Len(t, acq.Channels, 4)
	// The mismatching channel is listed with the channel its source names.
	assert.Equal(t, "data_00001_AD3", acq.Channels[0].Name)
	assert.Equal(t, "AD4", acq.Channels[0].Channel)
	// No data dataset, so no unit either.
	assert.Empty(t, acq.Channels[2].Unit)
	assert.Nil(t, acq.Channels[2].Conversion)
	// A group without source attribute is reported, not fatal.
	assert.Equal(t, "notes", acq.Channels[3].Name)
	assert.NotEmpty(t, acq.Channels[3].Error)

	stim := resp.Data.Branches[1]
	require.Len(t, stim.Channels, 3)
	assert.Contains(t, stim.Channels[1].Error, "mandatory attribute missing")
	assert.Equal(t, "DA7", stim.Channels[2].Channel)
}

func TestFormatChannel(t *testing.T) {
	sweep := 2
	conversion := 0.001
	assert.Equal(t, "data_00002_AD1 AD1 sweep=2 unit=V conversion=0.001", formatChannel(channelSummary{
		Name: "data_00002_AD1", Channel: "AD1", Sweep: &sweep, Unit: "V", Conversion: &conversion,
	}))
	assert.Equal(t, "notes error: boom", formatChannel(channelSummary{Name: "notes", Error: "boom"}))
	assert.Equal(t, "data_00002_AD1 -", formatChannel(channelSummary{Name: "data_00002_AD1", Channel: "-"}))
}
