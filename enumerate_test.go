package nwb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/nwb/store/memstore"
)

func TestRemovePrefixFromListItems(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, RemovePrefixFromListItems("device_", []string{"device_1", "device_2"}))
	assert.Equal(t, []string{"1", "other"}, RemovePrefixFromListItems("device_", []string{"device_1", "other"}))
	assert.Equal(t, []string{"", "x_device_1"}, RemovePrefixFromListItems("device_", []string{"device_", "x_device_1"}))
	assert.Empty(t, RemovePrefixFromListItems("device_", nil))
}

func TestListSession(t *testing.T) {
	s := loadSession(t, "valid_session.yaml")

	devices, err := ListDevices(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"ITC18USB_Dev_0"}, devices)

	electrodes, err := ListElectrodes(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, electrodes)

	acquisition, err := ListAcquisition(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"data_00000_AD0"}, acquisition)

	stimulus, err := ListStimulus(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"data_00000_DA0", "data_00000_TTL1_3"}, stimulus)

	notebooks, err := ListLabNotebooks(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"ITC18USB_Dev_0"}, notebooks)

	stimsets, err := ListStimsets(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"StimulusSetA_DA_0"}, stimsets)
}

func TestList_AbsentBranches(t *testing.T) {
	s := memstore.New()

	for name, list := range map[string]func() ([]string, error){
		"devices":     func() ([]string, error) { return ListDevices(s) },
		"electrodes":  func() ([]string, error) { return ListElectrodes(s) },
		"acquisition": func() ([]string, error) { return ListAcquisition(s) },
		"stimulus":    func() ([]string, error) { return ListStimulus(s) },
		"labnotebook": func() ([]string, error) { return ListLabNotebooks(s) },
		"stimsets":    func() ([]string, error) { return ListStimsets(s) },
	} {
		t.Run(name, func(t *testing.T) {
			names, err := list()
			require.NoError(t, err)
			assert.NotNil(t, names)
			assert.Empty(t, names)
		})
	}
}

func TestListAcquisition_GroupsOnly(t *testing.T) {
	s := memstore.New()
	require.NoError(t, s.CreateGroup(PathAcquisition+"/data_00000_AD0"))
	require.NoError(t, s.WriteTextDataset(PathAcquisition+"/stray", []string{"x"}))

	names, err := ListAcquisition(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"data_00000_AD0"}, names)
}
