package nwb

import (
	"strings"

	"github.com/scigolib/nwb/internal/utils"
	"github.com/scigolib/nwb/store"
)

// DevicePrefix prefixes every entry below /general/devices.
const DevicePrefix = "device_"

// ElectrodePrefix prefixes every group below /general/intracellular_ephys.
const ElectrodePrefix = "electrode_"

// RemovePrefixFromListItems strips prefix from every item that carries it.
// Items without the prefix are returned unchanged.
func RemovePrefixFromListItems(prefix string, items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimPrefix(item, prefix)
	}
	return out
}

// listBranch lists the children of p, groups only unless members is set.
// A missing branch lists as empty.
func listBranch(r store.Reader, p string, members bool) ([]string, error) {
	if !r.GroupExists(p) {
		return []string{}, nil
	}

	var (
		names []string
		err   error
	)
	if members {
		names, err = r.ListMembers(p)
	} else {
		names, err = r.ListGroups(p)
	}
	if err != nil {
		return nil, utils.WrapPathError("list", p, err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// ListDevices returns the device names below /general/devices with
// DevicePrefix removed. Devices are stored as datasets, so every member counts.
func ListDevices(r store.Reader) ([]string, error) {
	names, err := listBranch(r, PathDevices, true)
	if err != nil {
		return nil, err
	}
	return RemovePrefixFromListItems(DevicePrefix, names), nil
}

// ListElectrodes returns the electrode names below
// /general/intracellular_ephys with ElectrodePrefix removed.
func ListElectrodes(r store.Reader) ([]string, error) {
	names, err := listBranch(r, PathIntracellularEphys, false)
	if err != nil {
		return nil, err
	}
	return RemovePrefixFromListItems(ElectrodePrefix, names), nil
}

// ListAcquisition returns the channel groups below /acquisition/timeseries.
func ListAcquisition(r store.Reader) ([]string, error) {
	return listBranch(r, PathAcquisition, false)
}

// ListStimulus returns the channel groups below /stimulus/presentation.
func ListStimulus(r store.Reader) ([]string, error) {
	return listBranch(r, PathStimulus, false)
}

// ListLabNotebooks returns the per device lab notebook groups.
func ListLabNotebooks(r store.Reader) ([]string, error) {
	return listBranch(r, PathLabNotebook, false)
}

// ListStimsets returns the entries below /general/stimsets. Containers
// written without stimulus sets have no such group and list as empty.
func ListStimsets(r store.Reader) ([]string, error) {
	return listBranch(r, PathStimsets, true)
}
