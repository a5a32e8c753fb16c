package nwb

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scigolib/nwb/internal/utils"
	"github.com/scigolib/nwb/store"
)

// commonGroups are created in every container, in this order.
var commonGroups = []string{
	PathAcquisition,
	"/analysis",
	"/epochs",
	PathGeneral,
	PathDevices,
	PathIntracellularEphys,
	PathLabNotebook,
	PathSubject,
	"/processing",
	PathStimulus,
	PathStimulusTemplate,
}

// ElectrodeInfo describes an intracellular electrode.
type ElectrodeInfo struct {
	Description Optional[string]
	// Device is the name of the amplifier the electrode is connected to.
	Device Optional[string]
}

// NewTopLevelInfo returns the top-level fields of a new container: a random
// identifier, the current format version and a creation date of now.
func NewTopLevelInfo(description string, start time.Time) TopLevelInfo {
	now := TimeTimestamp(time.Now())
	return TopLevelInfo{
		SessionDescription: textField(description),
		NWBVersion:         Some(NWBVersion),
		Identifier:         Some(uuid.NewString()),
		SessionStartTime:   Some(TimeTimestamp(start)),
		FileCreateDate:     []string{FormatTimestamp(now, DefaultTimestampDigits)},
	}
}

// CreateCommonGroups creates the fixed group layout and writes info to the
// container root.
func CreateCommonGroups(w store.Writer, info TopLevelInfo) error {
	for _, g := range commonGroups {
		if err := w.CreateGroup(g); err != nil {
			return utils.WrapPathError("create common group", g, err)
		}
	}
	return WriteTopLevelInfo(w, info)
}

func checkName(kind, name string) error {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return fmt.Errorf("%w: %s %q", ErrInvalidName, kind, name)
	}
	return nil
}

// AddDevice writes the device dataset /general/devices/device_<name>.
func AddDevice(w store.Writer, name, description string) error {
	if err := checkName("device", name); err != nil {
		return err
	}
	p := store.JoinPath(PathDevices, DevicePrefix+name)
	return utils.WrapPathError("add device", p, w.WriteTextDataset(p, []string{description}))
}

// AddElectrode creates /general/intracellular_ephys/electrode_<name> and
// writes the set fields of e into it.
func AddElectrode(w store.Writer, name string, e ElectrodeInfo) error {
	if err := checkName("electrode", name); err != nil {
		return err
	}
	p := store.JoinPath(PathIntracellularEphys, ElectrodePrefix+name)
	if err := w.CreateGroup(p); err != nil {
		return utils.WrapPathError("add electrode", p, err)
	}
	if err := writeTextField(w, store.JoinPath(p, "description"), e.Description); err != nil {
		return err
	}
	return writeTextField(w, store.JoinPath(p, "device"), e.Device)
}

// AddLabNotebook creates the lab notebook group of device. Every device
// needs one for the container to pass CheckIntegrity.
func AddLabNotebook(w store.Writer, device string) error {
	if err := checkName("lab notebook", device); err != nil {
		return err
	}
	p := store.JoinPath(PathLabNotebook, device)
	return utils.WrapPathError("add lab notebook", p, w.CreateGroup(p))
}

// AddStimset writes a stimulus set description below /general/stimsets.
func AddStimset(w store.Writer, name string, lines []string) error {
	if err := checkName("stimset", name); err != nil {
		return err
	}
	p := store.JoinPath(PathStimsets, name)
	return utils.WrapPathError("add stimset", p, w.WriteTextDataset(p, lines))
}
