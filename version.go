package nwb

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/scigolib/nwb/internal/utils"
	"github.com/scigolib/nwb/store"
)

// NWBVersion is the format version written by this package.
const NWBVersion = "NWB-1.0.5"

// SupportedMajorVersion is the newest major format version that can be read.
const SupportedMajorVersion = 1

// versionRegexp accepts "NWB-1.0.5" (v1 style), "2.2.4" and pre-releases
// like "2.0b" (v2 style).
var versionRegexp = regexp.MustCompile(`^(?i:NWB-)?([0-9]+)(?:\.[0-9]+[a-z]*)*$`)

// ReadNWBVersion returns the format version of a container. Version 1 files
// store it as the /nwb_version dataset, version 2 files as the root
// attribute of the same name.
func ReadNWBVersion(r store.Reader) (Optional[string], error) {
	v, err := readTextField(r, "/"+datasetNWBVersion)
	if err != nil || v.IsSet() {
		return v, err
	}

	values, err := r.LoadTextAttribute("/", datasetNWBVersion)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return None[string](), nil
	case err != nil:
		return None[string](), utils.WrapError("read version attribute", err)
	case len(values) == 0:
		return None[string](), nil
	}
	return textField(values[0]), nil
}

// MajorVersion extracts the major version number of a version string.
func MajorVersion(version string) (int, bool) {
	m := versionRegexp.FindStringSubmatch(version)
	if m == nil {
		return 0, false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return major, true
}
