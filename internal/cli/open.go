package cli

import (
	"path/filepath"
	"strings"

	"github.com/scigolib/nwb/store"
	"github.com/scigolib/nwb/store/h5store"
	"github.com/scigolib/nwb/store/memstore"
)

// container is an opened file.
type container interface {
	store.Reader
	Close() error
}

// openContainer opens YAML snapshots in memory and everything else as HDF5.
func openContainer(path string) (container, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		s, err := memstore.LoadYAMLFile(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := h5store.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
