// Package store defines the hierarchical container capability set the NWB
// mapping is written against: groups, typed datasets and string attributes
// addressed by slash separated paths.
//
// Two implementations ship with the module. memstore keeps a container in
// memory and can load and dump YAML snapshots; h5store reads real HDF5 files.
package store

import "errors"

// Sentinel errors returned by store implementations. Callers branch on them
// with errors.Is; implementations wrap them with the offending path.
var (
	// ErrNotFound reports that no object exists at a path.
	ErrNotFound = errors.New("object not found")
	// ErrNotText reports a dataset or attribute that does not hold strings.
	ErrNotText = errors.New("value is not text")
	// ErrNotNumeric reports a dataset that does not hold numbers.
	ErrNotNumeric = errors.New("value is not numeric")
	// ErrNotGroup reports a path that resolves to a dataset where a group is required.
	ErrNotGroup = errors.New("object is not a group")
	// ErrExists reports a write to a path that is already taken by another kind of object.
	ErrExists = errors.New("object already exists")
	// ErrClosed reports use of a closed container or group handle.
	ErrClosed = errors.New("handle closed")
	// ErrUnsupported reports a value stored in an encoding the implementation
	// cannot decode, such as variable-length strings in h5store. Text values
	// fail with both ErrUnsupported and ErrNotText.
	ErrUnsupported = errors.New("unsupported value encoding")
)

// Reader is the read side of a hierarchical container.
//
// Paths starting with "/" resolve against the container root. Other paths
// resolve against the root of the handle they are passed to, so a Group
// opened at "/acquisition/timeseries" resolves "data_00000_AD0/data" below it.
type Reader interface {
	// GroupExists reports whether path names a group.
	GroupExists(path string) bool
	// DatasetExists reports whether path names a dataset.
	DatasetExists(path string) bool
	// ListGroups returns the names of the child groups of path in link order.
	ListGroups(path string) ([]string, error)
	// ListMembers returns the names of all children (groups and datasets) of path.
	ListMembers(path string) ([]string, error)
	// LoadTextDataset returns every row of a text dataset.
	LoadTextDataset(path string) ([]string, error)
	// LoadNumericDataset returns the values of a numeric dataset.
	LoadNumericDataset(path string) ([]float64, error)
	// ListAttributes returns the attribute names of the object at path.
	ListAttributes(path string) ([]string, error)
	// LoadTextAttribute returns the strings stored in the attribute name of the object at path.
	LoadTextAttribute(path, name string) ([]string, error)
	// LoadNumericAttribute returns the numbers stored in the attribute name of the object at path.
	LoadNumericAttribute(path, name string) ([]float64, error)
	// OpenGroup acquires a handle rooted at the group path. The handle must be closed.
	OpenGroup(path string) (Group, error)
}

// Group is a scoped handle on one group of a container.
type Group interface {
	Reader
	// Path returns the absolute path of the group.
	Path() string
	// Close releases the handle. Closing twice is not an error.
	Close() error
}

// Writer is the write side of a hierarchical container.
type Writer interface {
	// CreateGroup creates the group at path together with missing parents.
	// Creating an existing group is not an error.
	CreateGroup(path string) error
	// WriteTextDataset creates or replaces a text dataset.
	WriteTextDataset(path string, values []string, opts ...WriteOption) error
	// AppendTextDataset adds rows to a chunked text dataset, creating it when absent.
	AppendTextDataset(path string, values ...string) error
	// WriteNumericDataset creates or replaces a numeric dataset.
	WriteNumericDataset(path string, values []float64, opts ...WriteOption) error
	// WriteTextAttribute sets a string attribute on the object at path.
	WriteTextAttribute(path, name string, values ...string) error
	// WriteNumericAttribute sets a numeric attribute on the object at path.
	WriteNumericAttribute(path, name string, values ...float64) error
}

// ReadWriter is a container that can be both read and written.
type ReadWriter interface {
	Reader
	Writer
}

// WriteOption configures a dataset write.
type WriteOption func(*WriteConfig)

// WriteConfig collects the effect of WriteOptions.
type WriteConfig struct {
	// Chunked marks a dataset as extendible so rows can be appended later.
	Chunked bool
}

// Chunked requests an extendible (chunked) dataset layout.
func Chunked() WriteOption {
	return func(c *WriteConfig) {
		c.Chunked = true
	}
}

// ApplyWriteOptions folds opts into a WriteConfig.
func ApplyWriteOptions(opts ...WriteOption) WriteConfig {
	var cfg WriteConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
