package nwb

import "errors"

// Hard failures. Soft failures (a foreign channel name, an unparsable
// timestamp, an absent optional field) are reported through boolean results
// and unset Optionals instead.
var (
	// ErrMissingAttribute reports an absent mandatory attribute such as a channel's "source".
	ErrMissingAttribute = errors.New("mandatory attribute missing")
	// ErrNotText reports a mandatory attribute that is not stored as text.
	ErrNotText = errors.New("attribute is not text")
	// ErrMalformedProvenance reports a source entry whose value cannot be decoded.
	ErrMalformedProvenance = errors.New("malformed provenance entry")
	// ErrMalformedUnit reports a unit string outside the prefix/base-unit grammar.
	ErrMalformedUnit = errors.New("malformed unit")
	// ErrUnknownPrefix reports an SI prefix missing from the prefix table.
	ErrUnknownPrefix = errors.New("unknown SI prefix")
	// ErrUnexpectedRows reports a scalar dataset holding more than one row.
	ErrUnexpectedRows = errors.New("dataset holds more than one row")
	// ErrUnsupportedVersion reports a container written by a newer major format version.
	ErrUnsupportedVersion = errors.New("unsupported NWB version")
	// ErrInvalidChannel reports channel data that cannot be named or written.
	ErrInvalidChannel = errors.New("invalid channel")
	// ErrInvalidName reports a device, electrode or notebook name that cannot be used as a path component.
	ErrInvalidName = errors.New("invalid object name")
	// ErrInconsistentChannel reports a channel name that disagrees with its provenance record.
	ErrInconsistentChannel = errors.New("channel name and provenance disagree")
)
