// Package nwb maps intracellular electrophysiology sessions to and from the
// Neurodata Without Borders (NWB) v1 container layout.
//
// The package is organized in layers:
//   - codecs: units with SI prefixes (ParseUnit), ISO 8601 timestamps
//     (FormatTimestamp, ParseTimestamp), channel names (ParseChannelName,
//     ChannelIdentifier.Name) and the packed "source" provenance attribute
//     (ParseProvenance, ProvenanceRecord.String)
//   - the schema walker, which reads and writes the fixed top-level, general
//     and subject field sets and enumerates devices, channels, lab notebooks
//     and stimulus sets
//   - the session writer (CreateCommonGroups, AddDevice, WriteChannel)
//   - the integrity validator (CheckIntegrity), which cross-checks every
//     channel's name against its provenance record
//
// All I/O goes through the store package, so a container can be an HDF5
// file (store/h5store) or an in-memory tree (store/memstore).
//
// Example:
//
//	s, err := h5store.Open("session.nwb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	report, err := nwb.CheckIntegrity(s)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report)
package nwb
