package nwb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/nwb/store/memstore"
)

func loadSession(t *testing.T, name string) *memstore.Store {
	t.Helper()
	s, err := memstore.LoadYAMLFile("testdata/" + name)
	require.NoError(t, err)
	return s
}

func TestReadTopLevelInfo(t *testing.T) {
	s := loadSession(t, "valid_session.yaml")

	info, err := ReadTopLevelInfo(s)
	require.NoError(t, err)
	assert.Equal(t, Some("Whole-cell patch clamp"), info.SessionDescription)
	assert.Equal(t, Some("NWB-1.0.5"), info.NWBVersion)
	assert.Equal(t, Some("6f1c2f9e-1f5a-4c55-9d77-0e2b8a8f3b21"), info.Identifier)
	assert.Equal(t, []string{"2017-06-27T16:01:00Z"}, info.FileCreateDate)

	start, ok := info.SessionStartTime.Get()
	require.True(t, ok)
	want := time.Date(2017, 6, 27, 15, 34, 12, 500_000_000, time.UTC)
	assert.InDelta(t, TimeTimestamp(want), start, 1e-6)
}

func TestReadTopLevelInfo_Absent(t *testing.T) {
	s := memstore.New()
	require.NoError(t, s.WriteTextDataset("/session_start_time", []string{"yesterday"}))
	require.NoError(t, s.WriteTextDataset("/identifier", []string{Placeholder}))

	info, err := ReadTopLevelInfo(s)
	require.NoError(t, err)
	assert.Equal(t, TopLevelInfo{}, info)
}

func TestReadGeneralInfo(t *testing.T) {
	s := loadSession(t, "valid_session.yaml")

	info, err := ReadGeneralInfo(s)
	require.NoError(t, err)
	assert.Equal(t, GeneralInfo{
		SessionID:    Some("sess-17"),
		Experimenter: Some("A. Researcher"),
		Institution:  Some("Allen Institute"),
	}, info)
}

func TestReadSubjectInfo(t *testing.T) {
	s := loadSession(t, "valid_session.yaml")

	info, err := ReadSubjectInfo(s)
	require.NoError(t, err)
	assert.Equal(t, SubjectInfo{
		SubjectID: Some("mouse-42"),
		Species:   Some("Mus musculus"),
		Age:       Some("P56"),
	}, info)
}

func TestReadInfo_UnexpectedRows(t *testing.T) {
	s := memstore.New()
	require.NoError(t, s.WriteTextDataset("/general/notes", []string{"a", "b"}))
	_, err := ReadGeneralInfo(s)
	require.ErrorIs(t, err, ErrUnexpectedRows)

	s = memstore.New()
	require.NoError(t, s.WriteTextDataset("/general/subject/sex", []string{"F", "M"}))
	_, err = ReadSubjectInfo(s)
	require.ErrorIs(t, err, ErrUnexpectedRows)
}

func TestReadInfo_WrongType(t *testing.T) {
	s := memstore.New()
	require.NoError(t, s.WriteNumericDataset("/session_description", []float64{1}))

	_, err := ReadTopLevelInfo(s)
	require.Error(t, err)
}

func TestWriteInfo_RoundTrip(t *testing.T) {
	s := memstore.New()

	top := TopLevelInfo{
		SessionDescription: Some("round trip"),
		NWBVersion:         Some(NWBVersion),
		SessionStartTime:   Some(1498577652.25),
		FileCreateDate:     []string{"2017-06-27T16:01:00Z"},
	}
	general := GeneralInfo{
		Experimenter: Some("B. Researcher"),
		Notes:        Some("first cell"),
		Lab:          Some(Placeholder),
	}
	subject := SubjectInfo{
		Sex:    Some("F"),
		Weight: Some("21 g"),
	}

	require.NoError(t, WriteTopLevelInfo(s, top))
	require.NoError(t, WriteGeneralInfo(s, general))
	require.NoError(t, WriteSubjectInfo(s, subject))

	// Unset and placeholder fields are not written at all.
	assert.False(t, s.DatasetExists("/identifier"))
	assert.False(t, s.DatasetExists("/general/lab"))
	assert.False(t, s.DatasetExists("/general/subject/age"))
	assert.True(t, s.IsChunked("/file_create_date"))

	gotTop, err := ReadTopLevelInfo(s)
	require.NoError(t, err)
	assert.Equal(t, top, gotTop)

	gotGeneral, err := ReadGeneralInfo(s)
	require.NoError(t, err)
	general.Lab = None[string]()
	assert.Equal(t, general, gotGeneral)

	gotSubject, err := ReadSubjectInfo(s)
	require.NoError(t, err)
	assert.Equal(t, subject, gotSubject)
}

func TestAddModificationTimeEntry(t *testing.T) {
	s := memstore.New()
	require.NoError(t, WriteTopLevelInfo(s, TopLevelInfo{FileCreateDate: []string{"2017-06-27T16:01:00Z"}}))

	modified := time.Date(2018, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, AddModificationTimeEntry(s, modified))

	info, err := ReadTopLevelInfo(s)
	require.NoError(t, err)
	require.Len(t, info.FileCreateDate, 2)
	assert.Equal(t, "2017-06-27T16:01:00Z", info.FileCreateDate[0])

	secs, ok := ParseTimestamp(info.FileCreateDate[1])
	require.True(t, ok)
	assert.InDelta(t, TimeTimestamp(modified), secs, 1e-6)
}

func TestAddModificationTimeEntry_NotChunked(t *testing.T) {
	s := memstore.New()
	require.NoError(t, s.WriteTextDataset("/file_create_date", []string{"2017-06-27T16:01:00Z"}))

	require.Error(t, AddModificationTimeEntry(s, time.Now()))
}

func TestInfoFields(t *testing.T) {
	s := loadSession(t, "valid_session.yaml")

	top, err := ReadTopLevelInfo(s)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"session_description": "Whole-cell patch clamp",
		"nwb_version":         "NWB-1.0.5",
		"identifier":          "6f1c2f9e-1f5a-4c55-9d77-0e2b8a8f3b21",
		"session_start_time":  "2017-06-27T15:34:12.5Z",
		"file_create_date":    "2017-06-27T16:01:00Z",
	}, top.Fields(1))

	subject, err := ReadSubjectInfo(s)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"subject_id": "mouse-42",
		"species":    "Mus musculus",
		"age":        "P56",
	}, subject.Fields())

	assert.Empty(t, GeneralInfo{}.Fields())
}
