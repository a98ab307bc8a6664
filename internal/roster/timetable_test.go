package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTimetable = `Period,09:00,10:00,11:20
End,10:00,11:00,12:20
MON,MATHS,PHYSICS,BREAK
TUE,PHYSICS,MATHS,MATHS
WED,-,-,-
THU,-,-,-
FRI,-,-,-
SAT,-,-,-
MATHS,A Kumar
PHYSICS,B Reddy
`

func TestParseTimetable_BusyPeriodsPerTeacher(t *testing.T) {
	imp, err := ParseTimetable(strings.NewReader(sampleTimetable), "2", "CSE", "A")
	require.NoError(t, err)
	require.Len(t, imp.Teachers, 2)
	assert.Equal(t, 5, imp.PeriodsAdded)
	assert.Empty(t, imp.SkippedCells)

	kumar := imp.Teachers["A Kumar"]
	require.NotNil(t, kumar)
	assert.Equal(t, []string{"MATHS"}, kumar.SubjectList())
	require.Len(t, kumar.BusyPeriods, 3)
	assert.Equal(t, BusyPeriod{
		Year: "2", Branch: "CSE", Section: "A",
		Day: "MON", StartTime: "09:00", EndTime: "10:00", Subject: "MATHS",
	}, kumar.BusyPeriods[0])
	assert.Equal(t, "11:20", kumar.BusyPeriods[2].StartTime)

	reddy := imp.Teachers["B Reddy"]
	require.NotNil(t, reddy)
	require.Len(t, reddy.BusyPeriods, 2)
	assert.Equal(t, "TUE", reddy.BusyPeriods[1].Day)
}

func TestParseTimetable_UnmappedSubjectSkipped(t *testing.T) {
	csv := `Period,09:00
End,10:00
MON,CHEMISTRY
TUE,MATHS
WED,-
THU,-
FRI,-
SAT,-
MATHS,A Kumar
`
	imp, err := ParseTimetable(strings.NewReader(csv), "2", "CSE", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"CHEMISTRY"}, imp.SkippedCells)
	assert.Equal(t, 1, imp.PeriodsAdded)
}

func TestParseTimetable_LabVariantResolves(t *testing.T) {
	csv := `Period,09:00
End,10:00
MON,PHYSICS
TUE,-
WED,-
THU,-
FRI,-
SAT,-
PHYSICS LAB,B Reddy
`
	imp, err := ParseTimetable(strings.NewReader(csv), "2", "CSE", "A")
	require.NoError(t, err)
	require.NotNil(t, imp.Teachers["B Reddy"])
	assert.Empty(t, imp.SkippedCells)
}

func TestParseTimetable_MappingAboveDayBlock(t *testing.T) {
	// Some uploads list subject/teacher rows before the day rows.
	csv := `Period,09:00
End,10:00
MATHS,A Kumar
MON,MATHS
TUE,-
WED,-
THU,-
FRI,-
SAT,-
`
	imp, err := ParseTimetable(strings.NewReader(csv), "2", "CSE", "A")
	require.NoError(t, err)
	require.NotNil(t, imp.Teachers["A Kumar"])
	assert.Equal(t, 1, imp.PeriodsAdded)
}

func TestParseTimetable_TooShort(t *testing.T) {
	_, err := ParseTimetable(strings.NewReader("a,b\n"), "2", "CSE", "A")
	assert.ErrorIs(t, err, ErrTimetableTooShort)
}

func TestParseTimetable_NoDayRows(t *testing.T) {
	csv := `Period,09:00
End,10:00
MATHS,A Kumar
`
	_, err := ParseTimetable(strings.NewReader(csv), "2", "CSE", "A")
	assert.ErrorIs(t, err, ErrNoDayRows)
}

func TestParseTimetable_NoTeacherNames(t *testing.T) {
	csv := `Period,09:00
End,10:00
MON,MATHS
`
	_, err := ParseTimetable(strings.NewReader(csv), "2", "CSE", "A")
	assert.ErrorIs(t, err, ErrNoTeacherNames)
}
