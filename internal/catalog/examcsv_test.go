package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExamTimetable_OneExamPerPopulatedCell(t *testing.T) {
	csv := `Branch,02-03-2026,04-03-2026
CSE,DBMS,OS
ECE,,SIGNALS
`
	exams, err := ParseExamTimetable(strings.NewReader(csv), "Mid-1", 2, "10:00-13:00")
	require.NoError(t, err)
	require.Len(t, exams, 3)

	assert.Equal(t, Exam{
		ExamType: "Mid-1", ExamYear: 2,
		ExamDate: "02-03-2026", ExamTime: "10:00-13:00",
		Branch: "CSE", Subject: "DBMS",
	}, exams[0])
	assert.Equal(t, "ECE", exams[2].Branch)
	assert.Equal(t, "04-03-2026", exams[2].ExamDate)
}

func TestParseExamTimetable_BranchColumnAnywhere(t *testing.T) {
	csv := `02-03-2026,Branch
DBMS,CSE
`
	exams, err := ParseExamTimetable(strings.NewReader(csv), "Mid-1", 2, "10:00-13:00")
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "CSE", exams[0].Branch)
	assert.Equal(t, "DBMS", exams[0].Subject)
}

func TestParseExamTimetable_BlankBranchRowsSkipped(t *testing.T) {
	csv := `Branch,02-03-2026
,DBMS
CSE,OS
`
	exams, err := ParseExamTimetable(strings.NewReader(csv), "Mid-1", 2, "10:00-13:00")
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "OS", exams[0].Subject)
}

func TestParseExamTimetable_NoBranchColumn(t *testing.T) {
	csv := `Dept,02-03-2026
CSE,DBMS
`
	_, err := ParseExamTimetable(strings.NewReader(csv), "Mid-1", 2, "10:00-13:00")
	assert.ErrorIs(t, err, ErrNoBranchColumn)
}

func TestParseExamTimetable_NoRows(t *testing.T) {
	_, err := ParseExamTimetable(strings.NewReader("Branch,02-03-2026\n"), "Mid-1", 2, "10:00-13:00")
	assert.ErrorIs(t, err, ErrNoExamRows)

	_, err = ParseExamTimetable(strings.NewReader("Branch,02-03-2026\nCSE,\n"), "Mid-1", 2, "10:00-13:00")
	assert.ErrorIs(t, err, ErrNoExamRows)
}
