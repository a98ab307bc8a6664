package seating

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ExamSeatAllocator/internal/catalog"
	"ExamSeatAllocator/internal/roster"
)

// 02-03-2026 is a Monday.
const testExamDate = "02-03-2026"

func testExams(branches ...string) []catalog.Exam {
	exams := make([]catalog.Exam, 0, len(branches))
	for _, b := range branches {
		exams = append(exams, catalog.Exam{
			ExamType: "Mid-1",
			ExamYear: 2,
			ExamDate: testExamDate,
			ExamTime: "10:00-13:00",
			Branch:   b,
			Subject:  "Subject-" + b,
		})
	}
	return exams
}

func testBatch(branch, prefix string, count int) catalog.StudentBatch {
	return catalog.StudentBatch{
		Branch:           branch,
		Year:             2,
		RegularStartRoll: fmt.Sprintf("%s01", prefix),
		RegularEndRoll:   fmt.Sprintf("%s%02d", prefix, count),
	}
}

func testRoom(number string, rows, cols int) catalog.Room {
	return catalog.Room{
		BlockName:  "A Block",
		FloorNo:    1,
		RoomNumber: number,
		Rows:       rows,
		Columns:    cols,
		Capacity:   rows * cols,
	}
}

func testTeachers(count int) []roster.Teacher {
	teachers := make([]roster.Teacher, 0, count)
	for i := 1; i <= count; i++ {
		teachers = append(teachers, roster.Teacher{TeacherName: fmt.Sprintf("Teacher %d", i)})
	}
	return teachers
}

// collectRolls flattens every occupied seat of the plan into branch-tagged
// roll numbers.
func collectRolls(plan *SeatingPlan) []string {
	var rolls []string
	for i := range plan.Rooms {
		for _, row := range plan.Rooms[i].RawTable {
			for _, seat := range row {
				if seat != nil {
					rolls = append(rolls, seat.RollNo)
				}
			}
		}
	}
	return rolls
}

func TestBuildPlan_AlternatingColumnsAcrossTwoRooms(t *testing.T) {
	exams := testExams("CSE", "ECE")
	batches := []catalog.StudentBatch{
		testBatch("CSE", "22CS01", 10),
		testBatch("ECE", "22EC01", 6),
	}
	rooms := []catalog.Room{testRoom("101", 4, 2), testRoom("102", 4, 2)}

	plan, report, err := BuildPlan(testExamDate, exams, batches, rooms, testTeachers(4))
	require.NoError(t, err)
	require.Len(t, plan.Rooms, 2)

	// Room 101: column 0 is CSE top to bottom, column 1 is ECE.
	r1 := plan.Rooms[0]
	for r := 0; r < 4; r++ {
		require.NotNil(t, r1.RawTable[r][0])
		require.NotNil(t, r1.RawTable[r][1])
		assert.Equal(t, "CSE", r1.RawTable[r][0].Branch)
		assert.Equal(t, "ECE", r1.RawTable[r][1].Branch)
	}
	assert.Equal(t, "22CS0101", r1.RawTable[0][0].RollNo)
	assert.Equal(t, "22CS0104", r1.RawTable[3][0].RollNo)
	assert.Equal(t, "22EC0101", r1.RawTable[0][1].RollNo)
	assert.True(t, r1.IsFull())

	// Room 102: four more CSE in column 0, the last two ECE at the top of
	// column 1, then the leftover CSE fill the empty cells row-major.
	r2 := plan.Rooms[1]
	assert.Equal(t, "22CS0105", r2.RawTable[0][0].RollNo)
	assert.Equal(t, "22EC0105", r2.RawTable[0][1].RollNo)
	assert.Equal(t, "22EC0106", r2.RawTable[1][1].RollNo)
	assert.Equal(t, "22CS0109", r2.RawTable[2][1].RollNo)
	assert.Equal(t, "22CS0110", r2.RawTable[3][1].RollNo)
	assert.True(t, r2.IsFull())

	assert.Equal(t, 16, report.Placed)
	assert.Equal(t, 0, report.Unseated)
	assert.Equal(t, 2, report.RoomsUsed)
	assert.Equal(t, 4, report.TeachersAssigned)
	assert.Empty(t, report.ShortfallRooms)
	assert.Empty(t, report.EmptyBatches)
}

func TestBuildPlan_NoDuplicateSeating(t *testing.T) {
	exams := testExams("CSE", "ECE", "MECH")
	batches := []catalog.StudentBatch{
		testBatch("CSE", "22CS01", 12),
		testBatch("ECE", "22EC01", 9),
		testBatch("MECH", "22ME01", 7),
	}
	rooms := []catalog.Room{testRoom("101", 4, 3), testRoom("102", 4, 3), testRoom("103", 4, 3)}

	plan, report, err := BuildPlan(testExamDate, exams, batches, rooms, testTeachers(6))
	require.NoError(t, err)

	rolls := collectRolls(plan)
	seen := make(map[string]bool)
	for _, roll := range rolls {
		assert.False(t, seen[roll], "roll %s seated twice", roll)
		seen[roll] = true
	}
	assert.Equal(t, 28, report.Placed)
	assert.Equal(t, 0, report.Unseated)
}

func TestBuildPlan_InvigilatorsAreDistinctPerRun(t *testing.T) {
	exams := testExams("CSE", "ECE")
	batches := []catalog.StudentBatch{
		testBatch("CSE", "22CS01", 8),
		testBatch("ECE", "22EC01", 8),
	}
	rooms := []catalog.Room{testRoom("101", 4, 2), testRoom("102", 4, 2)}

	plan, _, err := BuildPlan(testExamDate, exams, batches, rooms, testTeachers(4))
	require.NoError(t, err)

	assigned := make(map[string]bool)
	for i := range plan.Rooms {
		for _, name := range []string{plan.Rooms[i].Teachers.Invigilator1, plan.Rooms[i].Teachers.Invigilator2} {
			require.NotEqual(t, InvigilatorTBD, name)
			assert.False(t, assigned[name], "teacher %s assigned twice", name)
			assigned[name] = true
		}
	}
}

func TestBuildPlan_BusyTeacherSkipped(t *testing.T) {
	teachers := testTeachers(3)
	teachers[0].BusyPeriods = []roster.BusyPeriod{{
		Day:       "MON",
		StartTime: "09:00",
		EndTime:   "11:00",
	}}

	exams := testExams("CSE")
	batches := []catalog.StudentBatch{testBatch("CSE", "22CS01", 4)}
	rooms := []catalog.Room{testRoom("101", 2, 2)}

	plan, _, err := BuildPlan(testExamDate, exams, batches, rooms, teachers)
	require.NoError(t, err)
	require.Len(t, plan.Rooms, 1)
	assert.Equal(t, "Teacher 2", plan.Rooms[0].Teachers.Invigilator1)
	assert.Equal(t, "Teacher 3", plan.Rooms[0].Teachers.Invigilator2)
}

func TestBuildPlan_InvigilatorShortfallIsTBD(t *testing.T) {
	exams := testExams("CSE")
	batches := []catalog.StudentBatch{testBatch("CSE", "22CS01", 4)}
	rooms := []catalog.Room{testRoom("101", 2, 2)}

	plan, report, err := BuildPlan(testExamDate, exams, batches, rooms, testTeachers(1))
	require.NoError(t, err)
	assert.Equal(t, "Teacher 1", plan.Rooms[0].Teachers.Invigilator1)
	assert.Equal(t, InvigilatorTBD, plan.Rooms[0].Teachers.Invigilator2)
	assert.Equal(t, []string{"101"}, report.ShortfallRooms)
	assert.Equal(t, 1, report.TeachersAssigned)
}

func TestBuildPlan_CapacityShortfallReportsUnseated(t *testing.T) {
	exams := testExams("CSE")
	batches := []catalog.StudentBatch{testBatch("CSE", "22CS01", 10)}
	rooms := []catalog.Room{testRoom("101", 2, 2)}

	plan, report, err := BuildPlan(testExamDate, exams, batches, rooms, testTeachers(2))
	require.NoError(t, err)
	assert.Equal(t, 4, report.Placed)
	assert.Equal(t, 6, report.Unseated)
	assert.True(t, plan.Rooms[0].IsFull())
}

func TestBuildPlan_DetainedSeatedFirst(t *testing.T) {
	batch := testBatch("CSE", "22CS01", 3)
	batch.DetainedRolls = []string{"21CS0144"}

	exams := testExams("CSE")
	rooms := []catalog.Room{testRoom("101", 2, 2)}

	plan, _, err := BuildPlan(testExamDate, exams, []catalog.StudentBatch{batch}, rooms, testTeachers(2))
	require.NoError(t, err)
	assert.Equal(t, "21CS0144", plan.Rooms[0].RawTable[0][0].RollNo)
}

func TestBuildPlan_BorrowsFromLaterPairs(t *testing.T) {
	// MECH alone cannot fill the room; CSE/ECE leftovers are pulled in.
	exams := testExams("CSE", "ECE", "MECH")
	batches := []catalog.StudentBatch{
		testBatch("CSE", "22CS01", 6),
		testBatch("ECE", "22EC01", 6),
		testBatch("MECH", "22ME01", 2),
	}
	rooms := []catalog.Room{testRoom("101", 4, 2), testRoom("102", 4, 2)}

	plan, report, err := BuildPlan(testExamDate, exams, batches, rooms, testTeachers(4))
	require.NoError(t, err)
	assert.Equal(t, 14, report.Placed)
	assert.Equal(t, 0, report.Unseated)
	require.Len(t, plan.Rooms, 2)
	assert.True(t, plan.Rooms[0].IsFull())
}

func TestBuildPlan_EmptyBatchWarning(t *testing.T) {
	batches := []catalog.StudentBatch{
		testBatch("CSE", "22CS01", 4),
		{Branch: "ECE", RegularStartRoll: "22EC0101", RegularEndRoll: "23EC0105"}, // prefix mismatch
	}
	exams := testExams("CSE", "ECE")
	rooms := []catalog.Room{testRoom("101", 2, 2)}

	_, report, err := BuildPlan(testExamDate, exams, batches, rooms, testTeachers(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"ECE regular"}, report.EmptyBatches)
}

func TestBuildPlan_MissingData(t *testing.T) {
	exams := testExams("CSE")
	batches := []catalog.StudentBatch{testBatch("CSE", "22CS01", 4)}
	rooms := []catalog.Room{testRoom("101", 2, 2)}

	_, _, err := BuildPlan(testExamDate, nil, batches, rooms, testTeachers(2))
	assert.ErrorIs(t, err, ErrMissingData)
	_, _, err = BuildPlan(testExamDate, exams, nil, rooms, testTeachers(2))
	assert.ErrorIs(t, err, ErrMissingData)
	_, _, err = BuildPlan(testExamDate, exams, batches, nil, testTeachers(2))
	assert.ErrorIs(t, err, ErrMissingData)
	_, _, err = BuildPlan(testExamDate, exams, batches, rooms, nil)
	assert.ErrorIs(t, err, ErrMissingData)
}

func TestBuildPlan_BadDateAndTime(t *testing.T) {
	batches := []catalog.StudentBatch{testBatch("CSE", "22CS01", 4)}
	rooms := []catalog.Room{testRoom("101", 2, 2)}

	_, _, err := BuildPlan("2026-03-02", testExams("CSE"), batches, rooms, testTeachers(2))
	assert.ErrorIs(t, err, ErrBadExamDate)

	exams := testExams("CSE")
	exams[0].ExamTime = "morning"
	_, _, err = BuildPlan(testExamDate, exams, batches, rooms, testTeachers(2))
	assert.ErrorIs(t, err, ErrBadExamTime)
}
