package seating

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRoomPlan() *SeatingPlan {
	return &SeatingPlan{
		ExamDate: "02-03-2026",
		Rooms: []RoomAssignment{
			{
				RoomNumber: "101",
				RoomInfo:   "A Block - Floor 1 - Room 101",
				Capacity:   4,
				Teachers: Invigilators{
					Invigilator1: "Alice Kumar",
					Invigilator2: "Bala Reddy",
					Attendance:   Attendance{Invigilator1: AttendancePresent, Invigilator2: AttendanceAbsent},
				},
				RawTable: [][]*Seat{
					{{RollNo: "22CS0101", Branch: "CSE"}, {RollNo: "22EC0101", Branch: "ECE"}},
					{{RollNo: "22CS0102", Branch: "CSE"}, nil},
				},
			},
			{
				RoomNumber: "102",
				RoomInfo:   "A Block - Floor 1 - Room 102",
				Capacity:   4,
				Teachers: Invigilators{
					Invigilator1: "Alice Kumar",
					Invigilator2: InvigilatorTBD,
					Attendance:   Attendance{Invigilator1: AttendancePresent, Invigilator2: AttendancePresent},
				},
				RawTable: [][]*Seat{
					{{RollNo: "22CS0103", Branch: "CSE"}, nil},
					{nil, nil},
				},
			},
		},
	}
}

func TestFindSeat_CaseInsensitiveAndOneIndexed(t *testing.T) {
	plan := twoRoomPlan()

	loc, ok := plan.FindSeat("22cs0102")
	require.True(t, ok)
	assert.Equal(t, "22CS0102", loc.RollNo)
	assert.Equal(t, "101", loc.RoomNumber)
	assert.Equal(t, 2, loc.Row)
	assert.Equal(t, 1, loc.Column)
	assert.Equal(t, "Alice Kumar", loc.Invigilators.Invigilator1)
}

func TestFindSeat_TrimsWhitespace(t *testing.T) {
	plan := twoRoomPlan()
	_, ok := plan.FindSeat("  22EC0101 ")
	assert.True(t, ok)
}

func TestFindSeat_NotSeated(t *testing.T) {
	plan := twoRoomPlan()
	loc, ok := plan.FindSeat("22CS0999")
	assert.False(t, ok)
	assert.Nil(t, loc)
}

func TestDutiesFor_BothRoomsAndAttendance(t *testing.T) {
	plan := twoRoomPlan()

	duties := plan.DutiesFor("Alice Kumar")
	require.Len(t, duties, 2)
	assert.Equal(t, "101", duties[0].RoomNumber)
	assert.Equal(t, "Invigilator 1", duties[0].Role)
	assert.Equal(t, "102", duties[1].RoomNumber)

	duties = plan.DutiesFor("Bala Reddy")
	require.Len(t, duties, 1)
	assert.Equal(t, "Invigilator 2", duties[0].Role)
	assert.Equal(t, AttendanceAbsent, duties[0].Attendance)

	assert.Empty(t, plan.DutiesFor("Nobody"))
}

func TestOccupiedAndIsFull(t *testing.T) {
	plan := twoRoomPlan()
	assert.Equal(t, 3, plan.Rooms[0].Occupied())
	assert.False(t, plan.Rooms[0].IsFull())

	full := RoomAssignment{RawTable: [][]*Seat{{{RollNo: "X"}}}}
	assert.True(t, full.IsFull())
}

func TestWriteCSV_OneRowPerOccupiedSeat(t *testing.T) {
	plan := twoRoomPlan()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, plan))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5) // header + 4 occupied seats
	assert.Equal(t, "Exam Date,Room,Invigilator 1,Invigilator 2,Row,Column,Roll Number,Branch", lines[0])
	assert.Equal(t, "02-03-2026,101,Alice Kumar,Bala Reddy,1,1,22CS0101,CSE", lines[1])
	assert.Equal(t, "02-03-2026,102,Alice Kumar,TBD,1,1,22CS0103,CSE", lines[4])
}
