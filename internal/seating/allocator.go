package seating

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"ExamSeatAllocator/internal/catalog"
	"ExamSeatAllocator/internal/roster"
)

var (
	// ErrMissingData means one of the input collections for the date was
	// empty; generation does not proceed.
	ErrMissingData = errors.New("missing data for seating generation")
	// ErrBadExamDate means the exam date is not a DD-MM-YYYY string.
	ErrBadExamDate = errors.New("invalid exam date")
	// ErrBadExamTime means the exam time is not an HH:MM-HH:MM range.
	ErrBadExamTime = errors.New("invalid exam time range")
)

// AllocationReport carries the degraded-but-reported outcomes of a
// generation run: students left standing, batches whose roll ranges
// expanded to nothing, and rooms short of invigilators.
type AllocationReport struct {
	Placed           int      `json:"placed"`
	Unseated         int      `json:"unseated"`
	EmptyBatches     []string `json:"emptyBatches,omitempty"`
	ShortfallRooms   []string `json:"shortfallRooms,omitempty"`
	RoomsUsed        int      `json:"roomsUsed"`
	TeachersAssigned int      `json:"teachersAssigned"`
}

// defaultColumns is used when a stored room predates column tracking.
const defaultColumns = 8

// BuildPlan computes the seating plan for one exam date. It is a pure
// function of its inputs: the used-teacher set lives for a single call,
// nothing is persisted and nothing outside the returned plan is mutated.
//
// The fill walks rooms in stored order. For each branch pair, columns
// 0, 2, 4, ... are filled top to bottom from the first branch and columns
// 1, 3, 5, ... from the second, so neighbours within a row alternate
// branches. Leftovers of the pair then fill remaining cells row-major, and
// an exhausted pair borrows from subsequent pairs until the room is full or
// every queue is empty. Rooms running out before students is a reported
// shortfall, not a failure.
func BuildPlan(examDate string, exams []catalog.Exam, batches []catalog.StudentBatch, rooms []catalog.Room, teachers []roster.Teacher) (*SeatingPlan, *AllocationReport, error) {
	if len(exams) == 0 || len(batches) == 0 || len(rooms) == 0 || len(teachers) == 0 {
		return nil, nil, ErrMissingData
	}

	day, err := dayOfWeek(examDate)
	if err != nil {
		return nil, nil, err
	}
	// All exams on a date share one time window; read it from the first.
	startTime, endTime, err := splitExamTime(exams[0].ExamTime)
	if err != nil {
		return nil, nil, err
	}

	report := &AllocationReport{}
	queues := buildQueues(batches, report)

	branches := make([]string, 0, len(queues))
	for b, q := range queues {
		if len(q) > 0 {
			branches = append(branches, b)
		}
	}
	sort.Strings(branches)
	pairs := PairBranches(branches)

	plan := &SeatingPlan{
		ExamDate:    examDate,
		GeneratedAt: time.Now().UTC(),
		Rooms:       []RoomAssignment{},
	}

	used := make(map[string]bool)
	roomIdx := 0

	for pi := 0; pi < len(pairs); pi++ {
		b1 := pairs[pi].First
		b2 := pairs[pi].Partner()

		for len(queues[b1]) > 0 || len(queues[b2]) > 0 {
			if roomIdx >= len(rooms) {
				for _, q := range queues {
					report.Unseated += len(q)
				}
				finishReport(plan, report)
				return plan, report, nil
			}

			room := &rooms[roomIdx]
			ra := openRoom(plan, room, teachers, used, day, startTime, endTime, report)

			fillPair(ra, b1, b2, queues)

			if !ra.IsFull() {
				// Current pair exhausted with cells to spare: borrow from
				// later pairs in order until the room fills or nothing
				// remains anywhere.
				for ni := pi + 1; ni < len(pairs) && !ra.IsFull(); ni++ {
					fillPair(ra, pairs[ni].First, pairs[ni].Partner(), queues)
				}
			}

			// Full or terminally short of students either way; the next
			// iteration (or pair) starts a fresh room.
			roomIdx++
		}
	}

	finishReport(plan, report)
	return plan, report, nil
}

// buildQueues expands every batch into its branch's FIFO queue: detained
// rolls first, then the regular range, then the lateral range. Batches whose
// ranges expand to nothing are recorded as warnings.
func buildQueues(batches []catalog.StudentBatch, report *AllocationReport) map[string][]string {
	queues := make(map[string][]string)
	for _, batch := range batches {
		var rolls []string
		rolls = append(rolls, batch.DetainedRolls...)
		regular := ExpandRollRange(batch.RegularStartRoll, batch.RegularEndRoll)
		rolls = append(rolls, regular...)
		var lateral []string
		if batch.LateralStartRoll != "" {
			lateral = ExpandRollRange(batch.LateralStartRoll, batch.LateralEndRoll)
			rolls = append(rolls, lateral...)
		}

		if batch.RegularStartRoll != "" && len(regular) == 0 {
			report.EmptyBatches = append(report.EmptyBatches, batch.Branch+" regular")
		}
		if batch.LateralStartRoll != "" && len(lateral) == 0 {
			report.EmptyBatches = append(report.EmptyBatches, batch.Branch+" lateral")
		}

		queues[batch.Branch] = append(queues[batch.Branch], rolls...)
	}
	return queues
}

// openRoom returns the room's assignment in the plan, creating it with an
// empty grid and an invigilator pair the first time the fill touches it.
func openRoom(plan *SeatingPlan, room *catalog.Room, teachers []roster.Teacher, used map[string]bool, day, startTime, endTime string, report *AllocationReport) *RoomAssignment {
	for i := range plan.Rooms {
		if plan.Rooms[i].RoomNumber == room.RoomNumber {
			return &plan.Rooms[i]
		}
	}

	cols := room.Columns
	if cols <= 0 {
		cols = defaultColumns
	}
	rows := (room.Capacity + cols - 1) / cols

	grid := make([][]*Seat, rows)
	for r := range grid {
		grid[r] = make([]*Seat, cols)
	}

	inv1, inv2 := InvigilatorTBD, InvigilatorTBD
	if t, ok := roster.NextAvailable(teachers, used, day, startTime, endTime); ok {
		inv1 = t.TeacherName
		used[t.TeacherName] = true
		report.TeachersAssigned++
	}
	if t, ok := roster.NextAvailable(teachers, used, day, startTime, endTime); ok {
		inv2 = t.TeacherName
		used[t.TeacherName] = true
		report.TeachersAssigned++
	}
	if inv1 == InvigilatorTBD || inv2 == InvigilatorTBD {
		report.ShortfallRooms = append(report.ShortfallRooms, room.RoomNumber)
	}

	plan.Rooms = append(plan.Rooms, RoomAssignment{
		RoomNumber: room.RoomNumber,
		RoomInfo:   fmt.Sprintf("%s - Floor %d - Room %s", room.BlockName, room.FloorNo, room.RoomNumber),
		Capacity:   room.Capacity,
		Teachers: Invigilators{
			Invigilator1: inv1,
			Invigilator2: inv2,
			Attendance: Attendance{
				Invigilator1: AttendancePresent,
				Invigilator2: AttendancePresent,
			},
		},
		RawTable: grid,
	})
	return &plan.Rooms[len(plan.Rooms)-1]
}

// fillPair seats a branch pair into a room: first the alternating column
// sweep, then a row-major sweep over whatever cells are left, preferring the
// first branch. Queues are consumed in place.
func fillPair(ra *RoomAssignment, b1, b2 string, queues map[string][]string) {
	rows := len(ra.RawTable)
	if rows == 0 {
		return
	}
	cols := len(ra.RawTable[0])

	for c := 0; c < cols && len(queues[b1]) > 0; c += 2 {
		for r := 0; r < rows && len(queues[b1]) > 0; r++ {
			if ra.RawTable[r][c] == nil {
				ra.RawTable[r][c] = &Seat{RollNo: shift(queues, b1), Branch: b1}
			}
		}
	}

	for c := 1; c < cols && len(queues[b2]) > 0; c += 2 {
		for r := 0; r < rows && len(queues[b2]) > 0; r++ {
			if ra.RawTable[r][c] == nil {
				ra.RawTable[r][c] = &Seat{RollNo: shift(queues, b2), Branch: b2}
			}
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if len(queues[b1]) == 0 && len(queues[b2]) == 0 {
				return
			}
			if ra.RawTable[r][c] != nil {
				continue
			}
			if len(queues[b1]) > 0 {
				ra.RawTable[r][c] = &Seat{RollNo: shift(queues, b1), Branch: b1}
			} else {
				ra.RawTable[r][c] = &Seat{RollNo: shift(queues, b2), Branch: b2}
			}
		}
	}
}

func shift(queues map[string][]string, branch string) string {
	roll := queues[branch][0]
	queues[branch] = queues[branch][1:]
	return roll
}

func finishReport(plan *SeatingPlan, report *AllocationReport) {
	report.RoomsUsed = len(plan.Rooms)
	for i := range plan.Rooms {
		report.Placed += plan.Rooms[i].Occupied()
	}
}

// dayOfWeek maps a DD-MM-YYYY exam date to its MON..SUN code. Busy periods
// only exist for MON..SAT, so a Sunday exam simply never matches one.
func dayOfWeek(examDate string) (string, error) {
	t, err := time.Parse("02-01-2006", strings.TrimSpace(examDate))
	if err != nil {
		return "", ErrBadExamDate
	}
	return strings.ToUpper(t.Format("Mon")), nil
}

// splitExamTime splits an "HH:MM-HH:MM" range into its start and end.
func splitExamTime(examTime string) (string, string, error) {
	parts := strings.SplitN(examTime, "-", 2)
	if len(parts) != 2 {
		return "", "", ErrBadExamTime
	}
	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return "", "", ErrBadExamTime
	}
	return start, end, nil
}
