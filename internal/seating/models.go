package seating

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendancePresent and AttendanceAbsent are the invigilator attendance states.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

// InvigilatorTBD is the placeholder assigned when fewer than two free
// teachers remain for a room. It is a valid terminal outcome, not an error.
const InvigilatorTBD = "TBD"

// Seat is one occupied cell of a room grid.
type Seat struct {
	RollNo string `bson:"roll_no" json:"rollNo"`
	Branch string `bson:"branch" json:"branch"`
}

// Attendance tracks whether each invigilator turned up for the session.
type Attendance struct {
	Invigilator1 string `bson:"invigilator1" json:"invigilator1"`
	Invigilator2 string `bson:"invigilator2" json:"invigilator2"`
}

// Invigilators is the pair of teachers supervising a room.
type Invigilators struct {
	Invigilator1 string     `bson:"invigilator1" json:"invigilator1"`
	Invigilator2 string     `bson:"invigilator2" json:"invigilator2"`
	Attendance   Attendance `bson:"attendance" json:"attendance"`
}

// RoomAssignment is one room's slice of a seating plan: its description, the
// invigilator pair and the seat grid. Empty cells are nil.
type RoomAssignment struct {
	RoomNumber string       `bson:"room_number" json:"roomNumber"`
	RoomInfo   string       `bson:"room_info" json:"roomInfo"`
	Capacity   int          `bson:"capacity" json:"capacity"`
	Teachers   Invigilators `bson:"teachers" json:"teachers"`
	RawTable   [][]*Seat    `bson:"raw_table" json:"rawTable"`
}

// Occupied counts the filled cells of the grid.
func (ra *RoomAssignment) Occupied() int {
	n := 0
	for _, row := range ra.RawTable {
		for _, seat := range row {
			if seat != nil {
				n++
			}
		}
	}
	return n
}

// IsFull reports whether every cell of the grid is occupied.
func (ra *RoomAssignment) IsFull() bool {
	for _, row := range ra.RawTable {
		for _, seat := range row {
			if seat == nil {
				return false
			}
		}
	}
	return true
}

// SeatingPlan is the complete room-by-room assignment for one exam date.
// Rooms preserve the order in which the engine filled them so serialized
// plans compare deterministically.
type SeatingPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ExamDate    string             `bson:"exam_date" json:"examDate"`
	GeneratedAt time.Time          `bson:"generated_at" json:"generatedAt"`
	Rooms       []RoomAssignment   `bson:"rooms" json:"seatingPlan"`
}

// SeatLocation is the answer to a roll-number search: where a student sits
// and who supervises them. Row and Column are 1-indexed for display.
type SeatLocation struct {
	RollNo       string       `json:"rollNo"`
	ExamDate     string       `json:"examDate"`
	RoomNumber   string       `json:"roomNo"`
	RoomInfo     string       `json:"roomInfo"`
	Row          int          `json:"row"`
	Column       int          `json:"column"`
	Branch       string       `json:"branch"`
	Invigilators Invigilators `json:"invigilators"`
}

// FindSeat scans every room grid for a roll number, matching exact but
// case-insensitive. Returns false when the roll number is not seated.
func (p *SeatingPlan) FindSeat(rollNo string) (*SeatLocation, bool) {
	want := strings.ToUpper(strings.TrimSpace(rollNo))
	for i := range p.Rooms {
		room := &p.Rooms[i]
		for r, row := range room.RawTable {
			for c, seat := range row {
				if seat == nil {
					continue
				}
				if strings.ToUpper(strings.TrimSpace(seat.RollNo)) == want {
					return &SeatLocation{
						RollNo:       seat.RollNo,
						ExamDate:     p.ExamDate,
						RoomNumber:   room.RoomNumber,
						RoomInfo:     room.RoomInfo,
						Row:          r + 1,
						Column:       c + 1,
						Branch:       seat.Branch,
						Invigilators: room.Teachers,
					}, true
				}
			}
		}
	}
	return nil, false
}

// Duty is one invigilation assignment from a teacher's point of view.
type Duty struct {
	ExamDate   string `json:"examDate"`
	RoomNumber string `json:"roomName"`
	RoomInfo   string `json:"roomInfo"`
	Role       string `json:"role"`
	Attendance string `json:"attendance"`
}

// DutiesFor lists the rooms of this plan where the named teacher is assigned
// as invigilator 1 or 2.
func (p *SeatingPlan) DutiesFor(teacherName string) []Duty {
	name := strings.TrimSpace(teacherName)
	var duties []Duty
	for i := range p.Rooms {
		room := &p.Rooms[i]
		switch name {
		case strings.TrimSpace(room.Teachers.Invigilator1):
			duties = append(duties, Duty{
				ExamDate:   p.ExamDate,
				RoomNumber: room.RoomNumber,
				RoomInfo:   room.RoomInfo,
				Role:       "Invigilator 1",
				Attendance: room.Teachers.Attendance.Invigilator1,
			})
		case strings.TrimSpace(room.Teachers.Invigilator2):
			duties = append(duties, Duty{
				ExamDate:   p.ExamDate,
				RoomNumber: room.RoomNumber,
				RoomInfo:   room.RoomInfo,
				Role:       "Invigilator 2",
				Attendance: room.Teachers.Attendance.Invigilator2,
			})
		}
	}
	return duties
}
