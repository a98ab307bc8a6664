package roster

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Days of the teaching week, Sunday excluded.
var Days = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT"}

// BusyPeriod is one recurring weekly commitment during which a teacher
// cannot invigilate. Times are zero-padded "HH:MM" strings so lexicographic
// comparison orders them correctly.
type BusyPeriod struct {
	Year      string `bson:"year" json:"year"`
	Branch    string `bson:"branch" json:"branch"`
	Section   string `bson:"section" json:"section"`
	Day       string `bson:"day" json:"day"`
	StartTime string `bson:"start_time" json:"startTime"`
	EndTime   string `bson:"end_time" json:"endTime"`
	Subject   string `bson:"subject" json:"subject"`
}

// Key identifies a busy period for deduplication: a teacher holds at most
// one period per (year, branch, section, day, start, end).
func (bp BusyPeriod) Key() string {
	return bp.Year + "|" + bp.Branch + "|" + bp.Section + "|" + bp.Day + "|" + bp.StartTime + "|" + bp.EndTime
}

// Teacher is a roster entry: a uniquely named teacher, the subjects they
// teach and their weekly busy periods.
type Teacher struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TeacherName string             `bson:"teacher_name" json:"teacherName"`
	Subjects    []string           `bson:"subjects" json:"subjects"`
	BusyPeriods []BusyPeriod       `bson:"busy_periods" json:"busyPeriods"`
}

// IsBusy reports whether the teacher has a commitment overlapping the
// window [start, end) on the given day. The check matches a window whose
// start or end falls inside a busy period; a window that strictly contains
// a period without touching its boundaries is not caught.
func (t *Teacher) IsBusy(day, start, end string) bool {
	for _, bp := range t.BusyPeriods {
		if bp.Day != day {
			continue
		}
		if (start >= bp.StartTime && start < bp.EndTime) ||
			(end > bp.StartTime && end <= bp.EndTime) {
			return true
		}
	}
	return false
}

// NextAvailable walks the roster in stored order and returns the first
// teacher who is neither already used nor busy for the window. The used set
// spans a whole generation run: each teacher serves at most one room per
// exam session.
func NextAvailable(teachers []Teacher, used map[string]bool, day, start, end string) (*Teacher, bool) {
	for i := range teachers {
		t := &teachers[i]
		if used[t.TeacherName] {
			continue
		}
		if t.IsBusy(day, start, end) {
			continue
		}
		return t, true
	}
	return nil, false
}
