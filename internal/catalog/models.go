package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Room is an examination room. Capacity is always rows*columns; the service
// recomputes it on create and update.
type Room struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BlockName  string             `bson:"block_name" json:"blockName"`
	FloorNo    int                `bson:"floor_no" json:"floorNo"`
	RoomNumber string             `bson:"room_number" json:"roomNumber"`
	Rows       int                `bson:"rows" json:"rows"`
	Columns    int                `bson:"columns" json:"columns"`
	Capacity   int                `bson:"capacity" json:"capacity"`
}

// StudentBatch is one branch/year intake. Roll ranges are stored exactly as
// entered so the admin UI can redisplay them; detained rolls are students
// repeating the year who sit with this batch.
type StudentBatch struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Branch           string             `bson:"branch" json:"branch"`
	Year             int                `bson:"year" json:"year"`
	RegularStartRoll string             `bson:"regular_start_roll,omitempty" json:"regularStartRoll,omitempty"`
	RegularEndRoll   string             `bson:"regular_end_roll,omitempty" json:"regularEndRoll,omitempty"`
	LateralStartRoll string             `bson:"lateral_start_roll,omitempty" json:"lateralStartRoll,omitempty"`
	LateralEndRoll   string             `bson:"lateral_end_roll,omitempty" json:"lateralEndRoll,omitempty"`
	DetainedRolls    []string           `bson:"detained_rolls" json:"detainedRolls"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
}

// Exam is one branch sitting on one date. Multiple records share an exam
// date; the seating engine reads the time window from the first of them.
type Exam struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ExamType string             `bson:"exam_type" json:"examType"`
	ExamYear int                `bson:"exam_year" json:"examYear"`
	ExamDate string             `bson:"exam_date" json:"examDate"`
	ExamTime string             `bson:"exam_time" json:"examTime"`
	Branch   string             `bson:"branch" json:"branch"`
	Subject  string             `bson:"subject" json:"subject"`
}

// ScheduleEntry is the branch/subject projection used by the
// schedule-by-date listing.
type ScheduleEntry struct {
	Branch  string `bson:"branch" json:"branch"`
	Subject string `bson:"subject" json:"subject"`
}
