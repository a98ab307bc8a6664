package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification statuses.
const (
	StatusScheduled = "scheduled"
	StatusSent      = "sent"
	StatusSkipped   = "skipped"
)

// DutyNotice is a scheduled email telling a teacher about an invigilation
// assignment. One notice is created per invigilator when a plan is
// generated; the scheduler delivers them asynchronously.
type DutyNotice struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TeacherName string             `bson:"teacher_name"`
	ExamDate    string             `bson:"exam_date"`
	RoomNumber  string             `bson:"room_number"`
	RoomInfo    string             `bson:"room_info"`
	Message     string             `bson:"message"`
	SendTime    time.Time          `bson:"send_time"`
	Status      string             `bson:"status"`
	SentTo      string             `bson:"sent_to,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}
