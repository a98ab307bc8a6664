package notification

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNoticeNotFound = errors.New("duty notice not found")

// NoticeRepository handles DB operations for duty notices.
type NoticeRepository struct {
	collection *mongo.Collection
}

// NewNoticeRepository creates a new repository for duty notices.
func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{collection: db.Collection("duty_notices")}
}

// CreateNotice inserts a new duty notice.
func (r *NoticeRepository) CreateNotice(ctx context.Context, n *DutyNotice) error {
	_, err := r.collection.InsertOne(ctx, n)
	return err
}

// FindPending fetches notices that are due for delivery
// (status = scheduled, send_time <= now).
func (r *NoticeRepository) FindPending(ctx context.Context) ([]*DutyNotice, error) {
	filter := bson.M{"status": StatusScheduled, "send_time": bson.M{"$lte": time.Now()}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var notices []*DutyNotice
	if err := cursor.All(ctx, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// FindByTeacher fetches a teacher's notices, newest first.
func (r *NoticeRepository) FindByTeacher(ctx context.Context, teacherName string) ([]*DutyNotice, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"teacher_name": teacherName}, opts)
	if err != nil {
		return nil, err
	}
	var notices []*DutyNotice
	if err := cursor.All(ctx, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

// UpdateStatus records the delivery outcome of a notice.
func (r *NoticeRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status, sentTo string) error {
	update := bson.M{"$set": bson.M{"status": status, "sent_to": sentTo, "updated_at": time.Now()}}
	res, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoticeNotFound
	}
	return nil
}

// DeleteByExamDate removes all notices for an exam date. Used when a plan
// is regenerated so stale assignments are not delivered.
func (r *NoticeRepository) DeleteByExamDate(ctx context.Context, examDate string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"exam_date": examDate, "status": StatusScheduled})
	return err
}
