package roster

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrTeacherNotFound = errors.New("teacher not found")

// TeacherRepository handles DB operations for the teacher roster.
type TeacherRepository struct {
	collection *mongo.Collection
}

func NewTeacherRepository(db *mongo.Database) *TeacherRepository {
	return &TeacherRepository{collection: db.Collection("teachers")}
}

// FindAll returns the roster in stored order. Invigilator selection walks
// this order, so it must be stable across reads.
func (r *TeacherRepository) FindAll(ctx context.Context) ([]Teacher, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var teachers []Teacher
	if err := cursor.All(ctx, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *TeacherRepository) FindByName(ctx context.Context, teacherName string) (*Teacher, error) {
	var teacher Teacher
	err := r.collection.FindOne(ctx, bson.M{"teacher_name": teacherName}).Decode(&teacher)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return &teacher, nil
}

// Upsert writes a teacher keyed by unique name, replacing subjects and busy
// periods with the merged set the service computed.
func (r *TeacherRepository) Upsert(ctx context.Context, teacher *Teacher) error {
	filter := bson.M{"teacher_name": teacher.TeacherName}
	update := bson.M{"$set": bson.M{
		"teacher_name": teacher.TeacherName,
		"subjects":     teacher.Subjects,
		"busy_periods": teacher.BusyPeriods,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}
