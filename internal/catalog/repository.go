package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrBatchNotFound = errors.New("student batch not found")
)

// CatalogRepository handles DB operations for rooms, student batches and
// exams.
type CatalogRepository struct {
	roomsCollection   *mongo.Collection
	batchesCollection *mongo.Collection
	examsCollection   *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		roomsCollection:   db.Collection("rooms"),
		batchesCollection: db.Collection("student_batches"),
		examsCollection:   db.Collection("exams"),
	}
}

// Room operations

func (r *CatalogRepository) CreateRoom(ctx context.Context, room *Room) error {
	_, err := r.roomsCollection.InsertOne(ctx, room)
	return err
}

// FindAllRooms returns rooms in stored order; the allocation engine fills
// them in exactly this order.
func (r *CatalogRepository) FindAllRooms(ctx context.Context) ([]Room, error) {
	cursor, err := r.roomsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var rooms []Room
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *CatalogRepository) UpdateRoom(ctx context.Context, id primitive.ObjectID, room *Room) error {
	update := bson.M{"$set": bson.M{
		"block_name":  room.BlockName,
		"floor_no":    room.FloorNo,
		"room_number": room.RoomNumber,
		"rows":        room.Rows,
		"columns":     room.Columns,
		"capacity":    room.Capacity,
	}}
	res, err := r.roomsCollection.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteRoom(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.roomsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Student batch operations

func (r *CatalogRepository) CreateBatch(ctx context.Context, batch *StudentBatch) error {
	_, err := r.batchesCollection.InsertOne(ctx, batch)
	return err
}

func (r *CatalogRepository) FindAllBatches(ctx context.Context) ([]StudentBatch, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.batchesCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var batches []StudentBatch
	if err := cursor.All(ctx, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *CatalogRepository) UpdateBatch(ctx context.Context, id primitive.ObjectID, batch *StudentBatch) error {
	update := bson.M{"$set": bson.M{
		"branch":             batch.Branch,
		"year":               batch.Year,
		"regular_start_roll": batch.RegularStartRoll,
		"regular_end_roll":   batch.RegularEndRoll,
		"lateral_start_roll": batch.LateralStartRoll,
		"lateral_end_roll":   batch.LateralEndRoll,
		"detained_rolls":     batch.DetainedRolls,
	}}
	res, err := r.batchesCollection.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBatchNotFound
	}
	return nil
}

func (r *CatalogRepository) DeleteBatch(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.batchesCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrBatchNotFound
	}
	return nil
}

// Exam operations

func (r *CatalogRepository) InsertExams(ctx context.Context, exams []Exam) error {
	docs := make([]interface{}, len(exams))
	for i := range exams {
		docs[i] = exams[i]
	}
	_, err := r.examsCollection.InsertMany(ctx, docs)
	return err
}

func (r *CatalogRepository) FindAllExams(ctx context.Context) ([]Exam, error) {
	cursor, err := r.examsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var exams []Exam
	if err := cursor.All(ctx, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// FindExamsByDate returns every branch sitting on the given date.
func (r *CatalogRepository) FindExamsByDate(ctx context.Context, examDate string) ([]Exam, error) {
	cursor, err := r.examsCollection.Find(ctx, bson.M{"exam_date": examDate})
	if err != nil {
		return nil, err
	}
	var exams []Exam
	if err := cursor.All(ctx, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// FindScheduleByDate projects the branch/subject schedule for a date,
// sorted by branch.
func (r *CatalogRepository) FindScheduleByDate(ctx context.Context, examDate string) ([]ScheduleEntry, error) {
	opts := options.Find().
		SetProjection(bson.M{"branch": 1, "subject": 1, "_id": 0}).
		SetSort(bson.M{"branch": 1})
	cursor, err := r.examsCollection.Find(ctx, bson.M{"exam_date": examDate}, opts)
	if err != nil {
		return nil, err
	}
	var schedule []ScheduleEntry
	if err := cursor.All(ctx, &schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}
