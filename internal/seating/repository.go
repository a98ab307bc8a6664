package seating

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPlanNotFound means no seating plan is stored for the requested date.
var ErrPlanNotFound = errors.New("seating plan not found")

// PlanRepository owns the persisted seating plan documents. At most one plan
// exists per exam date, backed by a unique index on exam_date.
type PlanRepository struct {
	collection *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) *PlanRepository {
	return &PlanRepository{collection: db.Collection("seating_plans")}
}

// Save stores the plan for its exam date. Regeneration overwrites the
// previous plan: a replace-with-upsert keyed on exam_date, serialized by the
// unique index, so two concurrent generations for one date cannot produce
// duplicate documents.
func (r *PlanRepository) Save(ctx context.Context, plan *SeatingPlan) error {
	plan.ID = primitive.NilObjectID
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"exam_date": plan.ExamDate}, plan, opts)
	return err
}

// FindByDate returns the stored plan for an exam date or ErrPlanNotFound.
func (r *PlanRepository) FindByDate(ctx context.Context, examDate string) (*SeatingPlan, error) {
	var plan SeatingPlan
	err := r.collection.FindOne(ctx, bson.M{"exam_date": examDate}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindAll enumerates every stored plan.
func (r *PlanRepository) FindAll(ctx context.Context) ([]*SeatingPlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var plans []*SeatingPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Replace swaps a mutated plan back in by exam date, used for attendance
// updates after generation.
func (r *PlanRepository) Replace(ctx context.Context, plan *SeatingPlan) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"exam_date": plan.ExamDate}, plan)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPlanNotFound
	}
	return nil
}
