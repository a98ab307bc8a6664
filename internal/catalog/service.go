package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrRangeIncomplete = errors.New("roll range start given without end")
	ErrSchemeMismatch  = errors.New("roll range start and end use different suffix schemes")
)

// CatalogService handles business logic for rooms, student batches and
// exams.
type CatalogService struct {
	repo   *CatalogRepository
	logger *zap.Logger
}

func NewCatalogService(repo *CatalogRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// CreateRoom stores a room, recomputing capacity from the grid dimensions.
func (s *CatalogService) CreateRoom(ctx context.Context, room *Room) error {
	room.ID = primitive.NewObjectID()
	room.Capacity = room.Rows * room.Columns
	return s.repo.CreateRoom(ctx, room)
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]Room, error) {
	return s.repo.FindAllRooms(ctx)
}

// UpdateRoom replaces a room's fields, recomputing capacity.
func (s *CatalogService) UpdateRoom(ctx context.Context, id primitive.ObjectID, room *Room) error {
	room.Capacity = room.Rows * room.Columns
	return s.repo.UpdateRoom(ctx, id, room)
}

func (s *CatalogService) DeleteRoom(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteRoom(ctx, id)
}

// suffixScheme classifies the two-character suffix of a roll number:
// "numeric" for two digits, "alpha" for letter+digit, "" otherwise.
func suffixScheme(roll string) string {
	if len(roll) < 2 {
		return ""
	}
	sfx := roll[len(roll)-2:]
	if sfx[0] >= '0' && sfx[0] <= '9' && sfx[1] >= '0' && sfx[1] <= '9' {
		return "numeric"
	}
	if sfx[0] >= 'A' && sfx[0] <= 'Z' && sfx[1] >= '0' && sfx[1] <= '9' {
		return "alpha"
	}
	return ""
}

// validateRollRange enforces the batch invariant: a start implies an end and
// both ends of a range use the same suffix scheme. The shared-prefix rule is
// checked at expansion time, where a mismatch degrades to an empty queue.
func validateRollRange(start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	if start == "" || end == "" {
		return ErrRangeIncomplete
	}
	startScheme := suffixScheme(start)
	endScheme := suffixScheme(end)
	if startScheme == "" || endScheme == "" {
		return fmt.Errorf("%w: unrecognized suffix", ErrSchemeMismatch)
	}
	// A numeric range may legitimately end in the alphabetic continuation
	// (e.g. ...90 to ...A5) but an alphabetic start never ends numeric.
	if startScheme == "alpha" && endScheme == "numeric" {
		return ErrSchemeMismatch
	}
	return nil
}

// CreateBatch validates and stores a student batch.
func (s *CatalogService) CreateBatch(ctx context.Context, batch *StudentBatch) error {
	if err := validateRollRange(batch.RegularStartRoll, batch.RegularEndRoll); err != nil {
		return fmt.Errorf("regular range: %w", err)
	}
	if err := validateRollRange(batch.LateralStartRoll, batch.LateralEndRoll); err != nil {
		return fmt.Errorf("lateral range: %w", err)
	}
	batch.ID = primitive.NewObjectID()
	if batch.DetainedRolls == nil {
		batch.DetainedRolls = []string{}
	}
	batch.CreatedAt = time.Now().UTC()
	return s.repo.CreateBatch(ctx, batch)
}

func (s *CatalogService) ListBatches(ctx context.Context) ([]StudentBatch, error) {
	return s.repo.FindAllBatches(ctx)
}

func (s *CatalogService) UpdateBatch(ctx context.Context, id primitive.ObjectID, batch *StudentBatch) error {
	if err := validateRollRange(batch.RegularStartRoll, batch.RegularEndRoll); err != nil {
		return fmt.Errorf("regular range: %w", err)
	}
	if err := validateRollRange(batch.LateralStartRoll, batch.LateralEndRoll); err != nil {
		return fmt.Errorf("lateral range: %w", err)
	}
	if batch.DetainedRolls == nil {
		batch.DetainedRolls = []string{}
	}
	return s.repo.UpdateBatch(ctx, id, batch)
}

func (s *CatalogService) DeleteBatch(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteBatch(ctx, id)
}

// ImportExamTimetable parses and stores an uploaded exam timetable CSV,
// returning the number of exam records created.
func (s *CatalogService) ImportExamTimetable(ctx context.Context, file io.Reader, examType, examYear, examTime string) (int, error) {
	year, err := strconv.Atoi(examYear)
	if err != nil {
		year = time.Now().Year()
	}
	if examType == "" {
		examType = "Unknown"
	}
	if examTime == "" {
		examTime = "TBD"
	}

	exams, err := ParseExamTimetable(file, examType, year, examTime)
	if err != nil {
		return 0, err
	}
	for i := range exams {
		exams[i].ID = primitive.NewObjectID()
	}
	if err := s.repo.InsertExams(ctx, exams); err != nil {
		return 0, err
	}
	s.logger.Info("Exam timetable imported", zap.Int("records", len(exams)))
	return len(exams), nil
}

func (s *CatalogService) ListExams(ctx context.Context) ([]Exam, error) {
	return s.repo.FindAllExams(ctx)
}

func (s *CatalogService) ScheduleByDate(ctx context.Context, examDate string) ([]ScheduleEntry, error) {
	return s.repo.FindScheduleByDate(ctx, examDate)
}
