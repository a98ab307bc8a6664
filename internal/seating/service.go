package seating

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ExamSeatAllocator/internal/catalog"
	"ExamSeatAllocator/internal/roster"
)

// DutyNotifier is told about freshly generated plans so invigilators can be
// informed of their assignments. Notification failures never block
// generation.
type DutyNotifier interface {
	ScheduleDutyNotices(ctx context.Context, plan *SeatingPlan)
}

// SeatingService orchestrates plan generation: it gathers the inputs for a
// date, runs the allocation engine and persists the result.
type SeatingService struct {
	plans    *PlanRepository
	catalog  *catalog.CatalogRepository
	teachers *roster.TeacherRepository
	notifier DutyNotifier
	logger   *zap.Logger
}

func NewSeatingService(plans *PlanRepository, catalogRepo *catalog.CatalogRepository, teachers *roster.TeacherRepository, notifier DutyNotifier, logger *zap.Logger) *SeatingService {
	return &SeatingService{
		plans:    plans,
		catalog:  catalogRepo,
		teachers: teachers,
		notifier: notifier,
		logger:   logger,
	}
}

// GeneratePlan builds and stores the seating plan for an exam date. An
// existing plan for the date is overwritten. The returned report carries the
// degraded outcomes (unseated students, invigilator shortfalls,
// empty roll-range expansions) for the caller to surface.
func (s *SeatingService) GeneratePlan(ctx context.Context, examDate string) (*SeatingPlan, *AllocationReport, error) {
	exams, err := s.catalog.FindExamsByDate(ctx, examDate)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch exams: %w", err)
	}
	batches, err := s.catalog.FindAllBatches(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch batches: %w", err)
	}
	rooms, err := s.catalog.FindAllRooms(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch rooms: %w", err)
	}
	teachers, err := s.teachers.FindAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch teachers: %w", err)
	}

	plan, report, err := BuildPlan(examDate, exams, batches, rooms, teachers)
	if err != nil {
		return nil, nil, err
	}

	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, nil, fmt.Errorf("persist plan: %w", err)
	}

	s.logger.Info("Seating plan generated",
		zap.String("examDate", examDate),
		zap.Int("roomsUsed", report.RoomsUsed),
		zap.Int("placed", report.Placed),
		zap.Int("unseated", report.Unseated))
	if report.Unseated > 0 {
		s.logger.Warn("Not enough rooms, students left unseated",
			zap.String("examDate", examDate),
			zap.Int("unseated", report.Unseated))
	}
	for _, branch := range report.EmptyBatches {
		s.logger.Warn("Roll range expanded to nothing",
			zap.String("examDate", examDate),
			zap.String("branch", branch))
	}

	if s.notifier != nil {
		s.notifier.ScheduleDutyNotices(ctx, plan)
	}
	return plan, report, nil
}

// GetPlanByDate returns the stored plan for a date. Reads never regenerate.
func (s *SeatingService) GetPlanByDate(ctx context.Context, examDate string) (*SeatingPlan, error) {
	return s.plans.FindByDate(ctx, examDate)
}

// FindStudentSeat searches one date's plan for a roll number.
func (s *SeatingService) FindStudentSeat(ctx context.Context, examDate, rollNo string) (*SeatLocation, error) {
	plan, err := s.plans.FindByDate(ctx, examDate)
	if err != nil {
		return nil, err
	}
	loc, ok := plan.FindSeat(rollNo)
	if !ok {
		return nil, ErrSeatNotFound
	}
	return loc, nil
}

// ErrSeatNotFound means the roll number is not seated in the date's plan.
var ErrSeatNotFound = errors.New("roll number not found in this exam")

// ListDuties collects a teacher's invigilation assignments across every
// stored plan.
func (s *SeatingService) ListDuties(ctx context.Context, teacherName string) ([]Duty, error) {
	plans, err := s.plans.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var duties []Duty
	for _, plan := range plans {
		duties = append(duties, plan.DutiesFor(teacherName)...)
	}
	return duties, nil
}

var ErrRoomNotInPlan = errors.New("room not part of this plan")
var ErrBadInvigilatorSlot = errors.New("invigilator slot must be 1 or 2")
var ErrBadAttendance = errors.New("attendance must be Present or Absent")

// MarkAttendance records whether an invigilator turned up, the only
// mutation a stored plan supports.
func (s *SeatingService) MarkAttendance(ctx context.Context, examDate, roomNumber string, slot int, status string) (*SeatingPlan, error) {
	if status != AttendancePresent && status != AttendanceAbsent {
		return nil, ErrBadAttendance
	}
	if slot != 1 && slot != 2 {
		return nil, ErrBadInvigilatorSlot
	}

	plan, err := s.plans.FindByDate(ctx, examDate)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range plan.Rooms {
		if plan.Rooms[i].RoomNumber != roomNumber {
			continue
		}
		if slot == 1 {
			plan.Rooms[i].Teachers.Attendance.Invigilator1 = status
		} else {
			plan.Rooms[i].Teachers.Attendance.Invigilator2 = status
		}
		found = true
		break
	}
	if !found {
		return nil, ErrRoomNotInPlan
	}

	if err := s.plans.Replace(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}
