package notification

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"ExamSeatAllocator/internal/auth"
	"ExamSeatAllocator/internal/config"
	"ExamSeatAllocator/internal/seating"
)

// Service schedules duty-notice emails when a plan is generated and delivers
// the due ones from the background scheduler. It satisfies
// seating.DutyNotifier.
type Service struct {
	repo         *NoticeRepository
	emailService *config.EmailService
	userRepo     *auth.UserRepository
	logger       *zap.Logger
}

// NewService creates a new notification Service.
func NewService(repo *NoticeRepository, emailService *config.EmailService, userRepo *auth.UserRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, emailService: emailService, userRepo: userRepo, logger: logger}
}

// ScheduleDutyNotices records one notice per assigned invigilator of the
// plan. TBD slots are skipped. Errors are logged and swallowed: plan
// generation must never fail because of notification bookkeeping.
func (s *Service) ScheduleDutyNotices(ctx context.Context, plan *seating.SeatingPlan) {
	// Existing scheduled notices for the date belong to the plan this one
	// replaced.
	if err := s.repo.DeleteByExamDate(ctx, plan.ExamDate); err != nil {
		s.logger.Warn("failed to clear stale duty notices",
			zap.String("examDate", plan.ExamDate), zap.Error(err))
	}

	now := time.Now()
	for i := range plan.Rooms {
		room := &plan.Rooms[i]
		for _, name := range []string{room.Teachers.Invigilator1, room.Teachers.Invigilator2} {
			if name == "" || name == seating.InvigilatorTBD {
				continue
			}
			notice := &DutyNotice{
				TeacherName: name,
				ExamDate:    plan.ExamDate,
				RoomNumber:  room.RoomNumber,
				RoomInfo:    room.RoomInfo,
				Message: fmt.Sprintf("You have been assigned invigilation duty on %s in room %s (%s).",
					plan.ExamDate, room.RoomNumber, room.RoomInfo),
				SendTime:  now,
				Status:    StatusScheduled,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.CreateNotice(ctx, notice); err != nil {
				s.logger.Warn("failed to schedule duty notice",
					zap.String("teacher", name),
					zap.String("examDate", plan.ExamDate),
					zap.Error(err))
			}
		}
	}
}

// SendDueNotices finds and delivers all notices that are due.
func (s *Service) SendDueNotices(ctx context.Context) {
	notices, err := s.repo.FindPending(ctx)
	if err != nil {
		s.logger.Error("failed to fetch pending duty notices", zap.Error(err))
		return
	}
	for _, n := range notices {
		sentTo, err := s.deliver(ctx, n)
		if err != nil {
			s.logger.Warn("duty notice skipped",
				zap.String("teacher", n.TeacherName),
				zap.String("examDate", n.ExamDate),
				zap.Error(err))
			s.repo.UpdateStatus(ctx, n.ID, StatusSkipped, "")
			continue
		}
		s.logger.Info("duty notice sent",
			zap.String("teacher", n.TeacherName),
			zap.String("email", sentTo),
			zap.String("examDate", n.ExamDate))
		s.repo.UpdateStatus(ctx, n.ID, StatusSent, sentTo)
	}
}

// deliver resolves the teacher's registered email and sends the notice.
func (s *Service) deliver(ctx context.Context, n *DutyNotice) (string, error) {
	user, err := s.userRepo.FindByName(ctx, n.TeacherName)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("no registered account for teacher %q", n.TeacherName)
	}

	subject := os.Getenv("DUTY_EMAIL_SUBJECT")
	if subject == "" {
		subject = "Invigilation duty assignment"
	}
	if err := s.emailService.SendEmail(user.Email, subject, n.Message); err != nil {
		return "", err
	}
	return user.Email, nil
}

// ListForTeacher returns a teacher's duty notices, newest first.
func (s *Service) ListForTeacher(ctx context.Context, teacherName string) ([]*DutyNotice, error) {
	return s.repo.FindByTeacher(ctx, teacherName)
}
