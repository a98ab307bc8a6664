package roster

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// RosterService handles business logic for the teacher roster and
// timetable imports.
type RosterService struct {
	repo   *TeacherRepository
	logger *zap.Logger
}

func NewRosterService(repo *TeacherRepository, logger *zap.Logger) *RosterService {
	return &RosterService{repo: repo, logger: logger}
}

func (s *RosterService) ListTeachers(ctx context.Context) ([]Teacher, error) {
	return s.repo.FindAll(ctx)
}

// ImportResult summarizes a timetable upload.
type ImportResult struct {
	PeriodsAdded  int      `json:"periodsAdded"`
	TotalTeachers int      `json:"totalTeachers"`
	SkippedCells  []string `json:"skippedCells,omitempty"`
}

var ErrUploadFieldsMissing = errors.New("year, branch and section are required")

// ImportTimetable parses a class timetable CSV and merges its busy periods
// into the roster: existing teachers keep the periods from prior uploads,
// duplicates on (year, branch, section, day, start, end) are dropped, and
// unknown teachers are created.
func (s *RosterService) ImportTimetable(ctx context.Context, file io.Reader, year, branch, section string) (*ImportResult, error) {
	year = strings.TrimSpace(year)
	branch = strings.ToUpper(strings.TrimSpace(branch))
	section = strings.ToUpper(strings.TrimSpace(section))
	if year == "" || branch == "" || section == "" {
		return nil, ErrUploadFieldsMissing
	}

	imp, err := ParseTimetable(file, year, branch, section)
	if err != nil {
		return nil, err
	}
	for _, cell := range imp.SkippedCells {
		s.logger.Warn("Unknown subject skipped", zap.String("subject", cell))
	}

	periodsAdded := 0
	for name, update := range imp.Teachers {
		merged := Teacher{TeacherName: name}

		existing, err := s.repo.FindByName(ctx, name)
		if err != nil && !errors.Is(err, ErrTeacherNotFound) {
			return nil, err
		}

		subjects := make(map[string]bool)
		if existing != nil {
			merged.BusyPeriods = append(merged.BusyPeriods, existing.BusyPeriods...)
			for _, subj := range existing.Subjects {
				subjects[subj] = true
			}
		}
		for subj := range update.Subjects {
			subjects[subj] = true
		}
		merged.Subjects = sortedKeys(subjects)

		for _, bp := range update.BusyPeriods {
			if !containsPeriod(merged.BusyPeriods, bp) {
				merged.BusyPeriods = append(merged.BusyPeriods, bp)
				periodsAdded++
			}
		}

		if err := s.repo.Upsert(ctx, &merged); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Timetable imported",
		zap.String("year", year),
		zap.String("branch", branch),
		zap.String("section", section),
		zap.Int("periodsAdded", periodsAdded),
		zap.Int("teachers", len(imp.Teachers)))

	return &ImportResult{
		PeriodsAdded:  periodsAdded,
		TotalTeachers: len(imp.Teachers),
		SkippedCells:  imp.SkippedCells,
	}, nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Stable subject ordering keeps repeated uploads idempotent.
	sort.Strings(keys)
	return keys
}
