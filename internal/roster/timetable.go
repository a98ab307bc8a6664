package roster

import (
	"bufio"
	"errors"
	"io"
	"sort"
	"strings"
)

var (
	ErrTimetableTooShort = errors.New("timetable CSV too short or malformed")
	ErrNoDayRows         = errors.New("timetable not found (MON row missing)")
	ErrNoTeacherNames    = errors.New("no teacher names found in CSV")
)

// maxPeriods is the number of teaching periods per day in the institutional
// timetable format.
const maxPeriods = 8

// skipCells are timetable cells that are not subjects.
var skipCells = map[string]bool{"LUNCH": true, "BREAK": true, "—": true, "-": true}

// TimetableImport is the parsed content of one class timetable upload: the
// merged busy periods per teacher, keyed by teacher name.
type TimetableImport struct {
	Teachers     map[string]*TeacherUpdate
	PeriodsAdded int
	SkippedCells []string
}

// TeacherUpdate accumulates the subjects and busy periods a timetable
// contributes to one teacher.
type TeacherUpdate struct {
	TeacherName string
	Subjects    map[string]bool
	BusyPeriods []BusyPeriod
}

type periodRange struct {
	start string
	end   string
}

// ParseTimetable reads a class timetable CSV in the institutional layout:
// the first two non-empty rows hold the period start and end times, a MON
// row opens six day rows of subjects, and the rows after the day block map
// subjects to teacher names. Cells marked LUNCH, BREAK or a dash are not
// periods. Subjects with no teacher mapping are skipped and reported.
//
// year, branch and section tag every busy period so uploads for different
// sections merge instead of clobbering each other.
func ParseTimetable(r io.Reader, year, branch, section string) (*TimetableImport, error) {
	lines, err := nonEmptyLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, ErrTimetableTooShort
	}

	periods := parsePeriodRanges(lines[0], lines[1])

	dayStart := -1
	for i, line := range lines {
		if strings.ToUpper(strings.TrimSpace(cellAt(line, 0))) == "MON" {
			dayStart = i
			break
		}
	}
	if dayStart == -1 {
		return nil, ErrNoDayRows
	}
	dayEnd := dayStart + len(Days)
	if dayEnd > len(lines) {
		dayEnd = len(lines)
	}

	subjectToTeacher := parseSubjectMap(lines[dayEnd:])
	if len(subjectToTeacher) == 0 {
		// Some uploads put the mapping above the day block; fall back to a
		// bottom-up scan of everything past the period rows.
		subjectToTeacher = parseSubjectMapReverse(lines[2:])
	}
	if len(subjectToTeacher) == 0 {
		return nil, ErrNoTeacherNames
	}

	imp := &TimetableImport{Teachers: make(map[string]*TeacherUpdate)}

	for _, line := range lines[dayStart:dayEnd] {
		cells := splitCells(line)
		day := strings.ToUpper(strings.TrimSpace(cellAt(line, 0)))
		if !isDay(day) {
			continue
		}

		for idx := 1; idx <= maxPeriods && idx < len(cells); idx++ {
			subject := strings.TrimSpace(cells[idx])
			if subject == "" || skipCells[strings.ToUpper(subject)] {
				continue
			}

			teacherName := lookupTeacher(subjectToTeacher, subject)
			if teacherName == "" {
				imp.SkippedCells = append(imp.SkippedCells, subject)
				continue
			}

			update := imp.Teachers[teacherName]
			if update == nil {
				update = &TeacherUpdate{TeacherName: teacherName, Subjects: make(map[string]bool)}
				imp.Teachers[teacherName] = update
			}
			update.Subjects[subject] = true

			pr := periodRange{}
			if idx-1 < len(periods) {
				pr = periods[idx-1]
			}
			bp := BusyPeriod{
				Year:      year,
				Branch:    branch,
				Section:   section,
				Day:       day,
				StartTime: pr.start,
				EndTime:   pr.end,
				Subject:   subject,
			}
			if !containsPeriod(update.BusyPeriods, bp) {
				update.BusyPeriods = append(update.BusyPeriods, bp)
				imp.PeriodsAdded++
			}
		}
	}

	return imp, nil
}

// SubjectList returns the update's subjects in sorted order.
func (u *TeacherUpdate) SubjectList() []string {
	subjects := make([]string, 0, len(u.Subjects))
	for s := range u.Subjects {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

func nonEmptyLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.ReplaceAll(scanner.Text(), "\r", "")
		if strings.TrimSpace(strings.ReplaceAll(line, ",", "")) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func cellAt(line string, idx int) string {
	cells := strings.Split(line, ",")
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func parsePeriodRanges(startLine, endLine string) []periodRange {
	starts := splitCells(startLine)
	ends := splitCells(endLine)
	periods := make([]periodRange, 0, maxPeriods)
	for i := 1; i <= maxPeriods; i++ {
		pr := periodRange{}
		if i < len(starts) {
			pr.start = starts[i]
		}
		if i < len(ends) {
			pr.end = ends[i]
		}
		periods = append(periods, pr)
	}
	return periods
}

func parseSubjectMap(lines []string) map[string]string {
	m := make(map[string]string)
	for _, line := range lines {
		cells := splitCells(line)
		if len(cells) < 2 {
			continue
		}
		subject, teacher := cells[0], cells[1]
		if subject != "" && teacher != "" {
			m[strings.ToUpper(subject)] = teacher
		}
	}
	return m
}

func parseSubjectMapReverse(lines []string) map[string]string {
	m := make(map[string]string)
	for i := len(lines) - 1; i >= 0; i-- {
		cells := splitCells(lines[i])
		if len(cells) < 2 {
			continue
		}
		subject, teacher := cells[0], cells[1]
		if subject != "" && teacher != "" && !isDay(strings.ToUpper(subject)) {
			m[strings.ToUpper(subject)] = teacher
		}
	}
	return m
}

// lookupTeacher resolves a timetable cell to a teacher: exact subject match
// first, then the subject's LAB variant, then a substring match in either
// direction.
func lookupTeacher(subjectToTeacher map[string]string, subject string) string {
	su := strings.ToUpper(subject)
	if t, ok := subjectToTeacher[su]; ok {
		return t
	}
	base := strings.TrimSpace(strings.TrimSuffix(su, " LAB"))
	if t, ok := subjectToTeacher[base+" LAB"]; ok {
		return t
	}
	for key, t := range subjectToTeacher {
		if strings.Contains(key, su) || strings.Contains(su, key) {
			return t
		}
	}
	return ""
}

func containsPeriod(periods []BusyPeriod, bp BusyPeriod) bool {
	for _, p := range periods {
		if p.Key() == bp.Key() {
			return true
		}
	}
	return false
}

func isDay(s string) bool {
	for _, d := range Days {
		if s == d {
			return true
		}
	}
	return false
}
