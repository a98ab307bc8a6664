package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var (
	ErrNoBranchColumn = errors.New("timetable CSV has no Branch column")
	ErrNoExamRows     = errors.New("timetable CSV contains no valid rows")
)

// ParseExamTimetable reads the exam timetable CSV the admin uploads: a
// header row holding a "Branch" column plus one column per exam date, and
// one row per branch whose cells are the subject examined on that date.
// Empty cells mean the branch has no exam that day. Every populated cell
// becomes one Exam record carrying the shared type/year/time fields.
func ParseExamTimetable(r io.Reader, examType string, examYear int, examTime string) ([]Exam, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrNoExamRows
	}

	header := records[0]
	branchCol := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "Branch") {
			branchCol = i
			break
		}
	}
	if branchCol == -1 {
		return nil, ErrNoBranchColumn
	}

	var exams []Exam
	for _, row := range records[1:] {
		if branchCol >= len(row) {
			continue
		}
		branch := strings.TrimSpace(row[branchCol])
		if branch == "" {
			continue
		}
		for i, cell := range row {
			if i == branchCol || i >= len(header) {
				continue
			}
			subject := strings.TrimSpace(cell)
			date := strings.TrimSpace(header[i])
			if subject == "" || date == "" {
				continue
			}
			exams = append(exams, Exam{
				ExamType: examType,
				ExamYear: examYear,
				ExamDate: date,
				ExamTime: examTime,
				Branch:   branch,
				Subject:  subject,
			})
		}
	}
	if len(exams) == 0 {
		return nil, ErrNoExamRows
	}
	return exams, nil
}
