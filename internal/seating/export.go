package seating

import (
	"encoding/csv"
	"io"
	"strconv"
)

var exportHeader = []string{
	"Exam Date", "Room", "Invigilator 1", "Invigilator 2",
	"Row", "Column", "Roll Number", "Branch",
}

// FlattenPlan turns a plan into one record per occupied seat, in room order
// then row-major seat order. Coordinates are 1-indexed for display.
func FlattenPlan(plan *SeatingPlan) [][]string {
	var records [][]string
	for i := range plan.Rooms {
		room := &plan.Rooms[i]
		for r, row := range room.RawTable {
			for c, seat := range row {
				if seat == nil {
					continue
				}
				records = append(records, []string{
					plan.ExamDate,
					room.RoomNumber,
					room.Teachers.Invigilator1,
					room.Teachers.Invigilator2,
					strconv.Itoa(r + 1),
					strconv.Itoa(c + 1),
					seat.RollNo,
					seat.Branch,
				})
			}
		}
	}
	return records
}

// WriteCSV streams the flattened plan as CSV, header row first.
func WriteCSV(w io.Writer, plan *SeatingPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(FlattenPlan(plan)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
