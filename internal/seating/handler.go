package seating

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"ExamSeatAllocator/internal/auth"
)

// SeatingHandler handles HTTP requests for plan generation, lookup, seat
// search, duties and export.
type SeatingHandler struct {
	service *SeatingService
}

func NewSeatingHandler(service *SeatingService) *SeatingHandler {
	return &SeatingHandler{service: service}
}

// GenerateRequest asks for a plan for one exam date.
type GenerateRequest struct {
	ExamDate string `json:"examDate" validate:"required"`
}

// AttendanceRequest marks one invigilator slot of one room.
type AttendanceRequest struct {
	RoomNumber  string `json:"roomNumber" validate:"required"`
	Invigilator int    `json:"invigilator" validate:"required,oneof=1 2"`
	Attendance  string `json:"attendance" validate:"required,oneof=Present Absent"`
}

func (h *SeatingHandler) GeneratePlan(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	plan, report, err := h.service.GeneratePlan(c.Request().Context(), req.ExamDate)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingData):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing data"})
		case errors.Is(err, ErrBadExamDate), errors.Is(err, ErrBadExamTime):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":     true,
		"seatingPlan": plan.Rooms,
		"generatedAt": plan.GeneratedAt,
		"report":      report,
	})
}

func (h *SeatingHandler) GetPlanByDate(c echo.Context) error {
	examDate := c.Param("examDate")
	if examDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Exam date required"})
	}

	plan, err := h.service.GetPlanByDate(c.Request().Context(), examDate)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("No seating plan found for date %s", examDate),
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch seating plan"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"seatingPlan": plan.Rooms,
		"generatedAt": plan.GeneratedAt,
	})
}

// SearchStudentSeat answers "where do I sit": exam date + roll number in the
// query string, room and 1-indexed coordinates out.
func (h *SeatingHandler) SearchStudentSeat(c echo.Context) error {
	rollNo := c.QueryParam("rollNo")
	examDate := c.QueryParam("examDate")
	if rollNo == "" || examDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "rollNo and examDate are required"})
	}

	loc, err := h.service.FindStudentSeat(c.Request().Context(), examDate, rollNo)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Seating plan not found for this exam date"})
		case errors.Is(err, ErrSeatNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Roll number not found in this exam"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to search seating plan"})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": loc})
}

// ListDuties returns the calling teacher's invigilation assignments across
// all plans. The teacher is identified by the name in their JWT claims.
func (h *SeatingHandler) ListDuties(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.JWTClaims)
	if !ok || claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing user claims"})
	}

	duties, err := h.service.ListDuties(c.Request().Context(), claims.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch duties"})
	}
	if len(duties) == 0 {
		return c.JSON(http.StatusOK, map[string]string{"message": "No invigilation duties assigned"})
	}
	return c.JSON(http.StatusOK, duties)
}

func (h *SeatingHandler) MarkAttendance(c echo.Context) error {
	examDate := c.Param("examDate")
	var req AttendanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	plan, err := h.service.MarkAttendance(c.Request().Context(), examDate, req.RoomNumber, req.Invigilator, req.Attendance)
	if err != nil {
		switch {
		case errors.Is(err, ErrPlanNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Seating plan not found"})
		case errors.Is(err, ErrRoomNotInPlan):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not part of this plan"})
		case errors.Is(err, ErrBadInvigilatorSlot), errors.Is(err, ErrBadAttendance):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update attendance"})
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "seatingPlan": plan.Rooms})
}

// ExportCSV streams the date's plan as a row-per-seat CSV attachment.
func (h *SeatingHandler) ExportCSV(c echo.Context) error {
	examDate := c.QueryParam("examDate")
	if examDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Exam date required"})
	}

	plan, err := h.service.GetPlanByDate(c.Request().Context(), examDate)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Seating plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Export failed"})
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, plan); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Export failed"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="seating_%s.csv"`, examDate))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
