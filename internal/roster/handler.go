package roster

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RosterHandler handles HTTP requests for the teacher roster.
type RosterHandler struct {
	service *RosterService
}

func NewRosterHandler(service *RosterService) *RosterHandler {
	return &RosterHandler{service: service}
}

func (h *RosterHandler) ListTeachers(c echo.Context) error {
	teachers, err := h.service.ListTeachers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch teachers"})
	}
	if teachers == nil {
		teachers = []Teacher{}
	}
	return c.JSON(http.StatusOK, teachers)
}

// UploadTimetable accepts a multipart class timetable CSV plus the year,
// branch and section it belongs to, and merges it into the roster.
func (h *RosterHandler) UploadTimetable(c echo.Context) error {
	fileHeader, err := c.FormFile("csvFile")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please provide CSV file + Year + Branch + Section"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to open uploaded file"})
	}
	defer file.Close()

	result, err := h.service.ImportTimetable(
		c.Request().Context(),
		file,
		c.FormValue("year"),
		c.FormValue("branch"),
		c.FormValue("section"),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrUploadFieldsMissing),
			errors.Is(err, ErrTimetableTooShort),
			errors.Is(err, ErrNoDayRows),
			errors.Is(err, ErrNoTeacherNames):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to import timetable"})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "Timetable uploaded and merged",
		"periodsAdded":  result.PeriodsAdded,
		"totalTeachers": result.TotalTeachers,
	})
}
