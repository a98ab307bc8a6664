package catalog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogHandler handles HTTP requests for rooms, student batches and exams.
type CatalogHandler struct {
	service *CatalogService
}

func NewCatalogHandler(service *CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RoomRequest is the admin payload for creating or updating a room.
// Capacity is never accepted from the client; it is derived.
type RoomRequest struct {
	BlockName  string `json:"blockName" validate:"required"`
	FloorNo    int    `json:"floorNo" validate:"min=0"`
	RoomNumber string `json:"roomNumber" validate:"required"`
	Rows       int    `json:"rows" validate:"required,min=1"`
	Columns    int    `json:"columns" validate:"required,min=1"`
}

// BatchRequest is the admin payload for creating or updating a student
// batch.
type BatchRequest struct {
	Branch           string   `json:"branch" validate:"required"`
	Year             int      `json:"year" validate:"required,min=1"`
	RegularStartRoll string   `json:"regularStartRoll"`
	RegularEndRoll   string   `json:"regularEndRoll"`
	LateralStartRoll string   `json:"lateralStartRoll"`
	LateralEndRoll   string   `json:"lateralEndRoll"`
	DetainedRolls    []string `json:"detainedRolls"`
}

func (h *CatalogHandler) CreateRoom(c echo.Context) error {
	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room := &Room{
		BlockName:  req.BlockName,
		FloorNo:    req.FloorNo,
		RoomNumber: req.RoomNumber,
		Rows:       req.Rows,
		Columns:    req.Columns,
	}
	if err := h.service.CreateRoom(c.Request().Context(), room); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create room"})
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *CatalogHandler) ListRooms(c echo.Context) error {
	rooms, err := h.service.ListRooms(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch rooms"})
	}
	if rooms == nil {
		rooms = []Room{}
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *CatalogHandler) UpdateRoom(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid room ID"})
	}
	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room := &Room{
		BlockName:  req.BlockName,
		FloorNo:    req.FloorNo,
		RoomNumber: req.RoomNumber,
		Rows:       req.Rows,
		Columns:    req.Columns,
	}
	if err := h.service.UpdateRoom(c.Request().Context(), id, room); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update room"})
	}
	return c.JSON(http.StatusOK, room)
}

func (h *CatalogHandler) DeleteRoom(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid room ID"})
	}
	if err := h.service.DeleteRoom(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete room"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Room deleted successfully"})
}

func (h *CatalogHandler) CreateBatch(c echo.Context) error {
	var req BatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	batch := &StudentBatch{
		Branch:           req.Branch,
		Year:             req.Year,
		RegularStartRoll: req.RegularStartRoll,
		RegularEndRoll:   req.RegularEndRoll,
		LateralStartRoll: req.LateralStartRoll,
		LateralEndRoll:   req.LateralEndRoll,
		DetainedRolls:    req.DetainedRolls,
	}
	if err := h.service.CreateBatch(c.Request().Context(), batch); err != nil {
		if errors.Is(err, ErrRangeIncomplete) || errors.Is(err, ErrSchemeMismatch) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create batch"})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"message": "Batch added", "data": batch})
}

func (h *CatalogHandler) ListBatches(c echo.Context) error {
	batches, err := h.service.ListBatches(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch batches"})
	}
	if batches == nil {
		batches = []StudentBatch{}
	}
	return c.JSON(http.StatusOK, batches)
}

func (h *CatalogHandler) UpdateBatch(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid batch ID"})
	}
	var req BatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	batch := &StudentBatch{
		Branch:           req.Branch,
		Year:             req.Year,
		RegularStartRoll: req.RegularStartRoll,
		RegularEndRoll:   req.RegularEndRoll,
		LateralStartRoll: req.LateralStartRoll,
		LateralEndRoll:   req.LateralEndRoll,
		DetainedRolls:    req.DetainedRolls,
	}
	if err := h.service.UpdateBatch(c.Request().Context(), id, batch); err != nil {
		switch {
		case errors.Is(err, ErrBatchNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Batch not found"})
		case errors.Is(err, ErrRangeIncomplete), errors.Is(err, ErrSchemeMismatch):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update batch"})
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "Batch updated", "data": batch})
}

func (h *CatalogHandler) DeleteBatch(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid batch ID"})
	}
	if err := h.service.DeleteBatch(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrBatchNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Batch not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete batch"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}

// UploadExamTimetable accepts a multipart CSV upload plus the shared exam
// fields and inserts one exam record per branch/date cell.
func (h *CatalogHandler) UploadExamTimetable(c echo.Context) error {
	fileHeader, err := c.FormFile("csvFile")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to open uploaded file"})
	}
	defer file.Close()

	inserted, err := h.service.ImportExamTimetable(
		c.Request().Context(),
		file,
		c.FormValue("examType"),
		c.FormValue("examYear"),
		c.FormValue("examTime"),
	)
	if err != nil {
		if errors.Is(err, ErrNoBranchColumn) || errors.Is(err, ErrNoExamRows) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to import exam timetable"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "CSV uploaded and processed successfully",
		"inserted": inserted,
	})
}

func (h *CatalogHandler) ListExams(c echo.Context) error {
	exams, err := h.service.ListExams(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch exams"})
	}
	if exams == nil {
		exams = []Exam{}
	}
	return c.JSON(http.StatusOK, exams)
}

func (h *CatalogHandler) ScheduleByDate(c echo.Context) error {
	schedule, err := h.service.ScheduleByDate(c.Request().Context(), c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch schedule"})
	}
	if schedule == nil {
		schedule = []ScheduleEntry{}
	}
	return c.JSON(http.StatusOK, schedule)
}
