package notification

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"ExamSeatAllocator/internal/auth"
)

// Handler handles HTTP requests for duty notices.
type Handler struct {
	service *Service
}

// NewHandler creates a new notification Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListMyNotices returns the authenticated teacher's duty notices.
func (h *Handler) ListMyNotices(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.JWTClaims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
	}

	notices, err := h.service.ListForTeacher(context.Background(), claims.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch notices"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"notices": notices,
	})
}
