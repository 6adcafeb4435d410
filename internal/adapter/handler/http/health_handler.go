package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports liveness. A broken database still yields 200 so the process
// is not restarted for a store outage; the database field carries the detail.
func (h *HealthHandler) Health(c echo.Context) error {
	database := "connected"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
		database = "disconnected"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
