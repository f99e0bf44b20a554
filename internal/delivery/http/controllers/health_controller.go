package controllers

import (
	"net/http"

	"devevent/internal/database"
	"devevent/internal/delivery/http/helpers"
)

// DatabaseStatus reports the current connection state of the database manager.
type DatabaseStatus interface {
	State() database.State
}

// HealthResponse is the data payload for GET /healthz (200).
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthSuccessResponse is the success response envelope for GET /healthz (200).
type HealthSuccessResponse struct {
	Data  HealthResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type HealthController struct {
	Database DatabaseStatus
}

func NewHealthController(db DatabaseStatus) *HealthController {
	return &HealthController{Database: db}
}

// Health godoc
// @Summary Service health
// @Description Returns ok and the database connection state. The database connects lazily, so "unconnected" before the first request is normal.
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthSuccessResponse "data contains status and database state"
// @Router /healthz [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Database: c.Database.State().String(),
	})
}
