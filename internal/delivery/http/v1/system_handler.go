package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
)

type SystemHandler struct {
	healthUC domain.HealthUsecase
	seedUC   domain.SeedUsecase
}

// HealthCheck godoc
// @Summary      Service health
// @Description  Pings the database and, when configured, Redis
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.HealthStatus}
// @Failure      503  {object}  response.Response{data=domain.HealthStatus}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	if status.Status != domain.HealthStatusHealthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Message: "Service unhealthy",
			Data:    status,
		})
		return
	}

	response.Success(c, http.StatusOK, "System operational", status)
}

// Seed godoc
// @Summary      Reset the database to the fixture dataset
// @Description  Development only. Truncates every table first.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.SeedSummary}
// @Failure      403  {object}  response.Response
// @Router       /seed [post]
// @Security     BearerAuth
func (h *SystemHandler) Seed(c *gin.Context) {
	summary, err := h.seedUC.Seed(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Database seeded", summary)
}
