package v1

import (
	"net/http"

	"dental-smile-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ServiceInfo is served on the root path.
type ServiceInfo struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type HealthHandler struct {
	healthUC usecase.HealthUsecase
	info     ServiceInfo
}

func NewHealthHandler(r *gin.Engine, api *gin.RouterGroup, healthUC usecase.HealthUsecase, info ServiceInfo) {
	handler := &HealthHandler{
		healthUC: healthUC,
		info:     info,
	}

	r.GET("/", handler.Info)
	api.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  usecase.HealthStatus
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthUC.Check(c.Request.Context()))
}

// Info godoc
// @Summary      Service metadata
// @Tags         system
// @Produce      json
// @Success      200  {object}  ServiceInfo
// @Router       / [get]
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.info)
}
