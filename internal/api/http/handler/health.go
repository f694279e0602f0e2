package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"messaging-back/internal/model"
)

type HealthService interface {
	Check(ctx context.Context) (*model.Health, error)
}

type HealthHandler struct {
	BaseHandler

	log *zap.Logger
	svc HealthService
}

func NewHealthHandler(log *zap.Logger, svc HealthService) *HealthHandler {
	return &HealthHandler{
		BaseHandler: BaseHandler{},
		log:         log,
		svc:         svc,
	}
}

// Ping
// @Summary Liveness probe.
// @Description Returns "pong".
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseWithMessage "Success"
// @Router /health/ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, ResponseWithMessage{
		Status:  StatusSuccess,
		Message: "pong",
	})
}

// Health
// @Summary Readiness probe.
// @Description Database reachability, outbox backlog and live socket count.
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseWithData{data=model.Health} "Success"
// @Failure 503 {object} ResponseWithData{data=model.Health} "Storage unavailable"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	health, err := h.svc.Check(ctx)
	if err != nil {
		h.log.Warn("Health check failed", zap.Error(err))

		c.JSON(http.StatusServiceUnavailable, ResponseWithData{
			Status: StatusNotAvailable,
			Data:   health,
		})

		return
	}

	c.JSON(http.StatusOK, ResponseWithData{
		Status: StatusSuccess,
		Data:   health,
	})
}
