package handler

import (
	"context"
	"time"

	"roadmap-checkup/internal/domain"
	"roadmap-checkup/internal/dto"
	"roadmap-checkup/internal/logger"
	"roadmap-checkup/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// HealthHandler reports liveness of the catalog and the session store.
type HealthHandler struct {
	catalogService service.CatalogService
	sessionCache   domain.Cache
}

func NewHealthHandler(catalogService service.CatalogService, sessionCache domain.Cache) *HealthHandler {
	return &HealthHandler{
		catalogService: catalogService,
		sessionCache:   sessionCache,
	}
}

// Health godoc
// @Summary Liveness check
// @Description 503 when the session store does not answer a ping
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:       "ok",
		Catalog:      h.catalogService.Current().Status,
		SessionStore: "ok",
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
	defer cancel()
	if err := h.sessionCache.Ping(ctx); err != nil {
		logger.Get().Warn("Session store ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.SessionStore = "unavailable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
