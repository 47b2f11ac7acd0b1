// Package health reports liveness of the service and its dependencies.
package health

import (
	"context"
	"time"

	"assettrack-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const checkTimeout = 3 * time.Second

// Handlers serves the health endpoints.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

type status struct {
	Status   string            `json:"status"`
	Uptime   string            `json:"uptime"`
	Services map[string]string `json:"services"`
}

var startedAt = time.Now()

// JSON returns overall health plus per-dependency status. Degraded
// dependencies turn the overall status "degraded" but still return 200; the
// caller decides what to do with a partial outage.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), checkTimeout)
	defer cancel()

	s := status{
		Status:   "ok",
		Uptime:   time.Since(startedAt).Round(time.Second).String(),
		Services: map[string]string{},
	}

	s.Services["database"] = h.checkDB(ctx)
	s.Services["redis"] = h.checkRedis(ctx)
	for _, v := range s.Services {
		if v != "ok" && v != "disabled" {
			s.Status = "degraded"
		}
	}

	return response.Success(c, "Health check", s, nil)
}

// Live is the bare liveness endpoint.
func (h *Handlers) Live(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handlers) checkDB(ctx context.Context) string {
	if h.DB == nil {
		return "disabled"
	}
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func (h *Handlers) checkRedis(ctx context.Context) string {
	if h.Rdb == nil {
		return "disabled"
	}
	if err := h.Rdb.Ping(ctx).Err(); err != nil {
		return err.Error()
	}
	return "ok"
}
