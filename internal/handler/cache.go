package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/northwind-labs/employee-directory/backend/internal/domain"
)

// The cache is best-effort: a miss or a redis failure just falls through to
// the database, and failures are logged rather than surfaced to the caller.

func employeeCacheKey(id int64) string {
	return fmt.Sprintf("employee_%d", id)
}

func (h *Handler) redisContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
}

func (h *Handler) cachedEmployee(id int64) (*domain.Employee, bool) {
	if h.redisClient == nil {
		return nil, false
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	employee := &domain.Employee{}
	if err := h.redisClient.Get(ctx, employeeCacheKey(id)).Scan(employee); err != nil {
		return nil, false
	}

	return employee, true
}

func (h *Handler) cacheEmployee(employee *domain.Employee) {
	if h.redisClient == nil {
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	expiration := time.Duration(h.config.Redis.CacheExpiration) * time.Second
	if err := h.redisClient.Set(ctx, employeeCacheKey(employee.ID), employee, expiration).Err(); err != nil {
		slog.Error("failed to cache employee", "id", employee.ID, "error", err)
	}
}

func (h *Handler) invalidateEmployee(id int64) {
	if h.redisClient == nil {
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	if err := h.redisClient.Del(ctx, employeeCacheKey(id)).Err(); err != nil {
		slog.Error("failed to invalidate employee cache", "id", id, "error", err)
	}
}
