package health

import (
	"context"
	"time"

	"residencia-backend/internal/cache"
	"residencia-backend/internal/store"
)

type HealthChecker struct {
	store store.Store
	demo  bool
}

type HealthStatus struct {
	Status string      `json:"status"`
	Mode   string      `json:"mode"`
	Store  StoreHealth `json:"store"`
	Cache  string      `json:"cache"`
}

type StoreHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(s store.Store, demo bool) *HealthChecker {
	return &HealthChecker{store: s, demo: demo}
}

// CheckBasic pings the backing store. Demo mode is always healthy since the
// in-memory state needs no backend. A dead cache never degrades the status,
// it is reported for visibility only.
func (h *HealthChecker) CheckBasic() HealthStatus {
	mode := "live"
	if h.demo {
		mode = "demo"
	}

	storeHealth := h.checkStore()

	status := "healthy"
	if !h.demo && storeHealth.Status != "healthy" {
		status = "unhealthy"
	}

	cacheStatus := "disabled"
	if cache.GetClient() != nil {
		cacheStatus = "unhealthy"
		if cache.IsHealthy() {
			cacheStatus = "healthy"
		}
	}

	return HealthStatus{
		Status: status,
		Mode:   mode,
		Store:  storeHealth,
		Cache:  cacheStatus,
	}
}

func (h *HealthChecker) checkStore() StoreHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StoreHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return StoreHealth{Status: "healthy", ResponseTime: responseTime}
}
