package handler

import (
	"net/http"
	"runtime"
	"time"

	"terreins-inventory-api/internal/repository"
	"terreins-inventory-api/internal/service"
	"terreins-inventory-api/pkg/response"
)

// AdminHandler exposes runtime and store statistics.
type AdminHandler struct {
	partRepo    repository.PartRepository
	inventory   *service.InventoryService
	storageType string
	cacheType   string
	startTime   time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(partRepo repository.PartRepository, inventory *service.InventoryService, storageType, cacheType string) *AdminHandler {
	return &AdminHandler{
		partRepo:    partRepo,
		inventory:   inventory,
		storageType: storageType,
		cacheType:   cacheType,
		startTime:   time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := make(map[string]interface{})

	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["server_time"] = time.Now().Format(time.RFC3339)
	stats["storage_type"] = h.storageType
	stats["cache_type"] = h.cacheType
	stats["store_version"] = h.inventory.Version()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":   float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":     float64(memStats.Sys) / 1024 / 1024,
		"num_gc":     memStats.NumGC,
		"goroutines": runtime.NumGoroutine(),
	}

	if h.partRepo != nil {
		repoStats, err := h.partRepo.Stats(ctx)
		if err == nil {
			stats["store"] = repoStats
		} else {
			stats["store"] = map[string]interface{}{"error": err.Error()}
		}
	}

	response.OK(w, stats)
}
