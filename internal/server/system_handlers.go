package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/modules/session"
)

// SystemHandlers serves liveness and host metrics endpoints.
type SystemHandlers struct {
	log       zerolog.Logger
	cacheDB   *database.DB
	sessions  *session.Manager
	startedAt time.Time
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(log zerolog.Logger, cacheDB *database.DB, sessions *session.Manager) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		cacheDB:   cacheDB,
		sessions:  sessions,
		startedAt: time.Now(),
	}
}

// HandleHealth handles GET /api/health
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	cacheStatus := "ok"
	httpStatus := http.StatusOK

	if h.cacheDB != nil {
		if err := h.cacheDB.QuickCheck(r.Context()); err != nil {
			h.log.Error().Err(err).Msg("Price cache health check failed")
			status = "degraded"
			cacheStatus = err.Error()
			httpStatus = http.StatusServiceUnavailable
		}
	}

	h.writeJSON(w, httpStatus, map[string]interface{}{
		"data": map[string]interface{}{
			"status":         status,
			"price_cache":    cacheStatus,
			"live_sessions":  h.sessions.Count(),
			"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleSystemInfo handles GET /api/system/info
func (h *SystemHandlers) HandleSystemInfo(w http.ResponseWriter, r *http.Request) {
	cpuAvg, ramPct := h.getSystemStats()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"cpu_percent":    cpuAvg,
			"ram_percent":    ramPct,
			"goroutines":     runtime.NumGoroutine(),
			"go_version":     runtime.Version(),
			"heap_alloc_mb":  float64(memStats.HeapAlloc) / 1024 / 1024,
			"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// getSystemStats calculates CPU and RAM usage percentages. A short
// sampling interval keeps the endpoint responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
