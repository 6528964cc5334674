package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tierparse/internal/domain"
	"tierparse/internal/pool"
	"tierparse/internal/scratch"
)

// HealthHandler exposes the read-only service status. It never takes
// a pool slot, so status stays available while pools are saturated.
type HealthHandler struct {
	profile  domain.HardwareProfile
	backends map[domain.Tier]domain.Backend
	pools    map[domain.Tier]*pool.Pool
	store    *scratch.Store
}

// NewHealthHandler creates a new HealthHandler over startup-fixed
// state and the live pools.
func NewHealthHandler(
	profile domain.HardwareProfile,
	backends map[domain.Tier]domain.Backend,
	pools map[domain.Tier]*pool.Pool,
	store *scratch.Store,
) *HealthHandler {
	return &HealthHandler{profile: profile, backends: backends, pools: pools, store: store}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status handles GET /health
// @Summary Service status snapshot
// @Tags health
// @Produce json
// @Success 200 {object} domain.HealthSnapshot
// @Router /health [get]
func (h *HealthHandler) Status(c *gin.Context) {
	snapshot := domain.HealthSnapshot{
		Status:        "ok",
		Hardware:      h.profile,
		Backends:      h.backends,
		Pools:         make(map[domain.Tier]domain.PoolStats, len(h.pools)),
		ScratchActive: h.store.Active(),
	}
	for tier, p := range h.pools {
		snapshot.Pools[tier] = p.Stats()
	}
	c.JSON(http.StatusOK, snapshot)
}
