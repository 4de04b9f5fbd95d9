package handlers

import (
	"net/http"

	"genomic-storage-cost/internal/analysis"
	"genomic-storage-cost/internal/api/models"
	"genomic-storage-cost/internal/pricing"
	"genomic-storage-cost/internal/projection"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultRankLimit = 10

// RankHandler handles ranking-related requests
type RankHandler struct {
	engine  *projection.Engine
	catalog *pricing.Catalog
	log     zerolog.Logger
}

// NewRankHandler creates a new rank handler
func NewRankHandler(engine *projection.Engine, catalog *pricing.Catalog, log zerolog.Logger) *RankHandler {
	return &RankHandler{
		engine:  engine,
		catalog: catalog,
		log:     log.With().Str("component", "rank").Logger(),
	}
}

// RankPairs handles POST /api/v1/rank
func (h *RankHandler) RankPairs(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	_, scenario, err := scenarioFrom(toConfig(req.Scenario))
	if err != nil {
		writeRunError(c, err)
		return
	}

	ranked, err := analysis.RankTierPairs(h.engine, h.catalog, scenario)
	if err != nil {
		h.log.Debug().Err(err).Msg("ranking failed")
		writeRunError(c, err)
		return
	}

	// Apply limit
	limit := req.Limit
	if limit <= 0 {
		limit = defaultRankLimit
	}
	total := len(ranked)
	if limit > total {
		limit = total
	}
	ranked = ranked[:limit]

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:         r.Rank,
			Tier1:        r.Tier1,
			Tier2:        r.Tier2,
			LifetimeCost: r.LifetimeCost,
			StorageCost:  r.StorageCost,
			ReaccessCost: r.ReaccessCost,
			CostPerTest:  r.CostPerTest,
			PeakStoredGB: r.PeakStoredGB,
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings, Total: total})
}
