package handlers

import (
	"net/http"
	"strconv"
	"time"

	"genomic-storage-cost/internal/api/models"
	"genomic-storage-cost/internal/config"
	"genomic-storage-cost/internal/metrics"
	"genomic-storage-cost/internal/model"
	"genomic-storage-cost/internal/projection"
	"genomic-storage-cost/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProjectionHandler handles projection-related requests
type ProjectionHandler struct {
	engine  *projection.Engine
	store   store.Store
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewProjectionHandler creates a new projection handler
func NewProjectionHandler(engine *projection.Engine, st store.Store, m *metrics.Metrics, log zerolog.Logger) *ProjectionHandler {
	return &ProjectionHandler{
		engine:  engine,
		store:   st,
		metrics: m,
		log:     log.With().Str("component", "projection").Logger(),
	}
}

// RunProjection handles POST /api/v1/projection
func (h *ProjectionHandler) RunProjection(c *gin.Context) {
	var req models.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	sc, scenario, err := scenarioFrom(toConfig(req.Scenario))
	if err != nil {
		writeRunError(c, err)
		return
	}

	result, series, err := h.run(scenario)
	if err != nil {
		writeRunError(c, err)
		return
	}

	response := models.ProjectionResponse{
		Status:  "completed",
		Series:  buildSeries(series),
		Summary: buildSummary(series, len(result.Ledger)),
	}
	if req.Options.IncludeLedger {
		response.Ledger = convertLedger(result.Ledger)
	}

	// Store failures are logged; the response just has no id.
	rec := store.Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Scenario:  sc,
		Ledger:    result.Ledger,
	}
	if err := h.store.Put(c.Request.Context(), rec); err != nil {
		h.metrics.RecordStoreError("put")
		h.log.Warn().Err(err).Msg("failed to store projection result")
	} else {
		response.ID = rec.ID
	}

	h.log.Debug().
		Str("id", response.ID).
		Int("months", len(result.Ledger)).
		Float64("lifetime_cost", result.LifetimeCost).
		Msg("projection completed")

	c.JSON(http.StatusOK, response)
}

// GetLedger handles GET /api/v1/projection/:id/ledger
// Query: interval=1|12 (default 1), format=json|csv (default json).
func (h *ProjectionHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")

	interval := 1
	if s := c.Query("interval"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || (n != 1 && n != model.StepsPerYear) {
			writeError(c, http.StatusBadRequest, "INVALID_PARAM", "interval must be 1 or 12", map[string]interface{}{"interval": s})
			return
		}
		interval = n
	}
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		writeError(c, http.StatusBadRequest, "INVALID_PARAM", "format must be json or csv", map[string]interface{}{"format": format})
		return
	}

	rec, ok, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.metrics.RecordStoreError("get")
		h.log.Error().Err(err).Str("id", id).Msg("failed to read projection result")
		writeError(c, http.StatusInternalServerError, "STORE_ERROR", "could not read stored result", nil)
		return
	}
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "projection not found or expired", map[string]interface{}{"id": id})
		return
	}

	ledger, err := projection.ResampleLedger(rec.Ledger, interval)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "PROJECTION_ERROR", err.Error(), nil)
		return
	}

	if format == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="ledger-`+rec.ID+`.csv"`)
		c.Status(http.StatusOK)
		if err := projection.WriteLedger(c.Writer, ledger); err != nil {
			h.log.Error().Err(err).Str("id", id).Msg("failed to write ledger csv")
		}
		return
	}

	c.JSON(http.StatusOK, models.LedgerResponse{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		Interval:  interval,
		Ledger:    convertLedger(ledger),
	})
}

// CompareProjections handles POST /api/v1/projection/compare
func (h *ProjectionHandler) CompareProjections(c *gin.Context) {
	var req models.CompareProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	base := toConfig(req.Base)
	comparison := make([]models.ComparisonResult, 0, len(req.Variations))

	for _, variation := range req.Variations {
		// Merge base config with variation
		merged := config.MergeScenario(base, toConfig(variation.Scenario))
		comparison = append(comparison, h.compareOne(variation.Name, merged))
	}

	c.JSON(http.StatusOK, models.CompareProjectionResponse{Comparison: comparison})
}

func (h *ProjectionHandler) compareOne(name string, sc config.ScenarioConfig) models.ComparisonResult {
	entry := models.ComparisonResult{Name: name}
	_, scenario, err := scenarioFrom(sc)
	if err != nil {
		_, detail := runErrorDetail(err)
		entry.Error = &detail
		return entry
	}
	result, series, err := h.run(scenario)
	if err != nil {
		_, detail := runErrorDetail(err)
		entry.Error = &detail
		return entry
	}
	summary := buildSummary(series, len(result.Ledger))
	entry.Summary = &summary
	return entry
}

// run executes one projection and records its metrics.
func (h *ProjectionHandler) run(s model.Scenario) (*projection.Result, *projection.Series, error) {
	start := time.Now()
	result, err := h.engine.Run(s)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		outcome := metrics.OutcomeError
		if _, ok := model.AsConfigError(err); ok {
			outcome = metrics.OutcomeConfigError
		} else {
			h.log.Error().Err(err).Msg("projection failed")
		}
		h.metrics.RecordRun(outcome, elapsed, 0)
		return nil, nil, err
	}
	h.metrics.RecordRun(metrics.OutcomeOK, elapsed, len(result.Ledger))

	series, err := projection.BuildSeries(result, s.Interval)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build series")
		return nil, nil, err
	}
	return result, series, nil
}
