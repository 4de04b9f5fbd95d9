// Package api wires the HTTP routes of the projection service.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"genomic-storage-cost/internal/api/handlers"
	"genomic-storage-cost/internal/api/middleware"
	"genomic-storage-cost/internal/metrics"
	"genomic-storage-cost/internal/pricing"
	"genomic-storage-cost/internal/projection"
	"genomic-storage-cost/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the router hands to its handlers.
type Deps struct {
	Catalog  *pricing.Catalog
	Store    store.Store
	// Metrics and Gatherer are optional; nil disables instrumentation and /metrics.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger

	CORSAllowedOrigins []string
	// StaticDir holds the built UI; skipped when it does not exist.
	StaticDir string
}

func NewRouter(d Deps) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(d.Logger, d.Metrics))
	router.Use(middleware.ErrorHandler(d.Logger))
	router.Use(middleware.CORS(d.CORSAllowedOrigins))

	engine := projection.New(d.Catalog)
	projectionHandler := handlers.NewProjectionHandler(engine, d.Store, d.Metrics, d.Logger)
	catalogHandler := handlers.NewCatalogHandler(d.Catalog)
	rankHandler := handlers.NewRankHandler(engine, d.Catalog, d.Logger)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/projection", projectionHandler.RunProjection)
		v1.GET("/projection/:id/ledger", projectionHandler.GetLedger)
		v1.POST("/projection/compare", projectionHandler.CompareProjections)

		v1.POST("/rank", rankHandler.RankPairs)

		v1.GET("/storage-classes", catalogHandler.ListStorageClasses)
		v1.GET("/file-formats", catalogHandler.ListFileFormats)
		v1.GET("/destinations", catalogHandler.ListDestinations)
	}

	serveStatic(router, d.StaticDir, d.Logger)
	return router
}

// serveStatic serves the single-page UI, falling back to index.html for
// every non-API route.
func serveStatic(router *gin.Engine, dir string, log zerolog.Logger) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Info().Str("dir", dir).Msg("static directory not found, skipping static file serving")
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	log.Info().Str("dir", dir).Msg("serving static files")
}
