package handlers

import (
	"net/http"

	"genomic-storage-cost/internal/api/models"
	"genomic-storage-cost/internal/model"
	"genomic-storage-cost/internal/pricing"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the menus the UI needs to build a scenario form
type CatalogHandler struct {
	catalog *pricing.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *pricing.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListStorageClasses handles GET /api/v1/storage-classes
func (h *CatalogHandler) ListStorageClasses(c *gin.Context) {
	classes := h.catalog.StorageClasses()
	out := make([]models.StorageClassInfo, 0, len(classes))
	for _, sc := range classes {
		out = append(out, models.StorageClassInfo{
			ID:                  sc.ID,
			Name:                sc.Name,
			Provider:            sc.Provider,
			Storage:             convertSchedule(sc.Storage),
			RetrievalPerGB:      sc.RetrievalPerGB,
			RetrievalPerRequest: sc.RetrievalPerRequest,
		})
	}
	c.JSON(http.StatusOK, gin.H{"storage_classes": out})
}

// ListFileFormats handles GET /api/v1/file-formats
func (h *CatalogHandler) ListFileFormats(c *gin.Context) {
	formats := model.FileFormats()
	out := make([]models.FileFormatInfo, 0, len(formats))
	for _, f := range formats {
		m, err := f.Compression()
		if err != nil {
			continue
		}
		out = append(out, models.FileFormatInfo{ID: string(f), Compression: m})
	}
	c.JSON(http.StatusOK, gin.H{"file_formats": out})
}

// ListDestinations handles GET /api/v1/destinations
func (h *CatalogHandler) ListDestinations(c *gin.Context) {
	byDest := make(map[pricing.Destination][]models.EgressInfo)
	for _, e := range h.catalog.EgressRates() {
		byDest[e.Destination] = append(byDest[e.Destination], models.EgressInfo{
			Provider: e.Provider,
			Schedule: convertSchedule(e.Schedule),
		})
	}

	out := make([]models.DestinationInfo, 0, len(pricing.Destinations()))
	for _, d := range pricing.Destinations() {
		egress := byDest[d]
		if egress == nil {
			egress = []models.EgressInfo{}
		}
		out = append(out, models.DestinationInfo{ID: string(d), Egress: egress})
	}
	c.JSON(http.StatusOK, gin.H{"destinations": out})
}
