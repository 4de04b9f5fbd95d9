package handlers

import (
	"errors"
	"net/http"

	"genomic-storage-cost/internal/api/models"
	"genomic-storage-cost/internal/config"
	"genomic-storage-cost/internal/model"
	"genomic-storage-cost/internal/pricing"
	"genomic-storage-cost/internal/projection"

	"github.com/gin-gonic/gin"
)

func toConfig(p models.ScenarioParams) config.ScenarioConfig {
	out := config.ScenarioConfig{
		FileFormat:    p.FileFormat,
		GrowthPercent: p.GrowthPercent,
		Tier1:         config.TierConfig{StorageClass: p.Tier1.StorageClass, RetentionYears: p.Tier1.RetentionYears},
		Tier2:         config.TierConfig{StorageClass: p.Tier2.StorageClass, RetentionYears: p.Tier2.RetentionYears},
		HorizonYears:  p.HorizonYears,
		Reaccess:      config.ReaccessConfig{CasesPerYear: p.Reaccess.CasesPerYear, Destination: p.Reaccess.Destination},
		Interval:      p.Interval,
	}
	if len(p.Volumes) > 0 {
		out.Volumes = make(map[string]config.VolumeConfig, len(p.Volumes))
		for k, v := range p.Volumes {
			out.Volumes[k] = config.VolumeConfig{Count: v.Count, SizeGB: v.SizeGB}
		}
	}
	return out
}

// scenarioFrom applies defaults and converts to a model scenario.
func scenarioFrom(sc config.ScenarioConfig) (config.ScenarioConfig, model.Scenario, error) {
	sc = sc.WithDefaults()
	s, err := sc.ToModel()
	return sc, s, err
}

func writeError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// runErrorDetail maps an engine error to the API error envelope.
// Configuration errors are the caller's fault; anything else is ours.
func runErrorDetail(err error) (int, models.ErrorDetail) {
	if ce, ok := model.AsConfigError(err); ok {
		details := map[string]interface{}{"field": ce.Field}
		if ce.Value != "" {
			details["value"] = ce.Value
		}
		return http.StatusBadRequest, models.ErrorDetail{
			Code:    configErrorCode(err),
			Message: err.Error(),
			Details: details,
		}
	}
	return http.StatusInternalServerError, models.ErrorDetail{
		Code:    "PROJECTION_ERROR",
		Message: err.Error(),
	}
}

func configErrorCode(err error) string {
	switch {
	case errors.Is(err, pricing.ErrUnknownStorageClass):
		return "UNKNOWN_STORAGE_CLASS"
	case errors.Is(err, pricing.ErrUnknownDestination), errors.Is(err, pricing.ErrNoEgressRate):
		return "UNKNOWN_DESTINATION"
	case errors.Is(err, model.ErrUnknownFileFormat):
		return "UNKNOWN_FILE_FORMAT"
	default:
		return "INVALID_CONFIG"
	}
}

func writeRunError(c *gin.Context, err error) {
	status, detail := runErrorDetail(err)
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func buildSeries(s *projection.Series) models.Series {
	return models.Series{
		Interval:       s.Interval,
		TimeIndex:      s.TimeIndex,
		Stored:         s.Stored,
		StoredUnit:     string(s.Unit),
		Tier1GB:        s.Tier1GB,
		Tier2GB:        s.Tier2GB,
		TestsRun:       s.TestsRun,
		TotalCost:      s.TotalCost,
		Tier1Cost:      s.Tier1Cost,
		Tier2Cost:      s.Tier2Cost,
		ReaccessCost:   s.ReaccessCost,
		CostAxisMax:    s.CostAxisMax,
		StorageAxisMax: s.StorageAxisMax,
	}
}

func buildSummary(s *projection.Series, months int) models.ProjectionSummary {
	breakdown := make([]models.TypeShare, len(s.Breakdown))
	for i, b := range s.Breakdown {
		breakdown[i] = models.TypeShare{
			TestType:    string(b.TestType),
			VolumeShare: b.VolumeShare,
			CostShare:   b.CostShare,
		}
	}
	return models.ProjectionSummary{
		LifetimeCost: s.Summary.LifetimeCost,
		TotalTests:   s.Summary.TotalTests,
		CostPerTest:  s.Summary.CostPerTest,
		YearlyGB:     s.Summary.YearlyGB,
		YearlyTests:  s.Summary.YearlyTests,
		GeneratedGB:  s.Summary.GeneratedGB,
		ExpiredGB:    s.Summary.ExpiredGB,
		Months:       months,
		Breakdown:    breakdown,
	}
}

func convertLedger(ledger []projection.StepRow) []models.LedgerRow {
	result := make([]models.LedgerRow, len(ledger))
	for i, row := range ledger {
		result[i] = models.LedgerRow{
			Index:            row.Index,
			GeneratedGB:      row.GeneratedGB,
			TestsRun:         row.TestsRun,
			Tier1GB:          row.Tier1GB,
			Tier2GB:          row.Tier2GB,
			StoredGB:         row.StoredGB,
			Tier1StorageCost: row.Tier1StorageCost,
			Tier2StorageCost: row.Tier2StorageCost,
			RetrievalCost:    row.RetrievalCost,
			RequestCost:      row.RequestCost,
			TransferCost:     row.TransferCost,
			ReaccessCost:     row.ReaccessCost,
			TotalCost:        row.TotalCost,
			CumCost:          row.CumCost,
		}
	}
	return result
}

func convertSchedule(s pricing.Schedule) []models.BucketInfo {
	buckets := s.Buckets()
	out := make([]models.BucketInfo, len(buckets))
	for i, b := range buckets {
		out[i] = models.BucketInfo{Rate: b.Rate}
		if !b.Unbounded() {
			capGB := b.CapacityGB
			out[i].CapacityGB = &capGB
		}
	}
	return out
}
