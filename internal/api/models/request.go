package models

// ProjectionRequest represents the request body for running a projection
type ProjectionRequest struct {
	Scenario ScenarioParams    `json:"scenario" binding:"required"`
	Options  ProjectionOptions `json:"options,omitempty"`
}

// ScenarioParams are the projection inputs as the UI sends them.
// A zero interval means yearly; other fields left at zero are taken from the
// base scenario in a comparison variation and are otherwise required.
type ScenarioParams struct {
	Volumes       map[string]VolumeParams `json:"volumes,omitempty" binding:"omitempty,dive"`
	FileFormat    string                  `json:"file_format,omitempty"` // BAM, CRAMV2, CRAMV3; required
	GrowthPercent float64                 `json:"growth_percent" binding:"gte=0"`
	Tier1         TierParams              `json:"tier1"`
	Tier2         TierParams              `json:"tier2"`
	HorizonYears  float64                 `json:"horizon_years" binding:"gte=0"`
	Reaccess      ReaccessParams          `json:"reaccess"`
	Interval      int                     `json:"interval,omitempty" binding:"omitempty,oneof=1 12"`
}

// VolumeParams is the yearly count and per-test size of one test type
type VolumeParams struct {
	Count  int     `json:"count" binding:"gte=0"`
	SizeGB float64 `json:"size_gb" binding:"gte=0"`
}

// TierParams selects a storage class and how long data stays in it
type TierParams struct {
	StorageClass   string  `json:"storage_class,omitempty"`
	RetentionYears float64 `json:"retention_years" binding:"gte=0"`
}

// ReaccessParams describes yearly re-access of stored cases
type ReaccessParams struct {
	CasesPerYear float64 `json:"cases_per_year" binding:"gte=0"`
	Destination  string  `json:"destination,omitempty"` // within-cloud, internet
}

// ProjectionOptions contains optional projection parameters
type ProjectionOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // monthly ledger in the response; default: false
}

// CompareProjectionRequest represents a request to compare scenario variations
type CompareProjectionRequest struct {
	Base       ScenarioParams        `json:"base" binding:"required"`
	Variations []ProjectionVariation `json:"variations" binding:"required,min=1,dive"`
}

// ProjectionVariation overrides the non-zero fields of the base scenario
type ProjectionVariation struct {
	Name     string         `json:"name" binding:"required"`
	Scenario ScenarioParams `json:"scenario"`
}

// RankRequest represents a request to rank storage-class pairs for a scenario
type RankRequest struct {
	Scenario ScenarioParams `json:"scenario" binding:"required"`
	Limit    int            `json:"limit,omitempty" binding:"gte=0"` // default: 10
}
