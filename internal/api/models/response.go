package models

import "time"

// ProjectionResponse represents the response from a projection run
type ProjectionResponse struct {
	ID      string            `json:"id,omitempty"` // empty when the result could not be stored
	Status  string            `json:"status"`
	Series  Series            `json:"series"`
	Summary ProjectionSummary `json:"summary"`
	Ledger  []LedgerRow       `json:"ledger,omitempty"`
}

// Series is the resampled time series the chart renders
type Series struct {
	Interval  int   `json:"interval"`
	TimeIndex []int `json:"time_index"`

	Stored     []float64 `json:"stored"` // in StoredUnit
	StoredUnit string    `json:"stored_unit"`
	Tier1GB    []float64 `json:"tier1_gb"`
	Tier2GB    []float64 `json:"tier2_gb"`

	TestsRun     []float64 `json:"tests_run"`
	TotalCost    []float64 `json:"total_cost"`
	Tier1Cost    []float64 `json:"tier1_cost"`
	Tier2Cost    []float64 `json:"tier2_cost"`
	ReaccessCost []float64 `json:"reaccess_cost"`

	CostAxisMax    float64 `json:"cost_axis_max"`
	StorageAxisMax float64 `json:"storage_axis_max"`
}

// ProjectionSummary contains aggregated projection results
type ProjectionSummary struct {
	LifetimeCost float64     `json:"lifetime_cost"`
	TotalTests   float64     `json:"total_tests"`
	CostPerTest  float64     `json:"cost_per_test"`
	YearlyGB     float64     `json:"yearly_gb"`
	YearlyTests  float64     `json:"yearly_tests"`
	GeneratedGB  float64     `json:"generated_gb"`
	ExpiredGB    float64     `json:"expired_gb"`
	Months       int         `json:"months"`
	Breakdown    []TypeShare `json:"breakdown"`
}

// TypeShare is the fraction of volume and cost attributed to one test type
type TypeShare struct {
	TestType    string  `json:"test_type"`
	VolumeShare float64 `json:"volume_share"`
	CostShare   float64 `json:"cost_share"`
}

// LedgerRow represents one step in the projection ledger
type LedgerRow struct {
	Index            int     `json:"index"`
	GeneratedGB      float64 `json:"generated_gb"`
	TestsRun         float64 `json:"tests_run"`
	Tier1GB          float64 `json:"tier1_gb"`
	Tier2GB          float64 `json:"tier2_gb"`
	StoredGB         float64 `json:"stored_gb"`
	Tier1StorageCost float64 `json:"tier1_storage_cost"`
	Tier2StorageCost float64 `json:"tier2_storage_cost"`
	RetrievalCost    float64 `json:"retrieval_cost"`
	RequestCost      float64 `json:"request_cost"`
	TransferCost     float64 `json:"transfer_cost"`
	ReaccessCost     float64 `json:"reaccess_cost"`
	TotalCost        float64 `json:"total_cost"`
	CumCost          float64 `json:"cum_cost"`
}

// LedgerResponse is a stored ledger fetched by id
type LedgerResponse struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Interval  int         `json:"interval"`
	Ledger    []LedgerRow `json:"ledger"`
}

// CompareProjectionResponse represents the response from a comparison
type CompareProjectionResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation; exactly one of Summary and Error is set
type ComparisonResult struct {
	Name    string             `json:"name"`
	Summary *ProjectionSummary `json:"summary,omitempty"`
	Error   *ErrorDetail       `json:"error,omitempty"`
}

// RankResponse represents the response from ranking storage-class pairs
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
	Total    int       `json:"total"`
}

// Ranking represents one ranked tier pairing
type Ranking struct {
	Rank         int     `json:"rank"`
	Tier1        string  `json:"tier1"`
	Tier2        string  `json:"tier2"`
	LifetimeCost float64 `json:"lifetime_cost"`
	StorageCost  float64 `json:"storage_cost"`
	ReaccessCost float64 `json:"reaccess_cost"`
	CostPerTest  float64 `json:"cost_per_test"`
	PeakStoredGB float64 `json:"peak_stored_gb"`
}

// StorageClassInfo represents one entry of the pricing catalog
type StorageClassInfo struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Provider            string       `json:"provider"`
	Storage             []BucketInfo `json:"storage"`
	RetrievalPerGB      float64      `json:"retrieval_per_gb"`
	RetrievalPerRequest float64      `json:"retrieval_per_request"`
}

// BucketInfo is one slice of a tiered schedule; CapacityGB is null for the unbounded bucket
type BucketInfo struct {
	CapacityGB *float64 `json:"capacity_gb"`
	Rate       float64  `json:"rate"`
}

// FileFormatInfo describes an accepted file format
type FileFormatInfo struct {
	ID          string  `json:"id"`
	Compression float64 `json:"compression"`
}

// DestinationInfo describes a re-access destination and its egress schedules
type DestinationInfo struct {
	ID     string       `json:"id"`
	Egress []EgressInfo `json:"egress"`
}

// EgressInfo is the transfer schedule of one provider
type EgressInfo struct {
	Provider string       `json:"provider"`
	Schedule []BucketInfo `json:"schedule"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
