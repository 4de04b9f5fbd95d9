package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"genomic-storage-cost/internal/model"
	"genomic-storage-cost/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

const scenarioYAML = `
scenario:
  volumes:
    genome: { count: 10, size_gb: 120 }
  file_format: BAM
  tier1: { storage_class: S3, retention_years: 2 }
  tier2: { storage_class: glacier, retention_years: 3 }
  horizon_years: 10
  reaccess: { cases_per_year: 5, destination: internet }
`

func TestLoad_Defaults(t *testing.T) {
	p := writeFile(t, t.TempDir(), "scenario.yaml", scenarioYAML)

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, c.Scenario.Interval)
	assert.Equal(t, "BAM", c.Scenario.FileFormat)

	s, err := c.Scenario.ToModel()
	require.NoError(t, err)
	assert.Equal(t, model.TestVolume{Count: 10, SizeGB: 120}, s.Volumes[model.TestGenome])
	assert.Equal(t, pricing.DestinationInternet, s.Reaccess.Destination)
	assert.Equal(t, 5.0, s.Reaccess.CasesPerYear)

	cat, err := c.Catalog()
	require.NoError(t, err)
	_, err = cat.StorageClass("deep_archive")
	assert.NoError(t, err)
}

func TestLoad_MissingFileFormat(t *testing.T) {
	p := writeFile(t, t.TempDir(), "scenario.yaml", `
scenario:
  volumes:
    genome: { count: 10, size_gb: 120 }
  tier1: { storage_class: S3, retention_years: 2 }
  tier2: { storage_class: glacier, retention_years: 3 }
  reaccess: { destination: internet }
`)
	_, err := Load(p)
	ce, ok := model.AsConfigError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "file_format", ce.Field)
	assert.ErrorIs(t, err, model.ErrInvalidValue)

	assert.Empty(t, ScenarioConfig{}.WithDefaults().FileFormat)
}

func TestLoad_InvalidScenario(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.yaml", `
scenario:
  volumes:
    genome: { count: 10, size_gb: 120 }
  file_format: FASTQ
  tier1: { storage_class: S3 }
  tier2: { storage_class: glacier }
  reaccess: { destination: internet }
`)
	_, err := Load(p)
	ce, ok := model.AsConfigError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "file_format", ce.Field)

	// LoadUnchecked still returns the partial config.
	c, err := LoadUnchecked(p)
	require.NoError(t, err)
	assert.Equal(t, "FASTQ", c.Scenario.FileFormat)
}

func TestLoad_ScenarioFileAndPricingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", scenarioYAML)
	writeFile(t, dir, "pricing.yaml", `
storage_classes:
  - id: hot
    provider: aws
    storage:
      - { capacity_gb: 100, rate: 0.03 }
      - { capacity_gb: .inf, rate: 0.02 }
  - id: cold
    provider: aws
    storage:
      - { capacity_gb: .inf, rate: 0.001 }
    retrieval_per_gb: 0.05
egress:
  - provider: aws
    destination: internet
    schedule:
      - { capacity_gb: .inf, rate: 0.09 }
`)
	p := writeFile(t, dir, "lab.yaml", `
pricing_file: pricing.yaml
scenario_file: base.yaml
scenario:
  volumes:
    exome: { count: 100, size_gb: 6 }
  tier1: { storage_class: hot }
  tier2: { storage_class: cold }
  growth_percent: 10
`)

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pricing.yaml"), c.PricingFile)
	assert.Equal(t, VolumeConfig{Count: 10, SizeGB: 120}, c.Scenario.Volumes["genome"])
	assert.Equal(t, VolumeConfig{Count: 100, SizeGB: 6}, c.Scenario.Volumes["exome"])
	assert.Equal(t, TierConfig{StorageClass: "hot", RetentionYears: 2}, c.Scenario.Tier1)
	assert.Equal(t, 10.0, c.Scenario.GrowthPercent)
	assert.Equal(t, 10.0, c.Scenario.HorizonYears)

	cat, err := c.Catalog()
	require.NoError(t, err)
	hot, err := cat.StorageClass("hot")
	require.NoError(t, err)
	assert.InDelta(t, 100*0.03+50*0.02, hot.Storage.Cost(150), 1e-9)
	assert.True(t, math.IsInf(hot.Storage.Buckets()[1].CapacityGB, 1))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	p := writeFile(t, dir, "broken.yaml", "scenario: [")
	_, err = Load(p)
	assert.Error(t, err)

	p = writeFile(t, dir, "dangling.yaml", "scenario_file: nope.yaml\n")
	_, err = Load(p)
	assert.Error(t, err)
}

func TestLoadPricing_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"bounded last bucket", `
storage_classes:
  - id: x
    provider: aws
    storage: [{ capacity_gb: 10, rate: 0.1 }]
`},
		{"no classes", "egress: []\n"},
		{"bad destination", `
storage_classes:
  - id: x
    provider: aws
    storage: [{ capacity_gb: .inf, rate: 0.1 }]
egress:
  - provider: aws
    destination: moon
    schedule: [{ capacity_gb: .inf, rate: 0.1 }]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, dir, "p.yaml", tt.body)
			_, err := LoadPricing(p)
			assert.Error(t, err)
		})
	}
}

func TestExamplesLoad(t *testing.T) {
	for _, name := range []string{"scenario.yaml", "lab-growth.yaml"} {
		t.Run(name, func(t *testing.T) {
			c, err := Load(filepath.Join("..", "..", "examples", name))
			require.NoError(t, err)
			_, err = c.Catalog()
			require.NoError(t, err)
		})
	}
}

func TestMergeScenario(t *testing.T) {
	base := ScenarioConfig{
		Volumes:      map[string]VolumeConfig{"genome": {Count: 1, SizeGB: 100}},
		FileFormat:   "BAM",
		Tier1:        TierConfig{StorageClass: "S3", RetentionYears: 1},
		Tier2:        TierConfig{StorageClass: "glacier", RetentionYears: 5},
		HorizonYears: 10,
		Reaccess:     ReaccessConfig{CasesPerYear: 3, Destination: "internet"},
		Interval:     12,
	}
	out := MergeScenario(base, ScenarioConfig{
		Tier2:    TierConfig{StorageClass: "deep_archive"},
		Reaccess: ReaccessConfig{Destination: "within-cloud"},
		Interval: 1,
	})
	assert.Equal(t, TierConfig{StorageClass: "deep_archive", RetentionYears: 5}, out.Tier2)
	assert.Equal(t, ReaccessConfig{CasesPerYear: 3, Destination: "within-cloud"}, out.Reaccess)
	assert.Equal(t, 1, out.Interval)
	assert.Equal(t, base.Volumes, out.Volumes)
	assert.Equal(t, 12, base.Interval, "base must not change")
}

func TestServerFromEnv(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("RESULT_TTL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := ServerFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.ResultTTL)
	assert.Equal(t, StoreMemory, cfg.ResultStore)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.Production())
}

func TestServerFromEnv_Invalid(t *testing.T) {
	t.Setenv("RESULT_STORE", "memcached")
	_, err := ServerFromEnv()
	assert.Error(t, err)
}
