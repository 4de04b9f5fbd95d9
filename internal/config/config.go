package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"genomic-storage-cost/internal/model"
	"genomic-storage-cost/internal/pricing"

	"gopkg.in/yaml.v3"
)

// DefaultInterval is used when a scenario does not set one.
const DefaultInterval = model.StepsPerYear

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load storage and egress prices from a separate YAML (e.g. examples/pricing.yaml).
	// Empty means the built-in catalog.
	PricingFile string `yaml:"pricing_file"`

	// Optional: load a base scenario from a separate YAML and overlay Scenario on it.
	ScenarioFile string         `yaml:"scenario_file"`
	Scenario     ScenarioConfig `yaml:"scenario"`
}

type ScenarioConfig struct {
	Volumes       map[string]VolumeConfig `yaml:"volumes" json:"volumes"`
	FileFormat    string                  `yaml:"file_format" json:"file_format"`
	GrowthPercent float64                 `yaml:"growth_percent" json:"growth_percent"`
	Tier1         TierConfig              `yaml:"tier1" json:"tier1"`
	Tier2         TierConfig              `yaml:"tier2" json:"tier2"`
	HorizonYears  float64                 `yaml:"horizon_years" json:"horizon_years"`
	Reaccess      ReaccessConfig          `yaml:"reaccess" json:"reaccess"`
	Interval      int                     `yaml:"interval" json:"interval"`
}

type VolumeConfig struct {
	Count  int     `yaml:"count" json:"count"`
	SizeGB float64 `yaml:"size_gb" json:"size_gb"`
}

type TierConfig struct {
	StorageClass   string  `yaml:"storage_class" json:"storage_class"`
	RetentionYears float64 `yaml:"retention_years" json:"retention_years"`
}

type ReaccessConfig struct {
	CasesPerYear float64 `yaml:"cases_per_year" json:"cases_per_year"`
	Destination  string  `yaml:"destination" json:"destination"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.Scenario = c.Scenario.WithDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.PricingFile != "" {
		c.PricingFile = resolvePath(path, c.PricingFile)
	}
	// If scenario_file is set, load it and merge in any explicit overrides from c.Scenario.
	if c.ScenarioFile != "" {
		loaded, err := loadScenarioFile(resolvePath(path, c.ScenarioFile))
		if err != nil {
			return nil, err
		}
		c.Scenario = MergeScenario(loaded, c.Scenario)
	}
	return &c, nil
}

// resolvePath interprets rel relative to the config file directory when that
// file exists, and relative to the working directory otherwise.
func resolvePath(configPath, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	cand := filepath.Join(filepath.Dir(configPath), rel)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return rel
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	s, err := c.Scenario.ToModel()
	if err != nil {
		return err
	}
	return s.Validate()
}

// Catalog returns the pricing catalog named by PricingFile, or the built-in one.
func (c *Config) Catalog() (*pricing.Catalog, error) {
	if c.PricingFile == "" {
		return pricing.Default(), nil
	}
	return LoadPricing(c.PricingFile)
}

// WithDefaults fills the output interval. Cost inputs such as file_format are
// never defaulted.
func (s ScenarioConfig) WithDefaults() ScenarioConfig {
	if s.Interval == 0 {
		s.Interval = DefaultInterval
	}
	return s
}

// ToModel converts the file shape to a model.Scenario. Only parse failures are
// reported here; range checks are left to model.Scenario.Validate.
func (s ScenarioConfig) ToModel() (model.Scenario, error) {
	out := model.Scenario{
		Volumes:       make(map[model.TestType]model.TestVolume, len(s.Volumes)),
		GrowthPercent: s.GrowthPercent,
		Tier1:         model.TierPolicy{StorageClass: s.Tier1.StorageClass, RetentionYears: s.Tier1.RetentionYears},
		Tier2:         model.TierPolicy{StorageClass: s.Tier2.StorageClass, RetentionYears: s.Tier2.RetentionYears},
		HorizonYears:  s.HorizonYears,
		Reaccess: model.Reaccess{
			CasesPerYear: s.Reaccess.CasesPerYear,
			Destination:  pricing.Destination(s.Reaccess.Destination),
		},
		Interval: s.Interval,
	}
	if s.FileFormat == "" {
		return model.Scenario{}, model.NewConfigError("file_format", "", fmt.Errorf("%w: required", model.ErrInvalidValue))
	}
	f, err := model.ParseFileFormat(s.FileFormat)
	if err != nil {
		return model.Scenario{}, model.NewConfigError("file_format", s.FileFormat, err)
	}
	out.FileFormat = f
	for name, v := range s.Volumes {
		out.Volumes[model.TestType(name)] = model.TestVolume{Count: v.Count, SizeGB: v.SizeGB}
	}
	return out, nil
}

type scenarioFileWrapper struct {
	Scenario ScenarioConfig `yaml:"scenario"`
}

func loadScenarioFile(path string) (ScenarioConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ScenarioConfig{}, err
	}
	var w scenarioFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ScenarioConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Scenario, nil
}

// MergeScenario overlays non-zero fields from override onto base.
// This is used when loading a scenario file and for compare variations.
func MergeScenario(base, override ScenarioConfig) ScenarioConfig {
	out := base
	if len(override.Volumes) > 0 {
		vols := make(map[string]VolumeConfig, len(base.Volumes)+len(override.Volumes))
		for k, v := range base.Volumes {
			vols[k] = v
		}
		for k, v := range override.Volumes {
			vols[k] = v
		}
		out.Volumes = vols
	}
	if override.FileFormat != "" {
		out.FileFormat = override.FileFormat
	}
	if override.GrowthPercent != 0 {
		out.GrowthPercent = override.GrowthPercent
	}
	out.Tier1 = mergeTier(base.Tier1, override.Tier1)
	out.Tier2 = mergeTier(base.Tier2, override.Tier2)
	if override.HorizonYears != 0 {
		out.HorizonYears = override.HorizonYears
	}
	if override.Reaccess.CasesPerYear != 0 {
		out.Reaccess.CasesPerYear = override.Reaccess.CasesPerYear
	}
	if override.Reaccess.Destination != "" {
		out.Reaccess.Destination = override.Reaccess.Destination
	}
	if override.Interval != 0 {
		out.Interval = override.Interval
	}
	return out
}

func mergeTier(base, override TierConfig) TierConfig {
	out := base
	if override.StorageClass != "" {
		out.StorageClass = override.StorageClass
	}
	if override.RetentionYears != 0 {
		out.RetentionYears = override.RetentionYears
	}
	return out
}
