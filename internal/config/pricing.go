package config

import (
	"fmt"
	"os"

	"genomic-storage-cost/internal/pricing"

	"gopkg.in/yaml.v3"
)

// PricingFile is the on-disk shape of a pricing catalog.
// Bucket capacities are widths in GB; use .inf for the last, unbounded bucket.
type PricingFile struct {
	StorageClasses []StorageClassConfig `yaml:"storage_classes"`
	Egress         []EgressConfig       `yaml:"egress"`
}

type StorageClassConfig struct {
	ID                  string           `yaml:"id"`
	Name                string           `yaml:"name"`
	Provider            string           `yaml:"provider"`
	Storage             []pricing.Bucket `yaml:"storage"`
	RetrievalPerGB      float64          `yaml:"retrieval_per_gb"`
	RetrievalPerRequest float64          `yaml:"retrieval_per_request"`
}

type EgressConfig struct {
	Provider    string           `yaml:"provider"`
	Destination string           `yaml:"destination"`
	Schedule    []pricing.Bucket `yaml:"schedule"`
}

// LoadPricing reads a pricing YAML and builds a validated catalog.
func LoadPricing(path string) (*pricing.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f PricingFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cat, err := f.Catalog()
	if err != nil {
		return nil, fmt.Errorf("pricing file %s: %w", path, err)
	}
	return cat, nil
}

func (f PricingFile) Catalog() (*pricing.Catalog, error) {
	classes := make([]pricing.StorageClass, 0, len(f.StorageClasses))
	for _, sc := range f.StorageClasses {
		sched, err := pricing.NewSchedule(sc.Storage...)
		if err != nil {
			return nil, fmt.Errorf("storage class %q: %w", sc.ID, err)
		}
		classes = append(classes, pricing.StorageClass{
			ID:                  sc.ID,
			Name:                sc.Name,
			Provider:            sc.Provider,
			Storage:             sched,
			RetrievalPerGB:      sc.RetrievalPerGB,
			RetrievalPerRequest: sc.RetrievalPerRequest,
		})
	}
	egress := make([]pricing.EgressRate, 0, len(f.Egress))
	for _, e := range f.Egress {
		sched, err := pricing.NewSchedule(e.Schedule...)
		if err != nil {
			return nil, fmt.Errorf("egress %s to %s: %w", e.Provider, e.Destination, err)
		}
		egress = append(egress, pricing.EgressRate{
			Provider:    e.Provider,
			Destination: pricing.Destination(e.Destination),
			Schedule:    sched,
		})
	}
	return pricing.NewCatalog(classes, egress)
}
