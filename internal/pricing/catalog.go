// Package pricing holds the storage, retrieval and egress rate tables and the
// progressive (tiered) rate calculator used to price them.
package pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownStorageClass = errors.New("unknown storage class")
	ErrUnknownDestination  = errors.New("unknown re-access destination")
	ErrNoEgressRate        = errors.New("no egress rate for provider and destination")
)

// Destination is where re-accessed data is delivered.
// Keep these values stable; they are part of the API and config file format.
type Destination string

const (
	DestinationWithinCloud Destination = "within-cloud"
	DestinationInternet    Destination = "internet"
)

// Destinations lists the accepted destination values.
func Destinations() []Destination {
	return []Destination{DestinationWithinCloud, DestinationInternet}
}

// ParseDestination accepts only the enumerated destinations.
func ParseDestination(s string) (Destination, error) {
	d := Destination(strings.TrimSpace(s))
	switch d {
	case DestinationWithinCloud, DestinationInternet:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDestination, s)
	}
}

// StorageClass prices one storage class.
// Units:
// - Storage: $/GB-month, tiered
// - RetrievalPerGB: $/GB read back (0 for hot classes)
// - RetrievalPerRequest: $ per re-accessed case
type StorageClass struct {
	ID                  string
	Name                string
	Provider            string
	Storage             Schedule
	RetrievalPerGB      float64
	RetrievalPerRequest float64
}

func (c StorageClass) validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("storage class id is required")
	}
	if strings.TrimSpace(c.Provider) == "" {
		return fmt.Errorf("storage class %q: provider is required", c.ID)
	}
	if c.Storage.IsZero() {
		return fmt.Errorf("storage class %q: storage schedule is required", c.ID)
	}
	if c.RetrievalPerGB < 0 || c.RetrievalPerRequest < 0 {
		return fmt.Errorf("storage class %q: retrieval rates must be >= 0", c.ID)
	}
	return nil
}

// EgressRate is the transfer schedule for one provider and destination.
type EgressRate struct {
	Provider    string
	Destination Destination
	Schedule    Schedule
}

type egressKey struct {
	provider    string
	destination Destination
}

// Catalog is an immutable set of pricing tables. Build it once with NewCatalog
// (or Default) and share it; nothing mutates it after construction.
type Catalog struct {
	classes map[string]StorageClass
	egress  map[egressKey]Schedule
}

// NewCatalog validates and indexes the given tables.
func NewCatalog(classes []StorageClass, egress []EgressRate) (*Catalog, error) {
	c := &Catalog{
		classes: make(map[string]StorageClass, len(classes)),
		egress:  make(map[egressKey]Schedule, len(egress)),
	}
	if len(classes) == 0 {
		return nil, errors.New("catalog needs at least one storage class")
	}
	for _, sc := range classes {
		if err := sc.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.classes[sc.ID]; dup {
			return nil, fmt.Errorf("duplicate storage class %q", sc.ID)
		}
		c.classes[sc.ID] = sc
	}
	for _, e := range egress {
		if _, err := ParseDestination(string(e.Destination)); err != nil {
			return nil, fmt.Errorf("egress for provider %q: %w", e.Provider, err)
		}
		if e.Schedule.IsZero() {
			return nil, fmt.Errorf("egress for provider %q to %s: schedule is required", e.Provider, e.Destination)
		}
		k := egressKey{provider: e.Provider, destination: e.Destination}
		if _, dup := c.egress[k]; dup {
			return nil, fmt.Errorf("duplicate egress rate for provider %q to %s", e.Provider, e.Destination)
		}
		c.egress[k] = e.Schedule
	}
	return c, nil
}

// StorageClass looks up a class by id. Unknown ids are an error, never defaulted.
func (c *Catalog) StorageClass(id string) (StorageClass, error) {
	sc, ok := c.classes[id]
	if !ok {
		return StorageClass{}, fmt.Errorf("%w: %q", ErrUnknownStorageClass, id)
	}
	return sc, nil
}

// Egress returns the transfer schedule for data leaving provider towards dest.
func (c *Catalog) Egress(provider string, dest Destination) (Schedule, error) {
	if _, err := ParseDestination(string(dest)); err != nil {
		return Schedule{}, err
	}
	s, ok := c.egress[egressKey{provider: provider, destination: dest}]
	if !ok {
		return Schedule{}, fmt.Errorf("%w: %s to %s", ErrNoEgressRate, provider, dest)
	}
	return s, nil
}

// StorageClasses returns all classes sorted by id.
func (c *Catalog) StorageClasses() []StorageClass {
	out := make([]StorageClass, 0, len(c.classes))
	for _, sc := range c.classes {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EgressRates returns all egress entries sorted by provider then destination.
func (c *Catalog) EgressRates() []EgressRate {
	out := make([]EgressRate, 0, len(c.egress))
	for k, s := range c.egress {
		out = append(out, EgressRate{Provider: k.provider, Destination: k.destination, Schedule: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Provider != out[j].Provider {
			return out[i].Provider < out[j].Provider
		}
		return out[i].Destination < out[j].Destination
	})
	return out
}
