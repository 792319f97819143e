package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Loader fetches a zone file and parses it into a Table.
type Loader interface {
	// Load reads the zone file at path (a local path or an object key).
	Load(ctx context.Context, path string) (*Table, error)
}

type zoneFile struct {
	Fallback string `yaml:"fallback"`
	Zones    []struct {
		City string `yaml:"city"`
		Fee  string `yaml:"fee"`
	} `yaml:"zones"`
}

// ParseZones decodes a YAML zone file:
//
//	fallback: "4.00"
//	zones:
//	  - city: Vinovo
//	    fee: "2.00"
func ParseZones(data []byte) (*Table, error) {
	var f zoneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid zone file: %w", err)
	}

	if strings.TrimSpace(f.Fallback) == "" {
		return nil, fmt.Errorf("invalid zone file: fallback fee is required")
	}
	fallback, err := parseFee(f.Fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid zone file: fallback: %w", err)
	}

	zones := make([]Zone, 0, len(f.Zones))
	for i, z := range f.Zones {
		if strings.TrimSpace(z.City) == "" {
			return nil, fmt.Errorf("invalid zone file: zone %d: city is required", i)
		}
		fee, err := parseFee(z.Fee)
		if err != nil {
			return nil, fmt.Errorf("invalid zone file: zone %s: %w", z.City, err)
		}
		zones = append(zones, Zone{City: z.City, Fee: fee})
	}

	return NewTable(zones, fallback), nil
}

func parseFee(raw string) (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("fee %q is not a number", raw)
	}
	if fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("fee %s is negative", fee)
	}
	return fee, nil
}
