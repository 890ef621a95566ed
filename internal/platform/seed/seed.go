// Package seed reads the reference-data file loaded by the setup binary.
package seed

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SscSPs/records_management_app/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// ReferenceData is the decoded seed file.
type ReferenceData struct {
	Regions    []RegionEntry   `yaml:"regions"`
	Categories []CategoryEntry `yaml:"categories"`
}

type RegionEntry struct {
	Code int    `yaml:"code"`
	Name string `yaml:"name"`
}

type CategoryEntry struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"displayName"`
}

// LoadFile opens and decodes a seed file.
func LoadFile(path string) (*ReferenceData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates reference data. Region codes must be positive and
// unique; category names must be unique ignoring case.
func Load(r io.Reader) (*ReferenceData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data ReferenceData
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (d *ReferenceData) validate() error {
	codes := make(map[int]bool, len(d.Regions))
	for _, r := range d.Regions {
		if r.Code <= 0 {
			return fmt.Errorf("region %q: code must be positive", r.Name)
		}
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("region %d: name is required", r.Code)
		}
		if codes[r.Code] {
			return fmt.Errorf("region code %d appears twice", r.Code)
		}
		codes[r.Code] = true
	}

	names := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if key == "" {
			return fmt.Errorf("category name is required")
		}
		if names[key] {
			return fmt.Errorf("category %q appears twice", c.Name)
		}
		names[key] = true
	}
	return nil
}

// DomainRegions converts the entries for the reference writer.
func (d *ReferenceData) DomainRegions() []domain.Region {
	out := make([]domain.Region, len(d.Regions))
	for i, r := range d.Regions {
		out[i] = domain.Region{Code: r.Code, Name: strings.TrimSpace(r.Name)}
	}
	return out
}

// DomainCategories converts the entries for the reference writer. A missing display
// name falls back to the name.
func (d *ReferenceData) DomainCategories() []domain.Category {
	out := make([]domain.Category, len(d.Categories))
	for i, c := range d.Categories {
		display := strings.TrimSpace(c.DisplayName)
		if display == "" {
			display = strings.TrimSpace(c.Name)
		}
		out[i] = domain.Category{Name: strings.TrimSpace(c.Name), DisplayName: display}
	}
	return out
}
