package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	data, err := Load(strings.NewReader(`
regions:
  - {code: 16, name: Alger}
  - {code: 31, name: " Oran "}
categories:
  - {name: surgery, displayName: Surgery}
  - {name: labs}
`))
	require.NoError(t, err)

	regions := data.DomainRegions()
	require.Len(t, regions, 2)
	assert.Equal(t, 16, regions[0].Code)
	assert.Equal(t, "Oran", regions[1].Name)

	categories := data.DomainCategories()
	require.Len(t, categories, 2)
	assert.Equal(t, "Surgery", categories[0].DisplayName)
	assert.Equal(t, "labs", categories[1].DisplayName)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"duplicate code", "regions: [{code: 1, name: A}, {code: 1, name: B}]", "appears twice"},
		{"zero code", "regions: [{code: 0, name: A}]", "positive"},
		{"blank region name", "regions: [{code: 2, name: ''}]", "name is required"},
		{"category casing clash", "categories: [{name: Surgery}, {name: surgery}]", "appears twice"},
		{"unknown field", "regions: [{code: 1, name: A, capital: x}]", "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile_ShippedSeed(t *testing.T) {
	path := filepath.Join("..", "..", "..", "seed", "reference_data.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Skip("seed file not present")
	}
	data, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, data.Regions, 58)
	assert.Len(t, data.Categories, 4)
}
