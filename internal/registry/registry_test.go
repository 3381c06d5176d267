package registry

import (
	"testing"

	"github.com/citescan/citescan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestByKey(t *testing.T) {
	yelp, ok := ByKey("yelp")
	require.True(t, ok)
	assert.Equal(t, "Yelp", yelp.DisplayName)
	assert.Equal(t, model.ImportanceCritical, yelp.Importance)
	assert.True(t, yelp.RequiresDetailPage)

	_, ok = ByKey("nonexistent")
	assert.False(t, ok)
}

func TestKeysMatchRegistryOrder(t *testing.T) {
	keys := Keys()
	all := All()
	require.Len(t, keys, len(all))
	for i, d := range all {
		assert.Equal(t, d.Key, keys[i])
	}
}

func TestImportanceWeights(t *testing.T) {
	assert.Equal(t, 3, model.ImportanceCritical.Weight())
	assert.Equal(t, 2, model.ImportanceHigh.Weight())
	assert.Equal(t, 1, model.ImportanceMedium.Weight())
}

func TestValidate(t *testing.T) {
	urlEntry := func(key string) model.DirectoryConfig {
		return model.DirectoryConfig{
			Key:              key,
			DisplayName:      key,
			Importance:       model.ImportanceMedium,
			Strategy:         model.StrategyURLTemplate,
			SearchURLPattern: "https://example.com/search?q={business}",
			Selectors: model.Selectors{
				Name:    "h1",
				Address: ".address",
				Phone:   ".phone",
			},
		}
	}

	tests := []struct {
		name    string
		entries []model.DirectoryConfig
		wantErr string
	}{
		{
			name:    "valid entries",
			entries: []model.DirectoryConfig{urlEntry("a"), urlEntry("b")},
		},
		{
			name:    "duplicate keys",
			entries: []model.DirectoryConfig{urlEntry("a"), urlEntry("a")},
			wantErr: "duplicate directory key",
		},
		{
			name: "missing selectors on both pages",
			entries: []model.DirectoryConfig{
				{
					Key:              "broken",
					Strategy:         model.StrategyURLTemplate,
					SearchURLPattern: "https://example.com/{business}",
					Selectors:        model.Selectors{Name: "h1"},
				},
			},
			wantErr: "lacks name/address/phone selectors",
		},
		{
			name: "missing search URL",
			entries: []model.DirectoryConfig{
				func() model.DirectoryConfig {
					d := urlEntry("nourl")
					d.SearchURLPattern = ""
					return d
				}(),
			},
			wantErr: "no search URL pattern",
		},
		{
			name: "detail page without listing link",
			entries: []model.DirectoryConfig{
				func() model.DirectoryConfig {
					d := urlEntry("nolink")
					d.RequiresDetailPage = true
					return d
				}(),
			},
			wantErr: "no listing link selector",
		},
		{
			name: "external api entries skip selector checks",
			entries: []model.DirectoryConfig{
				{
					Key:        "bulk",
					Importance: model.ImportanceCritical,
					Strategy:   model.StrategyExternalAPI,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(tt.entries)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
