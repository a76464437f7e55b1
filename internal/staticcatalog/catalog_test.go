package staticcatalog_test

import (
	"strings"
	"testing"

	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/partsflow/catalog-pipeline/internal/staticcatalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshot = `[
	{
		"sku": "wdg-1001",
		"title": "Widget, large",
		"size": "40mm",
		"packQuantity": "Pack of 10",
		"imageUrl": "https://cdn.example.com/wdg-1001.jpg",
		"sourceUrl": "https://supplier.example.com/products/widget-large-1001"
	},
	{
		"sku": "WDG-2002",
		"title": "Widget, small"
	},
	{
		"sku": "wdg-1001",
		"title": "Duplicate entry, should be ignored"
	}
]`

func TestUnitDecode(t *testing.T) {
	catalog, err := staticcatalog.Decode(strings.NewReader(snapshot))

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, 2, catalog.Len(), "duplicated SKUs should be collapsed")

	entry, ok := catalog.Lookup("WDG-1001")
	require.True(t, ok, "should find entry")
	assert.Equal(t, models.StaticCatalogEntry{
		SKU:          "WDG-1001",
		Title:        "Widget, large",
		Size:         "40mm",
		PackQuantity: "Pack of 10",
		ImageURL:     "https://cdn.example.com/wdg-1001.jpg",
		SourceURL:    "https://supplier.example.com/products/widget-large-1001",
	}, entry, "should keep the first entry for a duplicated SKU")
}

func TestUnitLookupIsCaseInsensitive(t *testing.T) {
	catalog, err := staticcatalog.Decode(strings.NewReader(snapshot))
	require.NoError(t, err, "shouldn't return any error")

	for _, sku := range []string{"wdg-2002", "WDG-2002", " Wdg-2002 "} {
		entry, ok := catalog.Lookup(sku)
		require.Truef(t, ok, "should find entry for %q", sku)
		assert.Equal(t, "Widget, small", entry.Title, "should return correct entry")
	}
}

func TestUnitDecodeBadSnapshot(t *testing.T) {
	_, err := staticcatalog.Decode(strings.NewReader(`{"not": "a list"}`))
	require.Error(t, err, "should return decoding error")
}
