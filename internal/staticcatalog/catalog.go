package staticcatalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/partsflow/catalog-pipeline/internal/platform/models"
)

// Catalog is a read-only lookup table of seed product records,
// keyed by normalized SKU. Loaded once at process start.
type Catalog struct {
	entries map[string]models.StaticCatalogEntry
}

// New returns new Catalog built from provided entries.
// When two entries share a SKU the first one wins.
func New(entries []models.StaticCatalogEntry) *Catalog {
	indexed := make(map[string]models.StaticCatalogEntry, len(entries))
	for ix := range entries {
		sku := models.NormalizeSKU(entries[ix].SKU)
		if sku == "" {
			continue
		}
		if _, ok := indexed[sku]; ok {
			continue
		}
		entry := entries[ix]
		entry.SKU = sku
		indexed[sku] = entry
	}

	return &Catalog{entries: indexed}
}

// Load reads the snapshot file at path and returns new Catalog.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open static catalog snapshot: %w", err)
	}
	defer f.Close()

	catalog, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("can't load static catalog from %q: %w", path, err)
	}

	return catalog, nil
}

// Decode decodes a JSON snapshot into new Catalog.
func Decode(r io.Reader) (*Catalog, error) {
	var snapshot []snapshotEntry
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("can't decode snapshot: %w", err)
	}

	entries := make([]models.StaticCatalogEntry, 0, len(snapshot))
	for ix := range snapshot {
		entries = append(entries, *toAppEntry(&snapshot[ix]))
	}

	return New(entries), nil
}

// Lookup returns the seed entry for sku. Lookup is case-insensitive.
func (c *Catalog) Lookup(sku string) (models.StaticCatalogEntry, bool) {
	entry, ok := c.entries[models.NormalizeSKU(sku)]
	return entry, ok
}

// Len returns number of entries in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}
