package staticcatalog

import "github.com/partsflow/catalog-pipeline/internal/platform/models"

// snapshotEntry is model for seed records in snapshot files.
type snapshotEntry struct {
	SKU          string `json:"sku"`
	Title        string `json:"title"`
	Size         string `json:"size,omitempty"`
	PackQuantity string `json:"packQuantity,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	SourceURL    string `json:"sourceUrl,omitempty"`
	VariantsNote string `json:"variantsNote,omitempty"`
}

func toAppEntry(entry *snapshotEntry) *models.StaticCatalogEntry {
	return &models.StaticCatalogEntry{
		SKU:          entry.SKU,
		Title:        entry.Title,
		Size:         entry.Size,
		PackQuantity: entry.PackQuantity,
		ImageURL:     entry.ImageURL,
		SourceURL:    entry.SourceURL,
		VariantsNote: entry.VariantsNote,
	}
}
