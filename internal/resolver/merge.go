package resolver

import (
	"strconv"
	"strings"
	"time"

	"github.com/partsflow/catalog-pipeline/internal/platform/models"
)

// Seed specification labels used when the static catalog supplies
// fields the scrape didn't produce.
const (
	specLabelSize     = "Size"
	specLabelPackQty  = "Pack quantity"
	specLabelVariants = "Variants"
)

// Merge builds a canonical record from a scrape result, with the seed entry
// filling the gaps. Scraped fields take precedence; scraping cannot determine
// real stock, so the record starts with zero stock.
func Merge(sku string, entry models.StaticCatalogEntry, scraped models.ScrapedProduct, now time.Time) models.CanonicalProduct {
	product := models.CanonicalProduct{
		SKU:              models.NormalizeSKU(sku),
		Title:            scraped.Title,
		Description:      scraped.Description,
		Price:            ParsePrice(scraped.Price),
		Category:         scraped.Category,
		Specifications:   cloneSpecifications(scraped.Specifications),
		Tags:             scraped.Breadcrumbs,
		Images:           scraped.Images,
		IsActive:         true,
		IsFeatured:       false,
		StockQuantity:    0,
		MinOrderQuantity: 1,
		DataSource:       models.DataSourceScraped,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if product.Title == "" {
		product.Title = entry.Title
	}

	if len(product.Images) > 0 {
		product.Image = product.Images[0]
	} else if entry.ImageURL != "" {
		product.Image = entry.ImageURL
		product.Images = []string{entry.ImageURL}
	}

	product.Specifications = seedSpecifications(product.Specifications, entry)

	return product
}

// StaticProduct builds a minimal canonical record solely from seed fields.
// It is a last-resort fallback and is never persisted.
func StaticProduct(sku string, entry models.StaticCatalogEntry, now time.Time) models.CanonicalProduct {
	product := models.CanonicalProduct{
		SKU:              models.NormalizeSKU(sku),
		Title:            entry.Title,
		Image:            entry.ImageURL,
		IsActive:         true,
		StockQuantity:    0,
		MinOrderQuantity: 1,
		DataSource:       models.DataSourceStatic,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if entry.ImageURL != "" {
		product.Images = []string{entry.ImageURL}
	}

	product.Specifications = seedSpecifications(nil, entry)

	return product
}

// ParsePrice parses a scraped price text like "£1,299.99" into a number.
// Unparseable text yields zero.
func ParsePrice(text string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}

// seedSpecifications adds seed-only fields to specs without
// overwriting scraped values.
func seedSpecifications(specs map[string]string, entry models.StaticCatalogEntry) map[string]string {
	seeded := map[string]string{
		specLabelSize:     entry.Size,
		specLabelPackQty:  entry.PackQuantity,
		specLabelVariants: entry.VariantsNote,
	}

	for label, value := range seeded {
		if value == "" {
			continue
		}
		if specs == nil {
			specs = map[string]string{}
		}
		if _, ok := specs[label]; !ok {
			specs[label] = value
		}
	}

	return specs
}

func cloneSpecifications(specs map[string]string) map[string]string {
	if specs == nil {
		return nil
	}

	cloned := make(map[string]string, len(specs))
	for label, value := range specs {
		cloned[label] = value
	}
	return cloned
}
