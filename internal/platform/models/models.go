package models

import (
	"strings"
	"time"
)

// Data source provenance values for CanonicalProduct.
const (
	DataSourceAdmin   = "admin"
	DataSourceScraped = "scraped"
	DataSourceStatic  = "static"
)

// NormalizeSKU returns sku in the canonical form used for identity
// comparisons across all data sources.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// StaticCatalogEntry is an immutable seed record loaded at process start.
type StaticCatalogEntry struct {
	SKU          string
	Title        string
	Size         string
	PackQuantity string
	ImageURL     string
	SourceURL    string
	VariantsNote string
}

// RelatedRef is a reference to another product found on a scraped page.
type RelatedRef struct {
	SKU   string
	Title string
	URL   string
}

// ScrapedProduct is the result of extracting one product page.
// It is never persisted as-is, only merged into a CanonicalProduct.
type ScrapedProduct struct {
	SKU            string
	Title          string
	Description    string
	Price          string
	Images         []string
	Specifications map[string]string
	Availability   string
	Category       string
	Breadcrumbs    []string
	Related        []RelatedRef
}

// IsEmpty reports whether extraction found none of the fields worth merging.
func (p ScrapedProduct) IsEmpty() bool {
	return p.Title == "" &&
		p.Description == "" &&
		p.Price == "" &&
		len(p.Images) == 0 &&
		len(p.Specifications) == 0
}

// Dimensions are product physical dimensions.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// CanonicalProduct is the merged, authoritative product record.
// SKU is the sole external identity and is globally unique.
type CanonicalProduct struct {
	ID               int
	SKU              string
	Title            string
	Description      string
	Price            float64
	OriginalPrice    *float64
	Category         string
	Specifications   map[string]string
	Tags             []string
	Images           []string
	Image            string
	IsActive         bool
	IsFeatured       bool
	StockQuantity    int
	MinOrderQuantity int
	MaxOrderQuantity int
	Weight           float64
	Dimensions       Dimensions
	SEOTitle         string
	SEODescription   string
	MetaKeywords     string
	DataSource       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ImportRow is one typed spreadsheet row. RowNumber is the 1-based row
// number in the source file, used for error reporting.
type ImportRow struct {
	RowNumber        int
	SKU              string
	Title            string
	Description      string
	Price            float64
	OriginalPrice    float64
	Category         string
	Specifications   map[string]string
	Tags             []string
	Images           []string
	IsActive         bool
	IsFeatured       bool
	StockQuantity    int
	MinOrderQuantity int
	MaxOrderQuantity int
	Weight           float64
	Dimensions       Dimensions
	SEOTitle         string
	SEODescription   string
	MetaKeywords     string

	// PriceText and StockQuantityText keep the raw cell text. Parsing
	// coerces unparseable values to zero, so validation needs the
	// original text to warn about them.
	PriceText         string
	StockQuantityText string
}

// ImportIssue is one per-row error or warning from an import batch.
type ImportIssue struct {
	Row     int
	SKU     string
	Message string
}

// ImportResult is the report of one import batch. It is never persisted.
type ImportResult struct {
	SuccessCount int
	FailedCount  int
	Errors       []ImportIssue
	Warnings     []ImportIssue
}
