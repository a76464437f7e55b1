// Package testdata contains expected extraction results for the sample pages.
package testdata

import "github.com/partsflow/catalog-pipeline/internal/platform/models"

// ProductPageURL is the source URL of product.html.
const ProductPageURL = "https://supplier.example.com/products/hex-bolt-m8-40mm"

// Product is the expected extraction result for product.html.
var Product = models.ScrapedProduct{
	SKU:         "HB-M8-40",
	Title:       "Hex Bolt M8 x 40mm",
	Description: "Zinc-plated hex bolt, 40mm length, M8 thread.",
	Price:       "£4.99",
	Images: []string{
		"https://cdn.supplier.example.com/hb-m8-40/front.jpg",
		"https://supplier.example.com/images/hb-m8-40/side.jpg",
		"https://supplier.example.com/images/hb-m8-40/detail.jpg",
	},
	Specifications: map[string]string{
		"Thread": "M8",
		"Length": "40mm",
		"Finish": "Bright zinc plated",
		"Grade":  "8.8",
	},
	Availability: "In stock",
	Category:     "Bolts",
	Breadcrumbs:  []string{"Fasteners", "Bolts"},
	Related: []models.RelatedRef{
		{
			SKU:   "hex-nut-m8",
			Title: "Hex Nut M8",
			URL:   "https://supplier.example.com/products/hex-nut-m8",
		},
		{
			SKU:   "washer-m8",
			Title: "Washer M8",
			URL:   "https://supplier.example.com/products/washer-m8",
		},
	},
}
