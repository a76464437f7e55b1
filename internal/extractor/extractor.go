package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/partsflow/catalog-pipeline/internal/platform/models"
)

const (
	imageSelectors      = ".product-gallery img, .product-images img, img.product-image"
	breadcrumbSelectors = ".breadcrumb a, nav.breadcrumbs a, .breadcrumbs a"
	specRowSelectors    = ".specifications tr, table.product-specs tr"
	specTermSelector    = ".product-specs dt, dl.specs dt"
	relatedSelectors    = ".related-products .product-card, .related-products li"
)

// Extractor converts product page HTML into structured products.
// It is stateless and safe for concurrent use.
type Extractor struct{}

// Extract parses page and returns structured product data.
// An error is returned only when the HTML cannot be parsed at all;
// a page yielding no fields is a successful, low-confidence result.
func (e Extractor) Extract(page []byte, sourceURL string) (models.ScrapedProduct, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return models.ScrapedProduct{}, fmt.Errorf("can't parse product page: %w", err)
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		base = nil
	}

	breadcrumbs := extractBreadcrumbs(doc)

	product := models.ScrapedProduct{
		SKU:            firstMatch(doc, skuStrategies(sourceURL)...),
		Title:          firstMatch(doc, titleStrategies()...),
		Description:    firstMatch(doc, descriptionStrategies()...),
		Price:          firstMatch(doc, priceStrategies()...),
		Images:         extractImages(doc, base),
		Specifications: extractSpecifications(doc),
		Availability:   firstMatch(doc, availabilityStrategies()...),
		Breadcrumbs:    breadcrumbs,
		Related:        extractRelated(doc, base),
	}
	product.Category = extractCategory(doc, breadcrumbs)

	return product, nil
}

// extractImages collects deduplicated absolute image URLs.
// Relative paths are resolved against the page origin; lazy-loading
// placeholders are excluded.
func extractImages(doc *goquery.Document, base *url.URL) []string {
	var images []string
	seen := map[string]struct{}{}

	doc.Find(imageSelectors).Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		src = strings.TrimSpace(src)

		// lazy-loaded galleries keep the real URL in data-src behind a placeholder src.
		if src == "" || isPlaceholder(src) {
			dataSrc, _ := img.Attr("data-src")
			if dataSrc = strings.TrimSpace(dataSrc); dataSrc != "" {
				src = dataSrc
			}
		}

		if src == "" || isPlaceholder(src) {
			return
		}

		absolute := resolveURL(base, src)
		if absolute == "" {
			return
		}

		if _, ok := seen[absolute]; ok {
			return
		}
		seen[absolute] = struct{}{}
		images = append(images, absolute)
	})

	return images
}

// extractSpecifications merges both supported specification shapes
// (label/value table rows and definition lists) into one map.
// Later entries for the same label overwrite earlier ones.
func extractSpecifications(doc *goquery.Document) map[string]string {
	specs := map[string]string{}

	doc.Find(specRowSelectors).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if label == "" || value == "" {
			return
		}
		specs[label] = value
	})

	doc.Find(specTermSelector).Each(func(_ int, term *goquery.Selection) {
		label := strings.TrimSpace(term.Text())
		value := strings.TrimSpace(term.NextFiltered("dd").Text())
		if label == "" || value == "" {
			return
		}
		specs[label] = value
	})

	if len(specs) == 0 {
		return nil
	}
	return specs
}

// extractBreadcrumbs returns breadcrumb anchor texts, excluding the literal "home" crumb.
func extractBreadcrumbs(doc *goquery.Document) []string {
	var crumbs []string

	doc.Find(breadcrumbSelectors).Each(func(_ int, anchor *goquery.Selection) {
		text := strings.TrimSpace(anchor.Text())
		if text == "" || strings.EqualFold(text, "home") {
			return
		}
		crumbs = append(crumbs, text)
	})

	return crumbs
}

// extractCategory derives the category from the last breadcrumb,
// falling back to the page category title.
func extractCategory(doc *goquery.Document, breadcrumbs []string) string {
	if len(breadcrumbs) > 0 {
		return breadcrumbs[len(breadcrumbs)-1]
	}
	return firstMatch(doc, selectorText(".category-title"))
}

// extractRelated collects related-product references. A reference requires
// a non-empty title and URL; its SKU defaults to the URL's last path segment.
func extractRelated(doc *goquery.Document, base *url.URL) []models.RelatedRef {
	var related []models.RelatedRef

	doc.Find(relatedSelectors).Each(func(_ int, card *goquery.Selection) {
		anchor := card.Find("a[href]").First()
		href, _ := anchor.Attr("href")
		href = resolveURL(base, strings.TrimSpace(href))

		title := strings.TrimSpace(card.Find(".product-title").First().Text())
		if title == "" {
			title = strings.TrimSpace(anchor.Text())
		}

		if title == "" || href == "" {
			return
		}

		related = append(related, models.RelatedRef{
			SKU:   lastPathSegment(href),
			Title: title,
			URL:   href,
		})
	})

	return related
}

func isPlaceholder(src string) bool {
	return strings.Contains(src, "loading") || strings.Contains(src, "placeholder")
}

// resolveURL resolves ref against base, returning an absolute URL or empty string.
func resolveURL(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	if parsed.IsAbs() {
		return parsed.String()
	}

	if base == nil || !base.IsAbs() {
		return ""
	}

	return base.ResolveReference(parsed).String()
}
