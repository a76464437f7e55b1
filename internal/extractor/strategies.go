package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// strategy extracts one field value from a parsed page.
// Strategies for the same field are evaluated in order until one succeeds.
type strategy func(doc *goquery.Document) (string, bool)

// firstMatch returns the value of the first successful strategy.
func firstMatch(doc *goquery.Document, strategies ...strategy) string {
	for _, str := range strategies {
		if value, ok := str(doc); ok {
			return value
		}
	}
	return ""
}

// selectorText returns a strategy extracting trimmed text of the first element matching selector.
func selectorText(selector string) strategy {
	return func(doc *goquery.Document) (string, bool) {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		return text, text != ""
	}
}

// metaContent returns a strategy extracting the content attribute of a meta tag.
func metaContent(name string) strategy {
	return func(doc *goquery.Document) (string, bool) {
		content, _ := doc.Find("meta[name='" + name + "']").First().Attr("content")
		content = strings.TrimSpace(content)
		return content, content != ""
	}
}

// urlSlug returns a strategy deriving a SKU from the last path segment of pageURL.
// Segments like "widget-large-1001" yield "1001".
func urlSlug(pageURL string) strategy {
	return func(*goquery.Document) (string, bool) {
		segment := lastPathSegment(pageURL)
		if segment == "" {
			return "", false
		}
		parts := strings.Split(segment, "-")
		sku := parts[len(parts)-1]
		return sku, sku != ""
	}
}

// lastPathSegment returns the last non-empty path segment of rawURL.
func lastPathSegment(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for ix := len(segments) - 1; ix >= 0; ix-- {
		if segments[ix] != "" {
			return segments[ix]
		}
	}
	return ""
}

func titleStrategies() []strategy {
	return []strategy{
		selectorText("h1.product-title"),
		selectorText("title"),
	}
}

func skuStrategies(pageURL string) []strategy {
	return []strategy{
		selectorText(".product-sku"),
		selectorText("[itemprop='sku']"),
		urlSlug(pageURL),
	}
}

func descriptionStrategies() []strategy {
	return []strategy{
		selectorText(".product-description"),
		selectorText("#description"),
		metaContent("description"),
	}
}

func priceStrategies() []strategy {
	return []strategy{
		selectorText(".product-price .price-value"),
		selectorText(".price"),
	}
}

func availabilityStrategies() []strategy {
	return []strategy{
		selectorText(".availability"),
		selectorText(".stock-status"),
	}
}
