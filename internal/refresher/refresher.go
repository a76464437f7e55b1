package refresher

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/partsflow/catalog-pipeline/internal/resolver"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Extractor --filename extractor.go
//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Catalog --filename catalog.go

const (
	// DefaultMaxAgeHours is used when a refresh command carries no age.
	DefaultMaxAgeHours = 24

	defaultDelay = 500 * time.Millisecond
)

// Fetcher fetches product pages.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (io.ReadCloser, error)
}

// Extractor converts page HTML into a structured product.
type Extractor interface {
	Extract(page []byte, sourceURL string) (models.ScrapedProduct, error)
}

// Storage is canonical products storage.
type Storage interface {
	// ListStaleBefore returns non-admin products last updated strictly
	// before cutoff, oldest first.
	ListStaleBefore(ctx context.Context, cutoff time.Time) ([]models.CanonicalProduct, error)
	// Update replaces the product stored under sku.
	Update(ctx context.Context, sku string, product *models.CanonicalProduct) error
}

// Catalog is the static seed catalog.
type Catalog interface {
	Lookup(sku string) (models.StaticCatalogEntry, bool)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Option is custom configuration of Refresher.
type Option func(r *Refresher)

// Refresher re-scrapes stale cached records in place. Requests to the
// supplier are paced so a large backlog doesn't hammer it.
type Refresher struct {
	storage   Storage
	catalog   Catalog
	fetcher   Fetcher
	extractor Extractor
	logger    *zerolog.Logger
	clock     Clock
	limiter   *rate.Limiter
}

// NewRefresher returns new Refresher.
func NewRefresher(
	storage Storage,
	catalog Catalog,
	fetcher Fetcher,
	extractor Extractor,
	logger *zerolog.Logger,
	ops ...Option,
) *Refresher {
	ref := &Refresher{
		storage:   storage,
		catalog:   catalog,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger,
		clock:     systemClock{},
		limiter:   rate.NewLimiter(rate.Every(defaultDelay), 1),
	}

	for _, op := range ops {
		op(ref)
	}

	return ref
}

// RefreshStale re-scrapes every non-admin record last updated more than
// maxAgeHours ago. Each record is refreshed independently; a failed record is
// counted and skipped. Cancellation mid-run returns the partial counts.
func (r *Refresher) RefreshStale(ctx context.Context, maxAgeHours int) (succeeded, failed, total int, err error) {
	if maxAgeHours <= 0 {
		maxAgeHours = DefaultMaxAgeHours
	}

	cutoff := r.clock.Now().Add(-time.Duration(maxAgeHours) * time.Hour)

	stale, err := r.storage.ListStaleBefore(ctx, cutoff)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("can't list stale products: %w", err)
	}

	total = len(stale)

	for _, record := range stale {
		if err := r.limiter.Wait(ctx); err != nil {
			return succeeded, failed, total, fmt.Errorf("refresh interrupted: %w", err)
		}

		if r.refresh(ctx, record) {
			succeeded++
		} else {
			failed++
		}
	}

	r.logger.Info().
		Int("succeeded", succeeded).
		Int("failed", failed).
		Int("total", total).
		Msg("finished refreshing stale products")

	return succeeded, failed, total, nil
}

func (r *Refresher) refresh(ctx context.Context, record models.CanonicalProduct) bool {
	logger := r.logger.With().Str("sku", record.SKU).Logger()

	entry, ok := r.catalog.Lookup(record.SKU)
	if !ok || entry.SourceURL == "" {
		logger.Warn().Msg("no source url for stale product")
		return false
	}

	scraped, err := r.scrape(ctx, entry.SourceURL)
	if err != nil {
		logger.Warn().Err(err).Msg("can't re-scrape product")
		return false
	}
	if scraped.IsEmpty() {
		logger.Warn().Msg("re-scrape produced no usable fields")
		return false
	}

	product := resolver.Merge(record.SKU, entry, scraped, r.clock.Now())

	// A refresh replaces scraped fields only. Inventory and record
	// identity carry over from the stored row.
	product.ID = record.ID
	product.StockQuantity = record.StockQuantity
	product.MinOrderQuantity = record.MinOrderQuantity
	product.MaxOrderQuantity = record.MaxOrderQuantity
	product.IsFeatured = record.IsFeatured
	product.CreatedAt = record.CreatedAt

	if err := r.storage.Update(ctx, record.SKU, &product); err != nil {
		logger.Warn().Err(err).Msg("can't update refreshed product")
		return false
	}

	return true
}

func (r *Refresher) scrape(ctx context.Context, sourceURL string) (models.ScrapedProduct, error) {
	page, err := r.fetcher.FetchPage(ctx, sourceURL)
	if err != nil {
		return models.ScrapedProduct{}, fmt.Errorf("can't fetch product page: %w", err)
	}
	defer page.Close()

	body, err := io.ReadAll(page)
	if err != nil {
		return models.ScrapedProduct{}, fmt.Errorf("can't read product page: %w", err)
	}

	return r.extractor.Extract(body, sourceURL)
}

// WithClock sets Refresher's custom Clock.
func WithClock(c Clock) Option {
	return func(r *Refresher) {
		r.clock = c
	}
}

// WithDelay sets the minimum delay between supplier requests.
func WithDelay(delay time.Duration) Option {
	return func(r *Refresher) {
		if delay > 0 {
			r.limiter = rate.NewLimiter(rate.Every(delay), 1)
		}
	}
}
