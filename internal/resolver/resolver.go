package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/partsflow/catalog-pipeline/internal/platform"
	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Extractor --filename extractor.go
//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Catalog --filename catalog.go

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
	// GetBySKU returns product with provided SKU or platform.ErrNotFound.
	GetBySKU(ctx context.Context, sku string) (*models.CanonicalProduct, error)
	// Insert inserts new product, returning platform.ErrDuplicateSKU on a SKU conflict.
	Insert(ctx context.Context, product *models.CanonicalProduct) error
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

// Option is custom configuration of Resolver.
type Option func(r *Resolver)

// Resolver answers what the current truth for a SKU is. It cascades through
// the admin store, a live scrape of the static catalog's source URL, and the
// static seed data, in that order.
type Resolver struct {
	storage   Storage
	catalog   Catalog
	fetcher   Fetcher
	extractor Extractor
	logger    *zerolog.Logger
	clock     Clock
}

// NewResolver returns new Resolver.
func NewResolver(
	storage Storage,
	catalog Catalog,
	fetcher Fetcher,
	extractor Extractor,
	logger *zerolog.Logger,
	ops ...Option,
) *Resolver {
	res := &Resolver{
		storage:   storage,
		catalog:   catalog,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger,
		clock:     systemClock{},
	}

	for _, op := range ops {
		op(res)
	}

	return res
}

// Resolve returns the current canonical record for sku.
//
// An admin record always wins and is returned without any network traffic.
// On a store miss the catalog's source URL is scraped and the result is
// persisted as a write-through cache; a failed cache write is logged, never
// surfaced. When scraping fails but a seed entry exists, a static record is
// returned without persisting it. found is false when no tier matches.
func (r *Resolver) Resolve(ctx context.Context, sku string) (models.CanonicalProduct, bool, error) {
	sku = models.NormalizeSKU(sku)
	if sku == "" {
		return models.CanonicalProduct{}, false, nil
	}

	stored, err := r.storage.GetBySKU(ctx, sku)
	if err == nil {
		product := *stored
		product.DataSource = models.DataSourceAdmin
		return product, true, nil
	}
	if !errors.Is(err, platform.ErrNotFound) {
		return models.CanonicalProduct{}, false, fmt.Errorf("can't resolve product: %w", err)
	}

	entry, ok := r.catalog.Lookup(sku)
	if !ok {
		return models.CanonicalProduct{}, false, nil
	}

	if entry.SourceURL == "" {
		return StaticProduct(sku, entry, r.clock.Now()), true, nil
	}

	scraped, err := r.scrape(ctx, entry.SourceURL)
	if err != nil || scraped.IsEmpty() {
		if err != nil {
			r.logger.Debug().
				Err(err).
				Str("sku", sku).
				Msg("scrape failed, serving static fallback")
		}
		return StaticProduct(sku, entry, r.clock.Now()), true, nil
	}

	product := Merge(sku, entry, scraped, r.clock.Now())

	// Write-through cache. The resolved value is returned even when the
	// write fails; a duplicate key means a concurrent resolve won the race.
	if err := r.storage.Insert(ctx, &product); err != nil {
		if errors.Is(err, platform.ErrDuplicateSKU) {
			r.logger.Debug().
				Str("sku", sku).
				Msg("cache already warmed by concurrent resolve")
		} else {
			r.logger.Error().
				Err(err).
				Str("sku", sku).
				Msg("can't cache scraped product")
		}
	}

	return product, true, nil
}

func (r *Resolver) scrape(ctx context.Context, sourceURL string) (models.ScrapedProduct, error) {
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

// WithClock sets Resolver's custom Clock.
func WithClock(c Clock) Option {
	return func(r *Resolver) {
		r.clock = c
	}
}
