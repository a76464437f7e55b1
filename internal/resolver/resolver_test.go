package resolver_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/partsflow/catalog-pipeline/internal/platform"
	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/partsflow/catalog-pipeline/internal/platform/models/modelstesting"
	"github.com/partsflow/catalog-pipeline/internal/resolver"
	"github.com/partsflow/catalog-pipeline/internal/resolver/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	now       = time.Date(2024, time.April, 1, 1, 1, 1, 0, time.UTC)
	pageHTML  = []byte("<html><body><h1 class='product-title'>Widget</h1></body></html>")
	sourceURL = "https://supplier.example.com/products/widget-large-1001"
)

func TestUnitResolveAdminTier(t *testing.T) {
	stored := modelstesting.FakeCanonicalProduct(func(p *models.CanonicalProduct) {
		p.SKU = "WDG-1001"
		p.DataSource = models.DataSourceScraped // cached scrape, still served through the admin tier
	})

	storage := mocks.NewStorage(t)
	catalog := mocks.NewCatalog(t)
	fetcher := mocks.NewFetcher(t)
	extractor := mocks.NewExtractor(t)

	storage.On("GetBySKU", mock.Anything, "WDG-1001").Return(&stored, nil)

	res := newResolver(t, storage, catalog, fetcher, extractor)

	product, found, err := res.Resolve(context.TODO(), "wdg-1001")

	require.NoError(t, err, "shouldn't return any error")
	require.True(t, found, "should find product")
	assert.Equal(t, models.DataSourceAdmin, product.DataSource, "store hits should carry admin provenance")
	assert.Equal(t, stored.Title, product.Title, "should return the stored record")
	fetcher.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything)
}

func TestUnitResolveScrapeTier(t *testing.T) {
	entry := modelstesting.FakeCatalogEntry(func(e *models.StaticCatalogEntry) {
		e.SKU = "WDG-1001"
		e.SourceURL = sourceURL
		e.Size = "40mm"
	})
	scraped := modelstesting.FakeScrapedProduct(func(p *models.ScrapedProduct) {
		p.SKU = "WDG-1001"
	})
	want := resolver.Merge("WDG-1001", entry, scraped, now)

	storage := mocks.NewStorage(t)
	catalog := mocks.NewCatalog(t)
	fetcher := mocks.NewFetcher(t)
	extractor := mocks.NewExtractor(t)

	storage.On("GetBySKU", mock.Anything, "WDG-1001").Return(nil, platform.ErrNotFound)
	catalog.On("Lookup", "WDG-1001").Return(entry, true)
	fetcher.On("FetchPage", mock.Anything, sourceURL).Return(io.NopCloser(bytes.NewReader(pageHTML)), nil)
	extractor.On("Extract", pageHTML, sourceURL).Return(scraped, nil)
	storage.On("Insert", mock.Anything, &want).Return(nil)

	res := newResolver(t, storage, catalog, fetcher, extractor)

	product, found, err := res.Resolve(context.TODO(), "WDG-1001")

	require.NoError(t, err, "shouldn't return any error")
	require.True(t, found, "should find product")
	assert.Equal(t, want, product, "should return the merged scrape result")
	assert.Equal(t, models.DataSourceScraped, product.DataSource, "should carry scraped provenance")
}

func TestUnitResolveCacheWriteFailure(t *testing.T) {
	tests := map[string]error{
		"insert error":  assert.AnError,
		"duplicate sku": platform.ErrDuplicateSKU,
	}

	for name, insertErr := range tests {
		t.Run(name, func(t *testing.T) {
			entry := modelstesting.FakeCatalogEntry(func(e *models.StaticCatalogEntry) {
				e.SKU = "WDG-1001"
				e.SourceURL = sourceURL
			})
			scraped := modelstesting.FakeScrapedProduct(func(p *models.ScrapedProduct) {
				p.SKU = "WDG-1001"
			})

			storage := mocks.NewStorage(t)
			catalog := mocks.NewCatalog(t)
			fetcher := mocks.NewFetcher(t)
			extractor := mocks.NewExtractor(t)

			storage.On("GetBySKU", mock.Anything, "WDG-1001").Return(nil, platform.ErrNotFound)
			catalog.On("Lookup", "WDG-1001").Return(entry, true)
			fetcher.On("FetchPage", mock.Anything, sourceURL).Return(io.NopCloser(bytes.NewReader(pageHTML)), nil)
			extractor.On("Extract", pageHTML, sourceURL).Return(scraped, nil)
			storage.On("Insert", mock.Anything, mock.Anything).Return(insertErr)

			res := newResolver(t, storage, catalog, fetcher, extractor)

			product, found, err := res.Resolve(context.TODO(), "WDG-1001")

			require.NoError(t, err, "a failed cache write must not fail the read path")
			require.True(t, found, "should find product")
			assert.Equal(t, models.DataSourceScraped, product.DataSource, "should return the resolved value")
		})
	}
}

func TestUnitResolveStaticFallback(t *testing.T) {
	entry := modelstesting.FakeCatalogEntry(func(e *models.StaticCatalogEntry) {
		e.SKU = "WDG-1001"
		e.SourceURL = sourceURL
	})

	storage := mocks.NewStorage(t)
	catalog := mocks.NewCatalog(t)
	fetcher := mocks.NewFetcher(t)
	extractor := mocks.NewExtractor(t)

	storage.On("GetBySKU", mock.Anything, "WDG-1001").Return(nil, platform.ErrNotFound)
	catalog.On("Lookup", "WDG-1001").Return(entry, true)
	fetcher.On("FetchPage", mock.Anything, sourceURL).Return(nil, assert.AnError)

	res := newResolver(t, storage, catalog, fetcher, extractor)

	product, found, err := res.Resolve(context.TODO(), "WDG-1001")

	require.NoError(t, err, "a transport error should degrade, not fail")
	require.True(t, found, "should still find product via the seed entry")
	assert.Equal(t, resolver.StaticProduct("WDG-1001", entry, now), product, "should return the static record")
	storage.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUnitResolveEmptyScrapeFallsBackToStatic(t *testing.T) {
	entry := modelstesting.FakeCatalogEntry(func(e *models.StaticCatalogEntry) {
		e.SKU = "WDG-1001"
		e.SourceURL = sourceURL
	})

	storage := mocks.NewStorage(t)
	catalog := mocks.NewCatalog(t)
	fetcher := mocks.NewFetcher(t)
	extractor := mocks.NewExtractor(t)

	storage.On("GetBySKU", mock.Anything, "WDG-1001").Return(nil, platform.ErrNotFound)
	catalog.On("Lookup", "WDG-1001").Return(entry, true)
	fetcher.On("FetchPage", mock.Anything, sourceURL).Return(io.NopCloser(bytes.NewReader(pageHTML)), nil)
	extractor.On("Extract", pageHTML, sourceURL).Return(models.ScrapedProduct{}, nil)

	res := newResolver(t, storage, catalog, fetcher, extractor)

	product, found, err := res.Resolve(context.TODO(), "WDG-1001")

	require.NoError(t, err, "shouldn't return any error")
	require.True(t, found, "should find product")
	assert.Equal(t, models.DataSourceStatic, product.DataSource, "an unusable page should not be cached")
	storage.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUnitResolveNoSourceURL(t *testing.T) {
	entry := modelstesting.FakeCatalogEntry(func(e *models.StaticCatalogEntry) {
		e.SKU = "WDG-1001"
		e.SourceURL = ""
	})

	storage := mocks.NewStorage(t)
	catalog := mocks.NewCatalog(t)
	fetcher := mocks.NewFetcher(t)
	extractor := mocks.NewExtractor(t)

	storage.On("GetBySKU", mock.Anything, "WDG-1001").Return(nil, platform.ErrNotFound)
	catalog.On("Lookup", "WDG-1001").Return(entry, true)

	res := newResolver(t, storage, catalog, fetcher, extractor)

	product, found, err := res.Resolve(context.TODO(), "WDG-1001")

	require.NoError(t, err, "shouldn't return any error")
	require.True(t, found, "should find product")
	assert.Equal(t, models.DataSourceStatic, product.DataSource, "should serve the seed entry")
	fetcher.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything)
}

func TestUnitResolveNotFound(t *testing.T) {
	storage := mocks.NewStorage(t)
	catalog := mocks.NewCatalog(t)
	fetcher := mocks.NewFetcher(t)
	extractor := mocks.NewExtractor(t)

	storage.On("GetBySKU", mock.Anything, "WDG-1001").Return(nil, platform.ErrNotFound)
	catalog.On("Lookup", "WDG-1001").Return(models.StaticCatalogEntry{}, false)

	res := newResolver(t, storage, catalog, fetcher, extractor)

	product, found, err := res.Resolve(context.TODO(), "WDG-1001")

	require.NoError(t, err, "a clean miss is not an error")
	assert.False(t, found, "should not find product")
	assert.Empty(t, product.SKU, "should return an empty record")
}

func TestUnitResolveStorageError(t *testing.T) {
	storage := mocks.NewStorage(t)
	catalog := mocks.NewCatalog(t)
	fetcher := mocks.NewFetcher(t)
	extractor := mocks.NewExtractor(t)

	storage.On("GetBySKU", mock.Anything, "WDG-1001").Return(nil, assert.AnError)

	res := newResolver(t, storage, catalog, fetcher, extractor)

	_, found, err := res.Resolve(context.TODO(), "WDG-1001")

	require.ErrorIs(t, err, assert.AnError, "store failures should surface")
	assert.False(t, found, "should not find product")
}

func newResolver(
	t *testing.T,
	storage *mocks.Storage,
	catalog *mocks.Catalog,
	fetcher *mocks.Fetcher,
	extractor *mocks.Extractor,
) *resolver.Resolver {
	t.Helper()

	logger := zerolog.Nop()

	return resolver.NewResolver(
		storage,
		catalog,
		fetcher,
		extractor,
		&logger,
		resolver.WithClock(fakeClock{now: now}),
	)
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}
