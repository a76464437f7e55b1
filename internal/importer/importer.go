package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/partsflow/catalog-pipeline/internal/platform"
	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Storage --filename storage.go

const defaultParallelLimit = 8

// Storage is canonical products storage.
type Storage interface {
	// GetBySKU returns product with provided SKU or platform.ErrNotFound.
	GetBySKU(ctx context.Context, sku string) (*models.CanonicalProduct, error)
	// Upsert inserts product or replaces the existing record with the same
	// SKU. It reports whether a new record was created.
	Upsert(ctx context.Context, product *models.CanonicalProduct) (bool, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Option is custom configuration of Importer.
type Option func(i *Importer)

// Importer runs bulk spreadsheet imports: parse, validate, upsert.
type Importer struct {
	storage       Storage
	logger        *zerolog.Logger
	clock         Clock
	parallelLimit int
}

// NewImporter returns new Importer.
func NewImporter(storage Storage, logger *zerolog.Logger, ops ...Option) *Importer {
	imp := &Importer{
		storage:       storage,
		logger:        logger,
		clock:         systemClock{},
		parallelLimit: defaultParallelLimit,
	}

	for _, op := range ops {
		op(imp)
	}

	return imp
}

// ImportBatch parses fileBytes, validates the rows and upserts them.
// Validation errors block the whole batch; nothing is persisted unless the
// batch validates cleanly. Per-row persistence failures never abort the rest
// of the batch.
func (i *Importer) ImportBatch(ctx context.Context, fileBytes []byte, filenameHint string) (models.ImportResult, error) {
	rows, err := ParseRows(fileBytes, filenameHint)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("can't parse import file: %w", err)
	}

	valid, rowErrors, warnings := i.Validate(ctx, rows)
	if len(rowErrors) > 0 {
		return models.ImportResult{
			FailedCount: len(rowErrors),
			Errors:      rowErrors,
			Warnings:    warnings,
		}, nil
	}

	result := i.Upsert(ctx, valid)
	result.Warnings = append(warnings, result.Warnings...)

	return result, nil
}

// ValidateBatch is a dry run of ImportBatch: it parses and validates
// fileBytes without touching storage. SuccessCount counts rows that would be
// upserted.
func (i *Importer) ValidateBatch(ctx context.Context, fileBytes []byte, filenameHint string) (models.ImportResult, error) {
	rows, err := ParseRows(fileBytes, filenameHint)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("can't parse import file: %w", err)
	}

	valid, rowErrors, warnings := i.Validate(ctx, rows)

	return models.ImportResult{
		SuccessCount: len(valid),
		FailedCount:  len(rowErrors),
		Errors:       rowErrors,
		Warnings:     warnings,
	}, nil
}

// Validate checks rows and returns the ones eligible for upsert. Rows with
// an empty SKU or title, and later duplicates of a SKU already seen in the
// batch, produce errors and are excluded. Existing records and suspicious
// values, negative or non-numeric, produce warnings only.
func (i *Importer) Validate(ctx context.Context, rows []models.ImportRow) ([]models.ImportRow, []models.ImportIssue, []models.ImportIssue) {
	var (
		valid    []models.ImportRow
		errs     []models.ImportIssue
		warnings []models.ImportIssue
	)

	seen := map[string]struct{}{}

	for _, row := range rows {
		row.SKU = models.NormalizeSKU(row.SKU)

		if row.SKU == "" {
			errs = append(errs, issue(row, "missing SKU"))
			continue
		}
		if row.Title == "" {
			errs = append(errs, issue(row, "missing title"))
			continue
		}
		if _, ok := seen[row.SKU]; ok {
			errs = append(errs, issue(row, "duplicate SKU in batch"))
			continue
		}
		seen[row.SKU] = struct{}{}

		if row.PriceText != "" && !isNumeric(row.PriceText) {
			warnings = append(warnings, issue(row, "non-numeric price"))
		}
		if row.Price < 0 {
			warnings = append(warnings, issue(row, "negative price"))
		}
		if row.StockQuantityText != "" && !isInteger(row.StockQuantityText) {
			warnings = append(warnings, issue(row, "non-numeric stock quantity"))
		}
		if row.StockQuantity < 0 {
			warnings = append(warnings, issue(row, "negative stock quantity"))
		}

		if _, err := i.storage.GetBySKU(ctx, row.SKU); err == nil {
			warnings = append(warnings, issue(row, "product already exists and will be updated"))
		} else if !errors.Is(err, platform.ErrNotFound) {
			i.logger.Warn().
				Err(err).
				Str("sku", row.SKU).
				Msg("can't check existing product")
		}

		valid = append(valid, row)
	}

	return valid, errs, warnings
}

// Upsert persists rows independently on a bounded worker pool. A failed row
// is recorded and the rest of the batch continues; counts reflect rows
// actually attempted.
func (i *Importer) Upsert(ctx context.Context, rows []models.ImportRow) models.ImportResult {
	var (
		mu     sync.Mutex
		result models.ImportResult
	)

	now := i.clock.Now()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(i.parallelLimit)

	for _, row := range rows {
		row := row
		group.Go(func() error {
			product := toProduct(row, now)

			_, err := i.storage.Upsert(groupCtx, &product)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, issue(row, fmt.Sprintf("can't save product: %v", err)))
				return nil
			}
			result.SuccessCount++
			return nil
		})
	}

	_ = group.Wait()

	sort.Slice(result.Errors, func(a, b int) bool {
		return result.Errors[a].Row < result.Errors[b].Row
	})

	return result
}

func toProduct(row models.ImportRow, now time.Time) models.CanonicalProduct {
	product := models.CanonicalProduct{
		SKU:              row.SKU,
		Title:            row.Title,
		Description:      row.Description,
		Price:            row.Price,
		Category:         row.Category,
		Specifications:   row.Specifications,
		Tags:             row.Tags,
		Images:           row.Images,
		IsActive:         row.IsActive,
		IsFeatured:       row.IsFeatured,
		StockQuantity:    row.StockQuantity,
		MinOrderQuantity: row.MinOrderQuantity,
		MaxOrderQuantity: row.MaxOrderQuantity,
		Weight:           row.Weight,
		Dimensions:       row.Dimensions,
		SEOTitle:         row.SEOTitle,
		SEODescription:   row.SEODescription,
		MetaKeywords:     row.MetaKeywords,
		DataSource:       models.DataSourceAdmin,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if row.OriginalPrice != 0 {
		originalPrice := row.OriginalPrice
		product.OriginalPrice = &originalPrice
	}
	if len(product.Images) > 0 {
		product.Image = product.Images[0]
	}

	return product
}

func issue(row models.ImportRow, message string) models.ImportIssue {
	return models.ImportIssue{
		Row:     row.RowNumber,
		SKU:     row.SKU,
		Message: message,
	}
}

// WithClock sets Importer's custom Clock.
func WithClock(c Clock) Option {
	return func(i *Importer) {
		i.clock = c
	}
}

// WithParallelLimit sets how many rows are upserted concurrently.
func WithParallelLimit(limit int) Option {
	return func(i *Importer) {
		if limit > 0 {
			i.parallelLimit = limit
		}
	}
}
