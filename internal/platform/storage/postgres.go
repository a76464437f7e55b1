package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/partsflow/catalog-pipeline/internal/platform"
	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/partsflow/catalog-pipeline/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/partsflow/catalog-pipeline/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

const uniqueViolationCode = "23505"

// Postgres is canonical products storage.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db: db,
	}
}

// GetBySKU returns product with provided SKU.
// It returns platform.ErrNotFound if no product exists for the SKU.
func (p Postgres) GetBySKU(ctx context.Context, sku string) (*models.CanonicalProduct, error) {
	var dbProduct pgmodels.Product
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.Sku.EQ(pg.String(models.NormalizeSKU(sku)))).
		QueryContext(ctx, p.db, &dbProduct)

	if errors.Is(err, qrm.ErrNoRows) {
		return nil, platform.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't get product from database: %w", err)
	}

	product := ToAppProduct(&dbProduct)

	return &product, nil
}

// Insert inserts new product.
// It returns platform.ErrDuplicateSKU if a product with the same SKU already exists.
func (p Postgres) Insert(ctx context.Context, product *models.CanonicalProduct) error {
	dbProduct := ToDBProduct(product)

	columnList := table.Product.AllColumns.Except(table.Product.ID)

	err := table.Product.INSERT(columnList).
		MODEL(dbProduct).
		RETURNING(table.Product.ID).
		QueryContext(ctx, p.db, dbProduct)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("can't insert product %q: %w", product.SKU, platform.ErrDuplicateSKU)
		}
		return fmt.Errorf("can't insert product into database: %w", err)
	}

	product.ID = int(dbProduct.ID)

	return nil
}

// Update updates all mutable fields of product with provided SKU.
// It returns platform.ErrNotFound if no product exists for the SKU.
func (p Postgres) Update(ctx context.Context, sku string, product *models.CanonicalProduct) error {
	columnList := table.Product.AllColumns.Except(
		table.Product.ID,
		table.Product.Sku,
		table.Product.CreatedAt,
	)

	result, err := table.Product.UPDATE(columnList).
		MODEL(ToDBProduct(product)).
		WHERE(table.Product.Sku.EQ(pg.String(models.NormalizeSKU(sku)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't update product: %w", err)
	}
	if rowsAffected == 0 {
		return platform.ErrNotFound
	}

	return nil
}

// Upsert inserts product or, when its SKU already exists, updates the existing record.
// Conflicting concurrent inserts of the same SKU are resolved as updates.
// Returns true when a new record was created.
func (p Postgres) Upsert(ctx context.Context, product *models.CanonicalProduct) (bool, error) {
	err := p.Insert(ctx, product)
	if err == nil {
		return true, nil
	}

	if !errors.Is(err, platform.ErrDuplicateSKU) {
		return false, err
	}

	return false, p.Update(ctx, product.SKU, product)
}

// ListStaleBefore returns all non-admin products with updatedAt strictly older than cutoff,
// oldest first. Admin records are never candidates for re-scraping.
func (p Postgres) ListStaleBefore(ctx context.Context, cutoff time.Time) ([]models.CanonicalProduct, error) {
	dbProducts := []pgmodels.Product{}
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(pg.AND(
			table.Product.DataSource.NOT_EQ(pg.String(models.DataSourceAdmin)),
			table.Product.UpdatedAt.LT(pg.TimestampzT(cutoff)),
		)).
		ORDER_BY(table.Product.UpdatedAt.ASC()).
		QueryContext(ctx, p.db, &dbProducts)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get stale products from database: %w", err)
	}

	products := lo.Map(dbProducts, func(dbProduct pgmodels.Product, _ int) models.CanonicalProduct {
		return ToAppProduct(&dbProduct)
	})

	return products, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
