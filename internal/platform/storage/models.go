package storage

import (
	"encoding/json"
	"strings"

	"github.com/partsflow/catalog-pipeline/internal/platform/models"

	pgmodels "github.com/partsflow/catalog-pipeline/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

// ToDBProduct converts models.CanonicalProduct into postgres product model.
func ToDBProduct(product *models.CanonicalProduct) *pgmodels.Product {
	return &pgmodels.Product{
		ID:               int32(product.ID),
		Sku:              models.NormalizeSKU(product.SKU),
		Title:            product.Title,
		Description:      product.Description,
		Price:            product.Price,
		OriginalPrice:    product.OriginalPrice,
		Category:         product.Category,
		Specifications:   toDBSpecifications(product.Specifications),
		Tags:             strings.Join(product.Tags, ","),
		Images:           joinLines(product.Images),
		Image:            product.Image,
		IsActive:         product.IsActive,
		IsFeatured:       product.IsFeatured,
		StockQuantity:    int32(product.StockQuantity),
		MinOrderQuantity: int32(product.MinOrderQuantity),
		MaxOrderQuantity: int32(product.MaxOrderQuantity),
		Weight:           product.Weight,
		DimLength:        product.Dimensions.Length,
		DimWidth:         product.Dimensions.Width,
		DimHeight:        product.Dimensions.Height,
		SeoTitle:         product.SEOTitle,
		SeoDescription:   product.SEODescription,
		MetaKeywords:     product.MetaKeywords,
		DataSource:       product.DataSource,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}

// ToAppProduct converts postgres product model into models.CanonicalProduct.
func ToAppProduct(product *pgmodels.Product) models.CanonicalProduct {
	return models.CanonicalProduct{
		ID:               int(product.ID),
		SKU:              product.Sku,
		Title:            product.Title,
		Description:      product.Description,
		Price:            product.Price,
		OriginalPrice:    product.OriginalPrice,
		Category:         product.Category,
		Specifications:   toAppSpecifications(product.Specifications),
		Tags:             splitList(product.Tags, ","),
		Images:           splitList(product.Images, "\n"),
		Image:            product.Image,
		IsActive:         product.IsActive,
		IsFeatured:       product.IsFeatured,
		StockQuantity:    int(product.StockQuantity),
		MinOrderQuantity: int(product.MinOrderQuantity),
		MaxOrderQuantity: int(product.MaxOrderQuantity),
		Weight:           product.Weight,
		Dimensions: models.Dimensions{
			Length: product.DimLength,
			Width:  product.DimWidth,
			Height: product.DimHeight,
		},
		SEOTitle:       product.SeoTitle,
		SEODescription: product.SeoDescription,
		MetaKeywords:   product.MetaKeywords,
		DataSource:     product.DataSource,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

func toDBSpecifications(specs map[string]string) string {
	if len(specs) == 0 {
		return ""
	}

	// map marshalling is deterministic, keys are sorted.
	encoded, err := json.Marshal(specs)
	if err != nil {
		return ""
	}
	return string(encoded)
}

func toAppSpecifications(encoded string) map[string]string {
	if encoded == "" {
		return nil
	}

	specs := map[string]string{}
	if err := json.Unmarshal([]byte(encoded), &specs); err != nil {
		return nil
	}
	return specs
}

func joinLines(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.Join(values, "\n")
}

func splitList(encoded, separator string) []string {
	if encoded == "" {
		return nil
	}
	return strings.Split(encoded, separator)
}
