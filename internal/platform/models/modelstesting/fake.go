package modelstesting

import (
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/partsflow/catalog-pipeline/internal/platform/models"
)

// FakeCanonicalProduct returns models.CanonicalProduct with fake data.
func FakeCanonicalProduct(ops ...func(p *models.CanonicalProduct)) models.CanonicalProduct {
	product := models.CanonicalProduct{
		SKU:              models.NormalizeSKU(faker.Word()),
		Title:            faker.Sentence(),
		Description:      faker.Paragraph(),
		Price:            float64(rand.Intn(10000)) / 100,
		Category:         faker.Word(),
		Specifications:   fakeSpecifications(),
		Tags:             fakeWords(3),
		Images:           fakeImageURLs(),
		IsActive:         true,
		StockQuantity:    rand.Intn(100),
		MinOrderQuantity: 1,
		Weight:           float64(rand.Intn(500)) / 10,
		DataSource:       models.DataSourceAdmin,
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
		UpdatedAt:        time.Now().UTC().Truncate(time.Second),
	}
	if len(product.Images) > 0 {
		product.Image = product.Images[0]
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeScrapedProduct returns models.ScrapedProduct with fake data.
func FakeScrapedProduct(ops ...func(p *models.ScrapedProduct)) models.ScrapedProduct {
	product := models.ScrapedProduct{
		SKU:            models.NormalizeSKU(faker.Word()),
		Title:          faker.Sentence(),
		Description:    faker.Paragraph(),
		Price:          "£12.99",
		Images:         fakeImageURLs(),
		Specifications: fakeSpecifications(),
		Availability:   "In stock",
		Category:       faker.Word(),
		Breadcrumbs:    fakeWords(2),
	}

	for _, op := range ops {
		op(&product)
	}

	return product
}

// FakeCatalogEntry returns models.StaticCatalogEntry with fake data.
func FakeCatalogEntry(ops ...func(e *models.StaticCatalogEntry)) models.StaticCatalogEntry {
	entry := models.StaticCatalogEntry{
		SKU:       models.NormalizeSKU(faker.Word()),
		Title:     faker.Sentence(),
		Size:      faker.Word(),
		ImageURL:  faker.URL(),
		SourceURL: faker.URL(),
	}

	for _, op := range ops {
		op(&entry)
	}

	return entry
}

// FakeImportRow returns models.ImportRow with fake data.
func FakeImportRow(ops ...func(r *models.ImportRow)) models.ImportRow {
	row := models.ImportRow{
		RowNumber:        2,
		SKU:              models.NormalizeSKU(faker.Word()),
		Title:            faker.Sentence(),
		Description:      faker.Paragraph(),
		Price:            float64(rand.Intn(10000)) / 100,
		Category:         faker.Word(),
		Specifications:   fakeSpecifications(),
		Tags:             fakeWords(2),
		Images:           fakeImageURLs(),
		IsActive:         true,
		StockQuantity:    rand.Intn(100),
		MinOrderQuantity: 1,
	}

	for _, op := range ops {
		op(&row)
	}

	return row
}

func fakeSpecifications() map[string]string {
	specsLen := rand.Intn(4)
	specs := make(map[string]string, specsLen)
	for i := 0; i < specsLen; i++ {
		specs[faker.Word()] = faker.Word()
	}

	return specs
}

func fakeImageURLs() []string {
	imagesLen := rand.Intn(4)
	images := make([]string, 0, imagesLen)
	for i := 0; i < imagesLen; i++ {
		images = append(images, faker.URL())
	}

	return images
}

func fakeWords(max int) []string {
	wordsLen := rand.Intn(max + 1)
	words := make([]string, 0, wordsLen)
	for i := 0; i < wordsLen; i++ {
		words = append(words, faker.Word())
	}

	return words
}
