package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoHeaderRow is returned when the file has no header row.
var ErrNoHeaderRow = errors.New("import file has no header row")

// Canonical column keys. Header cells are matched case-insensitively
// through columnAliases.
const (
	colSKU              = "sku"
	colTitle            = "title"
	colDescription      = "description"
	colPrice            = "price"
	colOriginalPrice    = "original_price"
	colCategory         = "category"
	colSpecifications   = "specifications"
	colTags             = "tags"
	colImages           = "images"
	colIsActive         = "is_active"
	colIsFeatured       = "is_featured"
	colStockQuantity    = "stock_quantity"
	colMinOrderQuantity = "min_order_quantity"
	colMaxOrderQuantity = "max_order_quantity"
	colWeight           = "weight"
	colLength           = "length"
	colWidth            = "width"
	colHeight           = "height"
	colSEOTitle         = "seo_title"
	colSEODescription   = "seo_description"
	colMetaKeywords     = "meta_keywords"
)

var columnAliases = map[string]string{
	"sku":                colSKU,
	"product sku":        colSKU,
	"code":               colSKU,
	"title":              colTitle,
	"name":               colTitle,
	"product name":       colTitle,
	"description":        colDescription,
	"price":              colPrice,
	"original price":     colOriginalPrice,
	"was price":          colOriginalPrice,
	"category":           colCategory,
	"specifications":     colSpecifications,
	"specs":              colSpecifications,
	"tags":               colTags,
	"images":             colImages,
	"image urls":         colImages,
	"image":              colImages,
	"active":             colIsActive,
	"is active":          colIsActive,
	"featured":           colIsFeatured,
	"is featured":        colIsFeatured,
	"stock":              colStockQuantity,
	"stock quantity":     colStockQuantity,
	"quantity":           colStockQuantity,
	"min order quantity": colMinOrderQuantity,
	"moq":                colMinOrderQuantity,
	"max order quantity": colMaxOrderQuantity,
	"weight":             colWeight,
	"weight kg":          colWeight,
	"length":             colLength,
	"width":              colWidth,
	"height":             colHeight,
	"seo title":          colSEOTitle,
	"seo description":    colSEODescription,
	"meta keywords":      colMetaKeywords,
}

// ParseRows parses a spreadsheet into typed rows. The format is chosen from
// filenameHint's extension; anything that is not ".csv" is read as xlsx. The
// first row is the header; headers are matched case-insensitively against
// known aliases and unknown columns are ignored. Row numbers are 1-based
// source file positions, so the first data row is 2.
func ParseRows(data []byte, filenameHint string) ([]models.ImportRow, error) {
	var (
		records [][]string
		err     error
	)

	if strings.EqualFold(filepath.Ext(filenameHint), ".csv") {
		records, err = readCSV(data)
	} else {
		records, err = readXLSX(data)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoHeaderRow
	}

	columns := mapHeader(records[0])
	if _, ok := columns[colSKU]; !ok {
		return nil, fmt.Errorf("import file has no %q column", colSKU)
	}

	var rows []models.ImportRow
	for n, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		rows = append(rows, parseRecord(record, columns, n+2))
	}

	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("can't read csv: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("can't open xlsx: %w", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("xlsx file has no sheets")
	}

	records, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("can't read xlsx rows: %w", err)
	}

	return records, nil
}

func mapHeader(header []string) map[string]int {
	columns := map[string]int{}
	for index, cell := range header {
		key, ok := columnAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		if _, mapped := columns[key]; !mapped {
			columns[key] = index
		}
	}
	return columns
}

func parseRecord(record []string, columns map[string]int, rowNumber int) models.ImportRow {
	cell := func(key string) string {
		index, ok := columns[key]
		if !ok || index >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[index])
	}

	priceText := cell(colPrice)
	stockText := cell(colStockQuantity)

	row := models.ImportRow{
		RowNumber:         rowNumber,
		SKU:               cell(colSKU),
		Title:             cell(colTitle),
		Description:       cell(colDescription),
		Price:             parseFloat(priceText),
		PriceText:         priceText,
		OriginalPrice:     parseFloat(cell(colOriginalPrice)),
		Category:          cell(colCategory),
		Specifications:    parseSpecifications(cell(colSpecifications)),
		Tags:              splitList(cell(colTags)),
		Images:            splitList(cell(colImages)),
		IsActive:          parseBool(cell(colIsActive), true),
		IsFeatured:        parseBool(cell(colIsFeatured), false),
		StockQuantity:     parseInt(stockText),
		StockQuantityText: stockText,
		MinOrderQuantity:  parseInt(cell(colMinOrderQuantity)),
		MaxOrderQuantity:  parseInt(cell(colMaxOrderQuantity)),
		Weight:            parseFloat(cell(colWeight)),
		Dimensions: models.Dimensions{
			Length: parseFloat(cell(colLength)),
			Width:  parseFloat(cell(colWidth)),
			Height: parseFloat(cell(colHeight)),
		},
		SEOTitle:       cell(colSEOTitle),
		SEODescription: cell(colSEODescription),
		MetaKeywords:   cell(colMetaKeywords),
	}

	if row.MinOrderQuantity == 0 {
		row.MinOrderQuantity = 1
	}

	return row
}

func parseFloat(text string) float64 {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return value
}

func parseInt(text string) int {
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return value
}

func isNumeric(text string) bool {
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}

func isInteger(text string) bool {
	_, err := strconv.Atoi(text)
	return err == nil
}

func parseBool(text string, fallback bool) bool {
	switch strings.ToLower(text) {
	case "true", "1", "yes", "y":
		return true
	case "false", "0", "no", "n":
		return false
	default:
		return fallback
	}
}

// parseSpecifications parses "Label: Value; Label: Value" cells.
func parseSpecifications(text string) map[string]string {
	var specs map[string]string

	for _, pair := range strings.Split(text, ";") {
		label, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		if label == "" || value == "" {
			continue
		}
		if specs == nil {
			specs = map[string]string{}
		}
		specs[label] = value
	}

	return specs
}

func splitList(text string) []string {
	var items []string
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
