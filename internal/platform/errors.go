package platform

import (
	"errors"
)

var (
	// ErrNotFound is returned when no product exists for the requested SKU.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateSKU is returned when an insert conflicts with the unique SKU constraint.
	ErrDuplicateSKU = errors.New("product with this SKU already exists")
)
