package params

import "github.com/shopspring/decimal"

// CreateProduct carries a product creation request.
type CreateProduct struct {
	Price       *decimal.Decimal
	TaxRate     *decimal.Decimal
	Name        string
	Description string
	Code        string
	ImageURL    string
	Category    string
}

// UpdateProduct is a partial patch of a product. Nil means "leave
// unchanged". The code is immutable once assigned.
type UpdateProduct struct {
	Price       *decimal.Decimal
	TaxRate     *decimal.Decimal
	Name        *string
	Description *string
	ImageURL    *string
	Category    *string
	Available   *bool
}
