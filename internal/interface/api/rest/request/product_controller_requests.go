package request

import (
	"github.com/alesweet/order-service/internal/application/params"
	"github.com/shopspring/decimal"
)

// CreateProduct defines the body of POST /api/products.
type CreateProduct struct {
	Price       *decimal.Decimal `json:"price"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Code        string           `json:"code"`
	ImageURL    string           `json:"imageUrl"`
	Category    string           `json:"category"`
}

func (r *CreateProduct) ToParams() *params.CreateProduct {
	return &params.CreateProduct{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Code:        r.Code,
		TaxRate:     r.TaxRate,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
	}
}

// UpdateProduct defines the body of PUT /api/products/{id}.
type UpdateProduct struct {
	Price       *decimal.Decimal `json:"price"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageUrl"`
	Category    *string          `json:"category"`
	Available   *bool            `json:"available"`
}

func (r *UpdateProduct) ToParams() *params.UpdateProduct {
	return &params.UpdateProduct{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		TaxRate:     r.TaxRate,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Available:   r.Available,
	}
}
