package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog record. Orders never reference products live;
// they embed a snapshot of the document at creation time.
type Product struct {
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Code        string          `db:"code" json:"code"`
	ImageURL    string          `db:"image_url" json:"image_url"`
	Category    string          `db:"category" json:"category"`
	Price       decimal.Decimal `db:"price" json:"price"`
	TaxRate     decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	ID          uuid.UUID       `db:"id" json:"id"`
	Available   bool            `db:"available" json:"available"`
}

// Catalog defaults.
const (
	DefaultCategory = "General"
	DefaultTaxRate  = "0.15"
)
