package response

import (
	"time"

	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/google/uuid"
)

// Product is the wire representation of a catalog record.
type Product struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	TaxRate     float64   `json:"taxRate"`
	ID          uuid.UUID `json:"id"`
	Available   bool      `json:"available"`
}

func NewProductFromEntity(e *entities.Product) *Product {
	return &Product{
		ID:          e.ID,
		Name:        e.Name,
		Price:       e.Price.InexactFloat64(),
		Description: e.Description,
		Code:        e.Code,
		TaxRate:     e.TaxRate.InexactFloat64(),
		ImageURL:    e.ImageURL,
		Category:    e.Category,
		Available:   e.Available,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func NewProductsFromEntities(es []*entities.Product) []*Product {
	products := make([]*Product, len(es))
	for i, e := range es {
		products[i] = NewProductFromEntity(e)
	}
	return products
}

// ProductMutation is returned by the mutating product endpoints.
type ProductMutation struct {
	Message string   `json:"message"`
	Product *Product `json:"product"`
}

// Upload is returned by the image upload endpoint.
type Upload struct {
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
	Success  bool   `json:"success"`
}
