package interfaces

import (
	"context"

	"github.com/alesweet/order-service/internal/application/params"
	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/google/uuid"
)

// ProductService manages the catalog.
type ProductService interface {
	CreateProduct(ctx context.Context, p *params.CreateProduct) (*entities.Product, error)
	GetProducts(ctx context.Context) ([]*entities.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, p *params.UpdateProduct) (*entities.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
