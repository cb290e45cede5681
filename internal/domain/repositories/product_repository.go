package repositories

import (
	"context"

	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/google/uuid"
)

// ProductRepository persists catalog records.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error)
	GetProducts(ctx context.Context) ([]*entities.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	UpdateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
