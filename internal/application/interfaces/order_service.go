package interfaces

import (
	"context"

	"github.com/alesweet/order-service/internal/application/params"
	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/google/uuid"
)

// OrderService validates order requests, allocates numbers, computes
// totals and enforces the status enum before touching the repository.
type OrderService interface {
	CreateOrder(ctx context.Context, p *params.CreateOrder) (*entities.Order, error)
	GetOrders(ctx context.Context) ([]*entities.Order, error)
	GetOrdersByStatus(ctx context.Context, status string) ([]*entities.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*entities.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, p *params.UpdateOrder) (*entities.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
