package repositories

import (
	"context"

	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/google/uuid"
)

// OrderRepository persists orders. CreateOrder owns the order number
// allocation: the number and the row must appear atomically, so a failed
// insert never consumes a number.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error)
	GetOrders(ctx context.Context) ([]*entities.Order, error)
	GetOrdersByStatus(ctx context.Context, status entities.OrderStatus) ([]*entities.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	UpdateOrder(ctx context.Context, order *entities.Order) (*entities.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}
