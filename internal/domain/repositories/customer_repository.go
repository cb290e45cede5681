package repositories

import (
	"context"

	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/google/uuid"
)

// CustomerRepository persists address-book records.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *entities.Customer) (*entities.Customer, error)
	GetCustomers(ctx context.Context) ([]*entities.Customer, error)
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	UpdateCustomer(ctx context.Context, customer *entities.Customer) (*entities.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}
