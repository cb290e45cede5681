package interfaces

import (
	"context"

	"github.com/alesweet/order-service/internal/application/params"
	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/google/uuid"
)

// CustomerService manages the address book.
type CustomerService interface {
	CreateCustomer(ctx context.Context, p *params.CreateCustomer) (*entities.Customer, error)
	GetCustomers(ctx context.Context) ([]*entities.Customer, error)
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, p *params.UpdateCustomer) (*entities.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}
