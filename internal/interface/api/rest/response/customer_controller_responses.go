package response

import (
	"time"

	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/google/uuid"
)

// Customer is the wire representation of an address-book record.
type Customer struct {
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Email     *string               `json:"email"`
	TaxID     *string               `json:"taxId"`
	Address   *string               `json:"address"`
	Name      string                `json:"name"`
	Phone     string                `json:"phone"`
	Kind      entities.CustomerKind `json:"kind"`
	ID        uuid.UUID             `json:"id"`
}

func NewCustomerFromEntity(e *entities.Customer) *Customer {
	return &Customer{
		ID:        e.ID,
		Name:      e.Name,
		Phone:     e.Phone,
		Email:     e.Email,
		TaxID:     e.TaxID,
		Address:   e.Address,
		Kind:      e.Kind,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func NewCustomersFromEntities(es []*entities.Customer) []*Customer {
	customers := make([]*Customer, len(es))
	for i, e := range es {
		customers[i] = NewCustomerFromEntity(e)
	}
	return customers
}

// CustomerMutation is returned by the mutating customer endpoints.
type CustomerMutation struct {
	Message  string    `json:"message"`
	Customer *Customer `json:"customer"`
}
