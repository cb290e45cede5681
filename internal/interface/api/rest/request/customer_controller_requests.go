package request

import "github.com/alesweet/order-service/internal/application/params"

// CreateCustomer defines the body of POST /api/customers.
type CreateCustomer struct {
	Email   *string `json:"email"`
	TaxID   *string `json:"taxId"`
	Address *string `json:"address"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Kind    string  `json:"kind"`
}

func (r *CreateCustomer) ToParams() *params.CreateCustomer {
	return &params.CreateCustomer{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		TaxID:   r.TaxID,
		Address: r.Address,
		Kind:    r.Kind,
	}
}

// UpdateCustomer defines the body of PUT /api/customers/{id}.
type UpdateCustomer struct {
	Email   *string `json:"email"`
	TaxID   *string `json:"taxId"`
	Address *string `json:"address"`
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Kind    *string `json:"kind"`
}

func (r *UpdateCustomer) ToParams() *params.UpdateCustomer {
	return &params.UpdateCustomer{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		TaxID:   r.TaxID,
		Address: r.Address,
		Kind:    r.Kind,
	}
}
