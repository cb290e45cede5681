package params

// CreateCustomer carries a customer creation request.
type CreateCustomer struct {
	Email   *string
	TaxID   *string
	Address *string
	Name    string
	Phone   string
	Kind    string
}

// UpdateCustomer is a partial patch of a customer. Nil means
// "leave unchanged".
type UpdateCustomer struct {
	Email   *string
	TaxID   *string
	Address *string
	Name    *string
	Phone   *string
	Kind    *string
}
