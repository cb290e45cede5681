package params

import (
	"time"

	"github.com/alesweet/order-service/internal/domain/entities"
)

// CreateOrder carries a validated-later order creation request.
// Any client-supplied total is dropped before this struct is built;
// the total is always recomputed server-side.
type CreateOrder struct {
	DeliveryDate    time.Time
	InstitutionName *string
	StoreName       *string
	Priority        *int
	CustomerKind    string
	CustomerName    string
	CustomerPhone   string
	CustomerTaxID   string
	DeliveryAddress string
	Occasion        string
	Status          string
	LineItems       entities.LineItems
}

// UpdateOrder is a partial patch of an order. Nil means "leave unchanged".
// The order number and the total are deliberately not patchable: the number
// is immutable and the total is derived from the line items.
type UpdateOrder struct {
	DeliveryDate    *time.Time
	InstitutionName *string
	StoreName       *string
	Priority        *int
	CustomerKind    *string
	CustomerName    *string
	CustomerPhone   *string
	CustomerTaxID   *string
	DeliveryAddress *string
	Occasion        *string
	Status          *string
	LineItems       *entities.LineItems
}
