package request

import (
	"time"

	"github.com/alesweet/order-service/internal/application/params"
	"github.com/alesweet/order-service/internal/domain/entities"
)

// CreateOrder defines the body of POST /api/orders. There is no total
// field on purpose: a client-supplied total is silently dropped by the
// decoder and recomputed server-side.
type CreateOrder struct {
	DeliveryDate    time.Time          `json:"deliveryDate"`
	InstitutionName *string            `json:"institutionName"`
	StoreName       *string            `json:"storeName"`
	Priority        *int               `json:"priority"`
	CustomerKind    string             `json:"customerKind"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerTaxID   string             `json:"customerTaxId"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Occasion        string             `json:"occasion"`
	Status          string             `json:"status"`
	LineItems       entities.LineItems `json:"lineItems"`
}

func (r *CreateOrder) ToParams() *params.CreateOrder {
	return &params.CreateOrder{
		CustomerKind:    r.CustomerKind,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerTaxID:   r.CustomerTaxID,
		InstitutionName: r.InstitutionName,
		StoreName:       r.StoreName,
		DeliveryAddress: r.DeliveryAddress,
		Occasion:        r.Occasion,
		LineItems:       r.LineItems,
		DeliveryDate:    r.DeliveryDate,
		Status:          r.Status,
		Priority:        r.Priority,
	}
}

// UpdateOrder defines the body of PUT /api/orders/{id}. Absent fields
// stay unchanged.
type UpdateOrder struct {
	DeliveryDate    *time.Time          `json:"deliveryDate"`
	InstitutionName *string             `json:"institutionName"`
	StoreName       *string             `json:"storeName"`
	Priority        *int                `json:"priority"`
	CustomerKind    *string             `json:"customerKind"`
	CustomerName    *string             `json:"customerName"`
	CustomerPhone   *string             `json:"customerPhone"`
	CustomerTaxID   *string             `json:"customerTaxId"`
	DeliveryAddress *string             `json:"deliveryAddress"`
	Occasion        *string             `json:"occasion"`
	Status          *string             `json:"status"`
	LineItems       *entities.LineItems `json:"lineItems"`
}

func (r *UpdateOrder) ToParams() *params.UpdateOrder {
	return &params.UpdateOrder{
		CustomerKind:    r.CustomerKind,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerTaxID:   r.CustomerTaxID,
		InstitutionName: r.InstitutionName,
		StoreName:       r.StoreName,
		DeliveryAddress: r.DeliveryAddress,
		Occasion:        r.Occasion,
		LineItems:       r.LineItems,
		DeliveryDate:    r.DeliveryDate,
		Status:          r.Status,
		Priority:        r.Priority,
	}
}

// UpdateOrderStatus defines the body of PUT /api/orders/{id}/status.
type UpdateOrderStatus struct {
	Status string `json:"status"`
}
