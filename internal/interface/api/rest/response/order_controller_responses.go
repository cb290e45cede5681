package response

import (
	"time"

	"github.com/alesweet/order-service/internal/domain/entities"
	"github.com/google/uuid"
)

// Order is the wire representation of an order entity.
type Order struct {
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	DeliveryDate    time.Time             `json:"deliveryDate"`
	InstitutionName *string               `json:"institutionName"`
	StoreName       *string               `json:"storeName"`
	Number          entities.OrderNumber  `json:"number"`
	CustomerKind    entities.CustomerKind `json:"customerKind"`
	CustomerName    string                `json:"customerName"`
	CustomerPhone   string                `json:"customerPhone"`
	CustomerTaxID   string                `json:"customerTaxId"`
	DeliveryAddress string                `json:"deliveryAddress"`
	Occasion        string                `json:"occasion"`
	Status          entities.OrderStatus  `json:"status"`
	LineItems       entities.LineItems    `json:"lineItems"`
	Total           float64               `json:"total"`
	Priority        int                   `json:"priority"`
	ID              uuid.UUID             `json:"id"`
}

func NewOrderFromEntity(e *entities.Order) *Order {
	return &Order{
		ID:              e.ID,
		Number:          e.Number,
		CustomerKind:    e.CustomerKind,
		CustomerName:    e.CustomerName,
		CustomerPhone:   e.CustomerPhone,
		CustomerTaxID:   e.CustomerTaxID,
		InstitutionName: e.InstitutionName,
		StoreName:       e.StoreName,
		DeliveryAddress: e.DeliveryAddress,
		Occasion:        e.Occasion,
		LineItems:       e.LineItems,
		DeliveryDate:    e.DeliveryDate,
		Total:           e.Total.InexactFloat64(),
		Status:          e.Status,
		Priority:        e.Priority,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func NewOrdersFromEntities(es []*entities.Order) []*Order {
	orders := make([]*Order, len(es))
	for i, e := range es {
		orders[i] = NewOrderFromEntity(e)
	}
	return orders
}

// OrderMutation is returned by the mutating order endpoints.
type OrderMutation struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

// Message is returned when there is no entity to attach.
type Message struct {
	Message string `json:"message"`
}
