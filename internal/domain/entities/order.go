package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alesweet/order-service/internal/models/errs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment stage of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "inProgress"
	StatusReady      OrderStatus = "ready"
	StatusDelivered  OrderStatus = "delivered"
)

// NewOrderStatus validates the given string against the status enum.
// Any stage may be set directly; progression is not forced to be
// forward-only so the kitchen can correct mistakes.
func NewOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case StatusPending, StatusInProgress, StatusReady, StatusDelivered:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidOrderStatus, s)
	}
}

// CustomerKind tags who the order is for.
type CustomerKind string

const (
	KindRetail      CustomerKind = "retail"
	KindInstitution CustomerKind = "institution"
	KindStore       CustomerKind = "store"
)

// NewCustomerKind validates the given string against the kind enum.
// Empty input falls back to retail.
func NewCustomerKind(s string) (CustomerKind, error) {
	switch kind := CustomerKind(s); kind {
	case KindRetail, KindInstitution, KindStore:
		return kind, nil
	case "":
		return KindRetail, nil
	default:
		return "", fmt.Errorf("%w: invalid customer kind %q", errs.ErrInvalidRequest, s)
	}
}

// OrderNumber is the human-facing, zero-padded sequential identifier
// distinct from the storage-assigned record id.
type OrderNumber string

// FirstOrderNumber is assigned when no orders exist yet.
const FirstOrderNumber OrderNumber = "000001"

const orderNumberDigits = 6

// Next returns the number following n. The zero padding is a minimum
// width: past 999999 the number simply grows a digit.
func (n OrderNumber) Next() (OrderNumber, error) {
	v, err := strconv.Atoi(string(n))
	if err != nil {
		return "", fmt.Errorf("malformed order number %q: %w", n, err)
	}

	return OrderNumber(fmt.Sprintf("%0*d", orderNumberDigits, v+1)), nil
}

// LineItem pairs a product snapshot with a quantity. The snapshot is a
// denormalized copy of the product document taken at order time, so later
// catalog edits never change historical orders. It is kept opaque and
// stored verbatim.
type LineItem struct {
	Product  json.RawMessage `json:"product"`
	Quantity float64         `json:"quantity"`
}

// priced is the only part of the snapshot the order math cares about.
type priced struct {
	Price decimal.Decimal `json:"price"`
}

// Cost returns price multiplied by quantity. A snapshot without a usable
// numeric price counts as zero, as does a missing quantity.
func (li LineItem) Cost() decimal.Decimal {
	var p priced
	if err := json.Unmarshal(li.Product, &p); err != nil {
		return decimal.Zero
	}

	return p.Price.Mul(decimal.NewFromFloat(li.Quantity))
}

// LineItems is stored as a single JSONB document.
type LineItems []LineItem

// Total sums the cost of every line item.
func (items LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Cost())
	}

	return total
}

// Value implements driver.Valuer.
func (items LineItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

// Scan implements sql.Scanner.
func (items *LineItems) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return errors.New("line items: unsupported source type")
	}
}

// Order is the central entity of the system.
type Order struct {
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
	DeliveryDate    time.Time       `db:"delivery_date" json:"delivery_date"`
	InstitutionName *string         `db:"institution_name" json:"institution_name"`
	StoreName       *string         `db:"store_name" json:"store_name"`
	Number          OrderNumber     `db:"number" json:"number"`
	CustomerKind    CustomerKind    `db:"customer_kind" json:"customer_kind"`
	CustomerName    string          `db:"customer_name" json:"customer_name"`
	CustomerPhone   string          `db:"customer_phone" json:"customer_phone"`
	CustomerTaxID   string          `db:"customer_tax_id" json:"customer_tax_id"`
	DeliveryAddress string          `db:"delivery_address" json:"delivery_address"`
	Occasion        string          `db:"occasion" json:"occasion"`
	Status          OrderStatus     `db:"status" json:"status"`
	LineItems       LineItems       `db:"line_items" json:"line_items"`
	Total           decimal.Decimal `db:"total" json:"total"`
	Priority        int             `db:"priority" json:"priority"`
	ID              uuid.UUID       `db:"id" json:"id"`
}

// DefaultPriority applies when the caller does not ask for one.
const DefaultPriority = 2

// ComputeTotal recalculates the total from the line items. The stored
// value is never trusted from client input.
func (o *Order) ComputeTotal() {
	o.Total = o.LineItems.Total()
}
