package entities

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an address-book record kept for repeat buyers. Orders copy
// the customer fields they need instead of referencing this record.
type Customer struct {
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
	Email     *string      `db:"email" json:"email"`
	TaxID     *string      `db:"tax_id" json:"tax_id"`
	Address   *string      `db:"address" json:"address"`
	Name      string       `db:"name" json:"name"`
	Phone     string       `db:"phone" json:"phone"`
	Kind      CustomerKind `db:"kind" json:"kind"`
	ID        uuid.UUID    `db:"id" json:"id"`
}
