package user

import (
	"context"
	"time"

	"github.com/alesweet/order-service/internal/models/errs"
)

// Role restricts what a staff member is allowed to do.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleProduction Role = "production"
	RoleSales      Role = "sales"
)

// ParseRole validates the given string against the known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleProduction, RoleSales:
		return r, nil
	default:
		return "", errs.ErrInvalidRole
	}
}

// User is a staff member of the bakery.
// Fields aligned for the GC optimal scanning.
type User struct {
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	Name              string    `db:"name" json:"name"`
	Login             string    `db:"login" json:"login"`
	Password          string    `db:"password" json:"-"`
	Role              Role      `db:"role" json:"role"`
	ID                int       `db:"id" json:"id"`
	BiometricsEnabled bool      `db:"biometrics_enabled" json:"biometrics_enabled"`
}

// key is an unexported type for keys defined in this package.
// This prevents collisions with keys defined in other packages.
type key int

// userKey is the key for user.User values in Contexts. It is
// unexported; clients use user.NewContext and user.FromContext
// instead of using this key directly.
var userKey key

// NewContext returns a new Context that carries value u.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// FromContext returns the User value stored in ctx, if any.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey).(*User)
	return u, ok
}
