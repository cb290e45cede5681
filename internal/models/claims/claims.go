package claims

import (
	"github.com/alesweet/order-service/internal/models/user"
	"github.com/golang-jwt/jwt/v4"
)

// Auth is the JWT payload issued on register and login.
type Auth struct {
	jwt.RegisteredClaims
	UserID int       `json:"user_id"`
	Login  string    `json:"login"`
	Role   user.Role `json:"role"`
}
