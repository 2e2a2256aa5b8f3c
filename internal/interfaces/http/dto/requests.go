package dto

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"
)

// LenientInt accepts JSON numbers and numeric strings. Anything that
// fails to parse counts as zero instead of rejecting the request.
type LenientInt int

// UnmarshalJSON implements json.Unmarshaler
func (l *LenientInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*l = 0
		return nil
	}
	*l = LenientInt(n)
	return nil
}

// Int returns the parsed value
func (l LenientInt) Int() int {
	return int(l)
}

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Quantity    int             `json:"quantity" binding:"gte=0"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description"`
}

// UpdateProductRequest is the payload for updating a product.
// Omitted fields keep their current value.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

// RecordSaleRequest is the payload for recording a sale
type RecordSaleRequest struct {
	ProductID string     `json:"product_id" binding:"required,uuid"`
	Quantity  LenientInt `json:"quantity"`
	SoldAt    string     `json:"sold_at"`
}

// LoginRequest is the payload for password login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the payload for token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token to revoke along
// with the access token from the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// CreateUserRequest is the payload for registering a user
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Superuser bool   `json:"superuser"`
}
