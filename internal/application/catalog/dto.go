package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seorganiza/backend/internal/domain/catalog"
)

// CreateProductInput carries the data needed to create a product
type CreateProductInput struct {
	Name        string
	Quantity    int
	Price       decimal.Decimal
	Description string
}

// UpdateProductInput carries the fields to change on a product.
// Nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Quantity    *int
	Price       *decimal.Decimal
	Description *string
}

// ProductResponse is the outward representation of a product
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	PhotoURL       string          `json:"photo_url,omitempty"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// InventoryReport summarizes the stock on hand
type InventoryReport struct {
	ProductCount int64           `json:"product_count"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// StockBucket groups the products sitting at one exact stock level
type StockBucket struct {
	Quantity int               `json:"quantity"`
	Products []ProductResponse `json:"products"`
}

func (s *ProductService) toResponse(p *catalog.Product) *ProductResponse {
	photoURL := ""
	if p.PhotoKey != "" && s.storage != nil {
		photoURL = s.storage.URL(p.PhotoKey)
	}
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Quantity:       p.Quantity,
		Price:          p.Price,
		Description:    p.Description,
		PhotoURL:       photoURL,
		InventoryValue: p.InventoryValue(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
