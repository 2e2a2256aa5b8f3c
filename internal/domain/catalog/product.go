package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seorganiza/backend/internal/domain/shared"
)

// Product is the aggregate root for a catalog item and its stock level.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"not null;size:100"`
	Quantity    int             `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"type:text"`
	PhotoKey    string          `gorm:"size:512"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with validation
func NewProduct(name string, quantity int, price decimal.Decimal, description string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 100 characters")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product quantity cannot be negative")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Quantity:          quantity,
		Price:             price.Round(2),
		Description:       description,
	}, nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 100 characters")
	}
	p.Name = name
	p.IncrementVersion()
	return nil
}

// SetPrice updates the unit price. Totals of sales already recorded are
// unaffected because each sale captures its own total at recording time.
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	p.Price = price.Round(2)
	p.IncrementVersion()
	return nil
}

// SetQuantity replaces the stock level outright
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Product quantity cannot be negative")
	}
	p.Quantity = quantity
	p.IncrementVersion()
	return nil
}

// SetDescription updates the free-form description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.IncrementVersion()
}

// ReplacePhoto stores the object key of the product photo
func (p *Product) ReplacePhoto(key string) {
	p.PhotoKey = key
	p.IncrementVersion()
}

// DecreaseStock removes units from stock when a sale is recorded.
// Fails without mutating the product when stock is insufficient.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	if quantity > p.Quantity {
		return shared.ErrInsufficientStock
	}
	p.Quantity -= quantity
	p.IncrementVersion()
	return nil
}

// IncreaseStock returns units to stock, e.g. when a sale is deleted
func (p *Product) IncreaseStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	p.Quantity += quantity
	p.IncrementVersion()
	return nil
}

// InventoryValue returns price multiplied by quantity on hand
func (p *Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
