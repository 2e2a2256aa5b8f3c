package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seorganiza/backend/internal/domain/shared"
)

// Sale is the aggregate root for a recorded sale. The unit price and
// total are captured at recording time, so later price edits on the
// product never rewrite sales history.
type Sale struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SoldAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the database table name
func (Sale) TableName() string {
	return "sales"
}

// NewSale records a sale of the given quantity at the given unit price.
// Quantity zero is accepted; the total is then zero as well.
func NewSale(productID uuid.UUID, quantity int, unitPrice decimal.Decimal, soldAt time.Time) (*Sale, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale requires a product")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale unit price cannot be negative")
	}
	if soldAt.IsZero() {
		soldAt = time.Now()
	}

	unitPrice = unitPrice.Round(2)
	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		Total:             unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		SoldAt:            soldAt,
	}, nil
}
