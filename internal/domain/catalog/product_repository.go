package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seorganiza/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDForUpdate loads the product under a row lock so stock
	// checks and decrements happen against current state.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByNameContains(ctx context.Context, fragment string) ([]Product, error)
	FindByQuantity(ctx context.Context, quantity int) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	TotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
	// TotalStockUnits sums the quantity column over all products.
	TotalStockUnits(ctx context.Context) (int64, error)
}
