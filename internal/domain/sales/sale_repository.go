package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seorganiza/backend/internal/domain/shared"
)

// ProductSales aggregates sold quantity and revenue for one product
type ProductSales struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// MonthlyTotal is the revenue of one calendar month
type MonthlyTotal struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// SaleRepository defines the persistence contract for sales
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]Sale, error)
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// TotalForMonth returns the summed totals of all sales in the given
	// month, across all years when year is zero. Months without sales
	// yield zero, never an error.
	TotalForMonth(ctx context.Context, month time.Month, year int) (decimal.Decimal, error)
	// TotalForYear returns the summed totals of all sales in the given year.
	TotalForYear(ctx context.Context, year int) (decimal.Decimal, error)
	// BestSeller returns the product with the highest sold quantity in
	// the given month. A zero month ranks over all months, a zero year
	// over all years. Ties break on the lower product ID. Returns
	// ErrNotFound when no sales match.
	BestSeller(ctx context.Context, month time.Month, year int) (*ProductSales, error)
	// WorstSeller returns the product with the lowest sold quantity
	// among products with at least one matching sale. Same filters and
	// tie-break as BestSeller.
	WorstSeller(ctx context.Context, month time.Month, year int) (*ProductSales, error)
	// MonthlyBreakdown returns per-month totals for the given year,
	// ordered by month ascending and omitting months without sales.
	MonthlyBreakdown(ctx context.Context, year int) ([]MonthlyTotal, error)
}
