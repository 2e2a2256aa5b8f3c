package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/seorganiza/backend/internal/domain/sales"
	"github.com/seorganiza/backend/internal/domain/shared"
)

// GormSaleRepository implements sales.SaleRepository with GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new sale repository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID retrieves a sale by ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("finding sale: %w", err)
	}
	return &sale, nil
}

// FindAll retrieves sales with pagination, newest first by default
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	var items []sales.Sale
	err := r.db.WithContext(ctx).
		Order(orderClause(filter, "sold_at")).
		Offset(offset(filter)).
		Limit(limit(filter)).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	return items, nil
}

// FindByProductID retrieves all sales of one product
func (r *GormSaleRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]sales.Sale, error) {
	var items []sales.Sale
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sold_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("listing sales by product: %w", err)
	}
	return items, nil
}

// Save persists a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	if err := r.db.WithContext(ctx).Save(sale).Error; err != nil {
		return fmt.Errorf("saving sale: %w", err)
	}
	return nil
}

// Delete removes a sale by ID
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sales.Sale{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting sale: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProductID removes all sales of one product. Deleting zero
// rows is fine; products without sales history exist.
func (r *GormSaleRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&sales.Sale{}, "product_id = ?", productID).Error
	if err != nil {
		return fmt.Errorf("deleting sales by product: %w", err)
	}
	return nil
}

// Count returns the number of sales
func (r *GormSaleRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sales.Sale{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting sales: %w", err)
	}
	return count, nil
}

// TotalForMonth sums sale totals within one calendar month, across all
// years when year is zero.
func (r *GormSaleRepository) TotalForMonth(ctx context.Context, month time.Month, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Where("EXTRACT(MONTH FROM sold_at) = ?", int(month))
	if year > 0 {
		query = query.Where("EXTRACT(YEAR FROM sold_at) = ?", year)
	}
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, fmt.Errorf("summing month total: %w", err)
	}
	return total, nil
}

// TotalForYear sums sale totals within one calendar year
func (r *GormSaleRepository) TotalForYear(ctx context.Context, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Where("EXTRACT(YEAR FROM sold_at) = ?", year).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing year total: %w", err)
	}
	return total, nil
}

// BestSeller returns the product with the highest sold quantity in the
// given month (zero month or year widens the window), breaking ties on
// the lower product ID.
func (r *GormSaleRepository) BestSeller(ctx context.Context, month time.Month, year int) (*sales.ProductSales, error) {
	return r.seller(ctx, "total_quantity DESC, sales.product_id ASC", month, year)
}

// WorstSeller returns the product with the lowest sold quantity among
// products with at least one matching sale, with the same filters and
// tie-break as BestSeller.
func (r *GormSaleRepository) WorstSeller(ctx context.Context, month time.Month, year int) (*sales.ProductSales, error) {
	return r.seller(ctx, "total_quantity ASC, sales.product_id ASC", month, year)
}

func (r *GormSaleRepository) seller(ctx context.Context, order string, month time.Month, year int) (*sales.ProductSales, error) {
	query := r.db.WithContext(ctx).
		Table("sales").
		Select("sales.product_id AS product_id, products.name AS product_name, SUM(sales.quantity) AS total_quantity, COALESCE(SUM(sales.total), 0) AS total_revenue").
		Joins("JOIN products ON products.id = sales.product_id")
	if month > 0 {
		query = query.Where("EXTRACT(MONTH FROM sales.sold_at) = ?", int(month))
	}
	if year > 0 {
		query = query.Where("EXTRACT(YEAR FROM sales.sold_at) = ?", year)
	}

	var rows []sales.ProductSales
	err := query.
		Group("sales.product_id, products.name").
		Order(order).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("ranking sellers: %w", err)
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}
	return &rows[0], nil
}

// MonthlyBreakdown returns per-month totals for one year, ordered by
// month and omitting months without sales.
func (r *GormSaleRepository) MonthlyBreakdown(ctx context.Context, year int) ([]sales.MonthlyTotal, error) {
	var rows []sales.MonthlyTotal
	err := r.db.WithContext(ctx).
		Table("sales").
		Select("CAST(EXTRACT(MONTH FROM sold_at) AS INTEGER) AS month, COALESCE(SUM(total), 0) AS total").
		Where("EXTRACT(YEAR FROM sold_at) = ?", year).
		Group("EXTRACT(MONTH FROM sold_at)").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("building monthly breakdown: %w", err)
	}
	return rows, nil
}
