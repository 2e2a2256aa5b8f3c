package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seorganiza/backend/internal/domain/catalog"
	"github.com/seorganiza/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository with GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID retrieves a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("finding product: %w", err)
	}
	return &product, nil
}

// FindByIDForUpdate retrieves a product under a row lock. Must run
// inside a transaction; the lock is released on commit or rollback.
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("locking product: %w", err)
	}
	return &product, nil
}

// FindAll retrieves products with pagination and optional name search
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Order(orderClause(filter, "name")).
		Offset(offset(filter)).
		Limit(limit(filter)).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// FindByNameContains retrieves products matching the name fragment
// case-insensitively, ordered by name.
func (r *GormProductRepository) FindByNameContains(ctx context.Context, fragment string) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+fragment+"%").
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}
	return products, nil
}

// FindByQuantity retrieves products sitting at exactly the given
// stock level, ordered by name.
func (r *GormProductRepository) FindByQuantity(ctx context.Context, quantity int) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.db.WithContext(ctx).
		Where("quantity = ?", quantity).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("listing products by quantity: %w", err)
	}
	return products, nil
}

// Save persists a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}

// Delete removes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

// TotalInventoryValue sums price times quantity over all products
func (r *GormProductRepository) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing inventory value: %w", err)
	}
	return total, nil
}

// TotalStockUnits sums stock quantities over all products
func (r *GormProductRepository) TotalStockUnits(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("summing stock units: %w", err)
	}
	return total, nil
}

func (r *GormProductRepository) applyFilter(db *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		db = db.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	return db
}
