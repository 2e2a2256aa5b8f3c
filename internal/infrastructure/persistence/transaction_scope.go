package persistence

import (
	"context"

	"gorm.io/gorm"

	appsales "github.com/seorganiza/backend/internal/application/sales"
	"github.com/seorganiza/backend/internal/domain/catalog"
	"github.com/seorganiza/backend/internal/domain/sales"
)

// GormTransactionScope runs units of work inside one database
// transaction. Row locks taken through the scoped repositories are
// held until the transaction ends.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new transaction scope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a transaction. Any error rolls back every
// change made through the scoped repositories.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}
