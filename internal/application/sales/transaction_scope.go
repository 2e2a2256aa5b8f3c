package sales

import (
	"context"

	"github.com/seorganiza/backend/internal/domain/catalog"
	"github.com/seorganiza/backend/internal/domain/sales"
)

// TransactionalRepositories exposes the repositories bound to one
// database transaction.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Sales() sales.SaleRepository
}

// TransactionScope runs a unit of work atomically. The stock check,
// stock mutation and sale row all commit together or not at all.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs the unit of work against the given
// repositories without transactional guarantees. Intended for tests.
type NoOpTransactionScope struct {
	ProductRepo catalog.ProductRepository
	SaleRepo    sales.SaleRepository
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(&noOpRepositories{scope: s})
}

type noOpRepositories struct {
	scope *NoOpTransactionScope
}

func (r *noOpRepositories) Products() catalog.ProductRepository {
	return r.scope.ProductRepo
}

func (r *noOpRepositories) Sales() sales.SaleRepository {
	return r.scope.SaleRepo
}
