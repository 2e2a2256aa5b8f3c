package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seorganiza/backend/internal/domain/catalog"
	"github.com/seorganiza/backend/internal/domain/sales"
	"github.com/seorganiza/backend/internal/domain/shared"
)

// SaleService handles sale recording, deletion and reporting
type SaleService struct {
	saleRepo    sales.SaleRepository
	productRepo catalog.ProductRepository
	scope       TransactionScope
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo sales.SaleRepository, productRepo catalog.ProductRepository, scope TransactionScope) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		scope:       scope,
	}
}

// RecordSale records a sale and decrements product stock in one
// transaction. The product row is locked so a concurrent sale cannot
// oversell the remaining stock.
func (s *SaleService) RecordSale(ctx context.Context, input RecordSaleInput) (*SaleResponse, error) {
	var response *SaleResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByIDForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}

		if err := product.DecreaseStock(input.Quantity); err != nil {
			return err
		}

		sale, err := sales.NewSale(product.ID, input.Quantity, product.Price, input.SoldAt)
		if err != nil {
			return err
		}

		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}

		response = toSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// DeleteSale removes a sale and returns its quantity to product stock.
// When the product no longer exists the sale is removed on its own.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}

		product, err := repos.Products().FindByIDForUpdate(ctx, sale.ProductID)
		switch {
		case err == nil:
			if err := product.IncreaseStock(sale.Quantity); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}
		case errors.Is(err, shared.ErrNotFound):
			// orphaned sale, nothing to restore
		default:
			return err
		}

		return repos.Sales().Delete(ctx, id)
	})
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// ListSales retrieves sales with pagination
func (s *SaleService) ListSales(ctx context.Context, filter shared.Filter) (*shared.Paginated[SaleResponse], error) {
	items, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SaleResponse, len(items))
	for i := range items {
		responses[i] = *toSaleResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// MonthlyTotal sums sale totals for one calendar month. A zero year
// sums the month across all years. Months without sales yield zero.
func (s *SaleService) MonthlyTotal(ctx context.Context, month time.Month, year int) (decimal.Decimal, error) {
	if month < time.January || month > time.December {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Month must be between 1 and 12")
	}
	return s.saleRepo.TotalForMonth(ctx, month, year)
}

// YearlyTotal sums sale totals for one calendar year
func (s *SaleService) YearlyTotal(ctx context.Context, year int) (decimal.Decimal, error) {
	return s.saleRepo.TotalForYear(ctx, year)
}

// BestSeller returns the top product by sold quantity within the given
// month and year; zero widens either filter. Nil when nothing matches.
func (s *SaleService) BestSeller(ctx context.Context, month time.Month, year int) (*ProductSalesResponse, error) {
	best, err := s.saleRepo.BestSeller(ctx, month, year)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return toProductSalesResponse(best), nil
}

// WorstSeller returns the bottom product by sold quantity, with the
// same filters as BestSeller. Nil when nothing matches.
func (s *SaleService) WorstSeller(ctx context.Context, month time.Month, year int) (*ProductSalesResponse, error) {
	worst, err := s.saleRepo.WorstSeller(ctx, month, year)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return toProductSalesResponse(worst), nil
}

// Stats summarizes sales performance for the given month: month and
// year revenue, best and worst seller of that month, and the current
// stock position. Months without sales report zero totals and nil
// sellers.
func (s *SaleService) Stats(ctx context.Context, year int, month time.Month) (*StatsResponse, error) {
	monthTotal, err := s.saleRepo.TotalForMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}
	yearTotal, err := s.saleRepo.TotalForYear(ctx, year)
	if err != nil {
		return nil, err
	}

	best, err := s.BestSeller(ctx, month, year)
	if err != nil {
		return nil, err
	}
	worst, err := s.WorstSeller(ctx, month, year)
	if err != nil {
		return nil, err
	}

	stockUnits, err := s.productRepo.TotalStockUnits(ctx)
	if err != nil {
		return nil, err
	}
	inventoryValue, err := s.productRepo.TotalInventoryValue(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		Year:            year,
		Month:           int(month),
		MonthTotal:      monthTotal,
		YearTotal:       yearTotal,
		BestSeller:      best,
		WorstSeller:     worst,
		TotalStockUnits: stockUnits,
		InventoryValue:  inventoryValue,
	}, nil
}

// MonthlyBreakdown returns per-month revenue for the given year,
// omitting months without sales.
func (s *SaleService) MonthlyBreakdown(ctx context.Context, year int) ([]MonthlyTotalResponse, error) {
	totals, err := s.saleRepo.MonthlyBreakdown(ctx, year)
	if err != nil {
		return nil, err
	}

	responses := make([]MonthlyTotalResponse, len(totals))
	for i, t := range totals {
		responses[i] = MonthlyTotalResponse{Month: t.Month, Total: t.Total}
	}
	return responses, nil
}
