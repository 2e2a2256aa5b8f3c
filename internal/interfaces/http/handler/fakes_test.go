package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seorganiza/backend/internal/domain/catalog"
	"github.com/seorganiza/backend/internal/domain/sales"
	"github.com/seorganiza/backend/internal/domain/shared"
)

// memProductRepo is an in-memory catalog.ProductRepository for tests
type memProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *memProductRepo) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) FindByNameContains(_ context.Context, fragment string) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(fragment)) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) FindByQuantity(_ context.Context, quantity int) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		if p.Quantity == quantity {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	items, _ := r.FindAll(ctx, filter)
	return int64(len(items)), nil
}

func (r *memProductRepo) TotalInventoryValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.products {
		total = total.Add(p.InventoryValue())
	}
	return total, nil
}

func (r *memProductRepo) TotalStockUnits(_ context.Context) (int64, error) {
	var total int64
	for _, p := range r.products {
		total += int64(p.Quantity)
	}
	return total, nil
}

// memSaleRepo is an in-memory sales.SaleRepository for tests
type memSaleRepo struct {
	sales    map[uuid.UUID]*sales.Sale
	products *memProductRepo
}

func newMemSaleRepo(products *memProductRepo) *memSaleRepo {
	return &memSaleRepo{sales: make(map[uuid.UUID]*sales.Sale), products: products}
}

func (r *memSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*sales.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *memSaleRepo) FindAll(_ context.Context, _ shared.Filter) ([]sales.Sale, error) {
	var out []sales.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldAt.After(out[j].SoldAt) })
	return out, nil
}

func (r *memSaleRepo) FindByProductID(_ context.Context, productID uuid.UUID) ([]sales.Sale, error) {
	var out []sales.Sale
	for _, s := range r.sales {
		if s.ProductID == productID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) Save(_ context.Context, sale *sales.Sale) error {
	clone := *sale
	r.sales[sale.ID] = &clone
	return nil
}

func (r *memSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.sales[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

func (r *memSaleRepo) DeleteByProductID(_ context.Context, productID uuid.UUID) error {
	for id, s := range r.sales {
		if s.ProductID == productID {
			delete(r.sales, id)
		}
	}
	return nil
}

func (r *memSaleRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.sales)), nil
}

func (r *memSaleRepo) TotalForMonth(_ context.Context, month time.Month, year int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.sales {
		if s.SoldAt.Month() != month {
			continue
		}
		if year > 0 && s.SoldAt.Year() != year {
			continue
		}
		total = total.Add(s.Total)
	}
	return total, nil
}

func (r *memSaleRepo) TotalForYear(_ context.Context, year int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.sales {
		if s.SoldAt.Year() == year {
			total = total.Add(s.Total)
		}
	}
	return total, nil
}

func (r *memSaleRepo) BestSeller(ctx context.Context, month time.Month, year int) (*sales.ProductSales, error) {
	return r.rank(ctx, true, month, year)
}

func (r *memSaleRepo) WorstSeller(ctx context.Context, month time.Month, year int) (*sales.ProductSales, error) {
	return r.rank(ctx, false, month, year)
}

func (r *memSaleRepo) rank(_ context.Context, best bool, month time.Month, year int) (*sales.ProductSales, error) {
	agg := make(map[uuid.UUID]*sales.ProductSales)
	for _, s := range r.sales {
		if month > 0 && s.SoldAt.Month() != month {
			continue
		}
		if year > 0 && s.SoldAt.Year() != year {
			continue
		}
		entry, ok := agg[s.ProductID]
		if !ok {
			name := ""
			if p, found := r.products.products[s.ProductID]; found {
				name = p.Name
			}
			entry = &sales.ProductSales{ProductID: s.ProductID, ProductName: name, TotalRevenue: decimal.Zero}
			agg[s.ProductID] = entry
		}
		entry.TotalQuantity += int64(s.Quantity)
		entry.TotalRevenue = entry.TotalRevenue.Add(s.Total)
	}
	if len(agg) == 0 {
		return nil, shared.ErrNotFound
	}

	var ranked []*sales.ProductSales
	for _, entry := range agg {
		ranked = append(ranked, entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalQuantity != ranked[j].TotalQuantity {
			if best {
				return ranked[i].TotalQuantity > ranked[j].TotalQuantity
			}
			return ranked[i].TotalQuantity < ranked[j].TotalQuantity
		}
		return ranked[i].ProductID.String() < ranked[j].ProductID.String()
	})
	return ranked[0], nil
}

func (r *memSaleRepo) MonthlyBreakdown(_ context.Context, year int) ([]sales.MonthlyTotal, error) {
	byMonth := make(map[int]decimal.Decimal)
	for _, s := range r.sales {
		if s.SoldAt.Year() == year {
			month := int(s.SoldAt.Month())
			byMonth[month] = byMonth[month].Add(s.Total)
		}
	}

	var out []sales.MonthlyTotal
	for month, total := range byMonth {
		out = append(out, sales.MonthlyTotal{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
