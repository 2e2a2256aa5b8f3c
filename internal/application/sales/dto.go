package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seorganiza/backend/internal/domain/sales"
)

// RecordSaleInput carries the data needed to record a sale
type RecordSaleInput struct {
	ProductID uuid.UUID
	Quantity  int
	SoldAt    time.Time
}

// SaleResponse is the outward representation of a sale
type SaleResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	SoldAt    time.Time       `json:"sold_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductSalesResponse names a product together with its sales volume
type ProductSalesResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// StatsResponse summarizes sales performance for a reference month
// together with the current stock position.
type StatsResponse struct {
	Year            int                   `json:"year"`
	Month           int                   `json:"month"`
	MonthTotal      decimal.Decimal       `json:"month_total"`
	YearTotal       decimal.Decimal       `json:"year_total"`
	BestSeller      *ProductSalesResponse `json:"best_seller"`
	WorstSeller     *ProductSalesResponse `json:"worst_seller"`
	TotalStockUnits int64                 `json:"total_stock_units"`
	InventoryValue  decimal.Decimal       `json:"inventory_value"`
}

// PeriodTotalResponse is the revenue of one reporting period. Month
// and year are echoed back when they were part of the query.
type PeriodTotalResponse struct {
	Month int             `json:"month,omitempty"`
	Year  int             `json:"year,omitempty"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyTotalResponse is one month's revenue within a year
type MonthlyTotalResponse struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

func toSaleResponse(s *sales.Sale) *SaleResponse {
	return &SaleResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Total:     s.Total,
		SoldAt:    s.SoldAt,
		CreatedAt: s.CreatedAt,
	}
}

func toProductSalesResponse(ps *sales.ProductSales) *ProductSalesResponse {
	if ps == nil {
		return nil
	}
	return &ProductSalesResponse{
		ProductID:     ps.ProductID,
		ProductName:   ps.ProductName,
		TotalQuantity: ps.TotalQuantity,
		TotalRevenue:  ps.TotalRevenue,
	}
}
