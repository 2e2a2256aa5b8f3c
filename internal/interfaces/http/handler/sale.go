package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appsales "github.com/seorganiza/backend/internal/application/sales"
	"github.com/seorganiza/backend/internal/interfaces/http/dto"
)

// SaleHandler exposes sale recording and reporting endpoints
type SaleHandler struct {
	BaseHandler
	service *appsales.SaleService
}

// NewSaleHandler creates a sale handler
func NewSaleHandler(service *appsales.SaleService, logger *zap.Logger) *SaleHandler {
	return &SaleHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes mounts the sale routes on the group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Record)
		sales.GET("", h.List)
		sales.GET("/stats", h.Stats)
		sales.GET("/stats/monthly", h.MonthlyTotal)
		sales.GET("/stats/yearly", h.YearlyTotal)
		sales.GET("/stats/breakdown", h.MonthlyBreakdown)
		sales.GET("/stats/best-seller", h.BestSeller)
		sales.GET("/stats/worst-seller", h.WorstSeller)
		sales.GET("/:id", h.Get)
		sales.DELETE("/:id", h.Delete)
	}
}

// Record handles POST /sales
func (h *SaleHandler) Record(c *gin.Context) {
	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}

	input := appsales.RecordSaleInput{
		ProductID: productID,
		Quantity:  req.Quantity.Int(),
	}
	if req.SoldAt != "" {
		soldAt, err := time.Parse(time.RFC3339, req.SoldAt)
		if err != nil {
			h.BadRequest(c, "sold_at must be RFC 3339")
			return
		}
		input.SoldAt = soldAt
	}

	response, err := h.service.RecordSale(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Get handles GET /sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// List handles GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	page, err := h.service.ListSales(c.Request.Context(), h.ParseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Delete handles DELETE /sales/:id
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSale(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stats handles GET /sales/stats?year=2024&month=3, defaulting to the
// current month.
func (h *SaleHandler) Stats(c *gin.Context) {
	now := time.Now()
	year, month, ok := h.parseYearMonth(c, now.Year(), now.Month())
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// MonthlyTotal handles GET /sales/stats/monthly?month=3&year=2024.
// Month defaults to the current month; omitting year sums the month
// across all years.
func (h *SaleHandler) MonthlyTotal(c *gin.Context) {
	month, ok := h.parseMonth(c, time.Now().Month())
	if !ok {
		return
	}
	year, ok := h.parseYear(c, 0)
	if !ok {
		return
	}

	total, err := h.service.MonthlyTotal(c.Request.Context(), month, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appsales.PeriodTotalResponse{Month: int(month), Year: year, Total: total})
}

// YearlyTotal handles GET /sales/stats/yearly?year=2024, defaulting to
// the current year.
func (h *SaleHandler) YearlyTotal(c *gin.Context) {
	year, ok := h.parseYear(c, time.Now().Year())
	if !ok {
		return
	}

	total, err := h.service.YearlyTotal(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appsales.PeriodTotalResponse{Year: year, Total: total})
}

// BestSeller handles GET /sales/stats/best-seller?month=3&year=2024.
// Month defaults to the current month; omitting year ranks the month
// across all years. The body data is null when nothing was sold.
func (h *SaleHandler) BestSeller(c *gin.Context) {
	month, ok := h.parseMonth(c, time.Now().Month())
	if !ok {
		return
	}
	year, ok := h.parseYear(c, 0)
	if !ok {
		return
	}

	best, err := h.service.BestSeller(c.Request.Context(), month, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, best)
}

// WorstSeller handles GET /sales/stats/worst-seller with the same
// parameters as BestSeller.
func (h *SaleHandler) WorstSeller(c *gin.Context) {
	month, ok := h.parseMonth(c, time.Now().Month())
	if !ok {
		return
	}
	year, ok := h.parseYear(c, 0)
	if !ok {
		return
	}

	worst, err := h.service.WorstSeller(c.Request.Context(), month, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, worst)
}

// MonthlyBreakdown handles GET /sales/stats/breakdown?year=2024,
// defaulting to the current year.
func (h *SaleHandler) MonthlyBreakdown(c *gin.Context) {
	year, ok := h.parseYear(c, time.Now().Year())
	if !ok {
		return
	}

	breakdown, err := h.service.MonthlyBreakdown(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, breakdown)
}

func (h *SaleHandler) parseYearMonth(c *gin.Context, defaultYear int, defaultMonth time.Month) (int, time.Month, bool) {
	month, ok := h.parseMonth(c, defaultMonth)
	if !ok {
		return 0, 0, false
	}
	year, ok := h.parseYear(c, defaultYear)
	if !ok {
		return 0, 0, false
	}
	return year, month, true
}

func (h *SaleHandler) parseYear(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		h.BadRequest(c, "Invalid year")
		return 0, false
	}
	return parsed, true
}

func (h *SaleHandler) parseMonth(c *gin.Context, fallback time.Month) (time.Month, bool) {
	raw := c.Query("month")
	if raw == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 || parsed > 12 {
		h.BadRequest(c, "Invalid month")
		return 0, false
	}
	return time.Month(parsed), true
}
