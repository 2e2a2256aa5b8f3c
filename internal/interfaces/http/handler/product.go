package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/seorganiza/backend/internal/application/catalog"
	"github.com/seorganiza/backend/internal/interfaces/http/dto"
)

// maxPhotoSize caps product photo uploads at 5 MiB
const maxPhotoSize = 5 << 20

// ProductHandler exposes product and inventory endpoints
type ProductHandler struct {
	BaseHandler
	service *appcatalog.ProductService
}

// NewProductHandler creates a product handler
func NewProductHandler(service *appcatalog.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes mounts the product routes on the group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/search", h.Search)
		products.GET("/inventory-report", h.InventoryReport)
		products.GET("/stock-buckets", h.StockBuckets)
		products.GET("/:id", h.Get)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.POST("/:id/photo", h.AttachPhoto)
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, err)
		return
	}

	response, err := h.service.CreateProduct(c.Request.Context(), appcatalog.CreateProductInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, err)
		return
	}

	response, err := h.service.UpdateProduct(c.Request.Context(), id, appcatalog.UpdateProductInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	page, err := h.service.ListProducts(c.Request.Context(), h.ParseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Search handles GET /products/search?q=fragment
func (h *ProductHandler) Search(c *gin.Context) {
	results, err := h.service.SearchByName(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// InventoryReport handles GET /products/inventory-report
func (h *ProductHandler) InventoryReport(c *gin.Context) {
	report, err := h.service.InventoryReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// StockBuckets handles GET /products/stock-buckets
func (h *ProductHandler) StockBuckets(c *gin.Context) {
	buckets, err := h.service.StockBuckets(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buckets)
}

// AttachPhoto handles POST /products/:id/photo with a multipart form
// carrying the file under "photo".
func (h *ProductHandler) AttachPhoto(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		h.BadRequest(c, "Missing photo file")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		h.BadRequest(c, "Photo exceeds the 5 MiB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	response, err := h.service.AttachPhoto(
		c.Request.Context(),
		id,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}
