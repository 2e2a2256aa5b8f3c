package catalog

import (
	"context"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"

	appsales "github.com/seorganiza/backend/internal/application/sales"
	"github.com/seorganiza/backend/internal/domain/catalog"
	"github.com/seorganiza/backend/internal/domain/shared"
)

// stockBucketLevels are the exact stock levels surfaced on the
// low-stock report.
var stockBucketLevels = []int{0, 1, 2, 3}

// ProductService handles product lifecycle and inventory reporting
type ProductService struct {
	productRepo catalog.ProductRepository
	scope       appsales.TransactionScope
	storage     ObjectStorageService
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, scope appsales.TransactionScope, storage ObjectStorageService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		scope:       scope,
		storage:     storage,
	}
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductResponse, error) {
	product, err := catalog.NewProduct(input.Name, input.Quantity, input.Price, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.toResponse(product), nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(product), nil
}

// UpdateProduct applies the non-nil fields of the input to the
// product. Totals of sales already recorded are never recomputed.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := product.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Quantity != nil {
		if err := product.SetQuantity(*input.Quantity); err != nil {
			return nil, err
		}
	}
	if input.Price != nil {
		if err := product.SetPrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		product.SetDescription(*input.Description)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.toResponse(product), nil
}

// DeleteProduct removes a product together with its sales history in
// one transaction. The photo is removed from storage afterwards on a
// best-effort basis.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	var photoKey string

	err := s.scope.Execute(ctx, func(repos appsales.TransactionalRepositories) error {
		product, err := repos.Products().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		photoKey = product.PhotoKey

		if err := repos.Sales().DeleteByProductID(ctx, id); err != nil {
			return err
		}
		return repos.Products().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if photoKey != "" && s.storage != nil {
		_ = s.storage.Delete(ctx, photoKey)
	}
	return nil
}

// ListProducts retrieves products with pagination. When the filter
// carries a search term, products are matched by name fragment.
func (s *ProductService) ListProducts(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	items, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(items))
	for i := range items {
		responses[i] = *s.toResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// SearchByName retrieves products whose name contains the fragment,
// case-insensitively, ordered by name.
func (s *ProductService) SearchByName(ctx context.Context, fragment string) ([]ProductResponse, error) {
	items, err := s.productRepo.FindByNameContains(ctx, strings.TrimSpace(fragment))
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(items))
	for i := range items {
		responses[i] = *s.toResponse(&items[i])
	}
	return responses, nil
}

// InventoryReport sums price times quantity over the whole catalog
func (s *ProductService) InventoryReport(ctx context.Context) (*InventoryReport, error) {
	total, err := s.productRepo.TotalInventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.productRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	return &InventoryReport{ProductCount: count, TotalValue: total}, nil
}

// StockBuckets lists products sitting at exactly 0, 1, 2 or 3 units.
// Every bucket is present even when empty, each ordered by name.
func (s *ProductService) StockBuckets(ctx context.Context) ([]StockBucket, error) {
	buckets := make([]StockBucket, 0, len(stockBucketLevels))
	for _, level := range stockBucketLevels {
		items, err := s.productRepo.FindByQuantity(ctx, level)
		if err != nil {
			return nil, err
		}

		responses := make([]ProductResponse, len(items))
		for i := range items {
			responses[i] = *s.toResponse(&items[i])
		}
		buckets = append(buckets, StockBucket{Quantity: level, Products: responses})
	}
	return buckets, nil
}

// AttachPhoto uploads a product photo and stores its object key. The
// key is derived from the product name plus the original extension, so
// a re-upload replaces the previous photo.
func (s *ProductService) AttachPhoto(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*ProductResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Photo storage is not configured")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Photo filename must carry an extension")
	}

	key := "products/" + product.ID.String() + "/" + slugify(product.Name) + ext
	if err := s.storage.Upload(ctx, key, body, contentType); err != nil {
		return nil, err
	}

	previous := product.PhotoKey
	product.ReplacePhoto(key)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if previous != "" && previous != key {
		_ = s.storage.Delete(ctx, previous)
	}
	return s.toResponse(product), nil
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
