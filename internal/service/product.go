package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/isaac-evs/catalog-service/internal/domain"
	"github.com/isaac-evs/catalog-service/internal/repository"
	apperrors "github.com/isaac-evs/catalog-service/pkg/errors"
	"github.com/isaac-evs/catalog-service/pkg/pagination"
)

// ProductService implements the business logic for product operations.
type ProductService struct {
	productRepo repository.ProductRepository
	producer    EventPublisher
	logger      *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	producer EventPublisher,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		producer:    producer,
		logger:      logger,
	}
}

// CreateProductInput holds the parameters for creating a new product.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	SKU            string
	InventoryCount int
}

// UpdateProductInput holds the parameters for partially updating a product.
// Nil fields are left unchanged.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *float64
	SKU            *string
	InventoryCount *int
	IsActive       *bool
}

// List returns a page of products, optionally restricted to active ones.
func (s *ProductService) List(ctx context.Context, params pagination.Params, activeOnly bool) ([]domain.Product, error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilter{
		Skip:       params.Skip,
		Limit:      params.Limit,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get retrieves a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// GetBySKU retrieves a product by its SKU.
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	product, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundByField("product", "sku", sku)
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return product, nil
}

// Create adds a new product to the catalog. The SKU must not already be in use.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Price <= 0 {
		return nil, apperrors.InvalidInput("price must be greater than zero")
	}
	if input.InventoryCount < 0 {
		return nil, apperrors.InvalidInput("inventory count must not be negative")
	}
	if err := s.checkSKUAvailable(ctx, input.SKU); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		SKU:            input.SKU,
		InventoryCount: input.InventoryCount,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	// Publish event (non-blocking on failure).
	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("sku", product.SKU),
	)

	return product, nil
}

// Update applies a partial update to an existing product. A changed SKU must
// not collide with another product's.
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SKU != nil && *input.SKU != product.SKU {
		if err := s.checkSKUAvailable(ctx, *input.SKU); err != nil {
			return nil, err
		}
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("name must not be empty")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperrors.InvalidInput("price must be greater than zero")
		}
		product.Price = *input.Price
	}
	if input.InventoryCount != nil {
		if *input.InventoryCount < 0 {
			return nil, apperrors.InvalidInput("inventory count must not be negative")
		}
		product.InventoryCount = *input.InventoryCount
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
	)

	return product, nil
}

// Delete removes a product from the catalog.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("product", id)
		}
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}

// checkSKUAvailable returns ErrAlreadyExists when another product already
// holds the given SKU. The unique index on products.sku backs this check
// against concurrent writers.
func (s *ProductService) checkSKUAvailable(ctx context.Context, sku string) error {
	_, err := s.productRepo.GetBySKU(ctx, sku)
	if err == nil {
		return apperrors.AlreadyExists("product", "sku", sku)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("check sku availability: %w", err)
	}
	return nil
}
