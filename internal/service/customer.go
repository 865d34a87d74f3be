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

// EventPublisher publishes catalog domain events. Satisfied by *event.Producer.
type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, c *domain.Customer) error
	PublishCustomerUpdated(ctx context.Context, c *domain.Customer) error
	PublishCustomerDeleted(ctx context.Context, customerID string) error
	PublishProductCreated(ctx context.Context, p *domain.Product) error
	PublishProductUpdated(ctx context.Context, p *domain.Product) error
	PublishProductDeleted(ctx context.Context, productID string) error
}

// CustomerService implements the business logic for customer operations.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	producer     EventPublisher
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	producer EventPublisher,
	logger *slog.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		producer:     producer,
		logger:       logger,
	}
}

// CreateCustomerInput holds the parameters for creating a new customer.
type CreateCustomerInput struct {
	Name  string
	Email string
	Phone string
}

// UpdateCustomerInput holds the parameters for partially updating a customer.
// Nil fields are left unchanged.
type UpdateCustomerInput struct {
	Name     *string
	Email    *string
	Phone    *string
	IsActive *bool
}

// List returns a page of customers.
func (s *CustomerService) List(ctx context.Context, params pagination.Params) ([]domain.Customer, error) {
	customers, err := s.customerRepo.List(ctx, repository.ListFilter{Skip: params.Skip, Limit: params.Limit})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Get retrieves a customer by ID.
func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("customer", id)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

// Create registers a new customer. The email must not already be in use.
func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	if err := s.checkEmailAvailable(ctx, input.Email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	// Publish event (non-blocking on failure).
	if err := s.producer.PublishCustomerCreated(ctx, customer); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish customer.created event",
			slog.String("customer_id", customer.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "customer created",
		slog.String("customer_id", customer.ID),
		slog.String("email", customer.Email),
	)

	return customer, nil
}

// Update applies a partial update to an existing customer. A changed email
// must not collide with another customer's.
func (s *CustomerService) Update(ctx context.Context, id string, input UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != customer.Email {
		if err := s.checkEmailAvailable(ctx, *input.Email); err != nil {
			return nil, err
		}
		customer.Email = *input.Email
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("name must not be empty")
		}
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	if err := s.producer.PublishCustomerUpdated(ctx, customer); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish customer.updated event",
			slog.String("customer_id", customer.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "customer updated",
		slog.String("customer_id", customer.ID),
	)

	return customer, nil
}

// Delete removes a customer. The customer's addresses are removed with it.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("customer", id)
		}
		return fmt.Errorf("delete customer: %w", err)
	}

	if err := s.producer.PublishCustomerDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish customer.deleted event",
			slog.String("customer_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "customer deleted",
		slog.String("customer_id", id),
	)

	return nil
}

// checkEmailAvailable returns ErrAlreadyExists when another customer already
// holds the given email. The unique index on customers.email backs this check
// against concurrent writers.
func (s *CustomerService) checkEmailAvailable(ctx context.Context, email string) error {
	_, err := s.customerRepo.GetByEmail(ctx, email)
	if err == nil {
		return apperrors.AlreadyExists("customer", "email", email)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("check email availability: %w", err)
	}
	return nil
}
