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

// AddressService implements the business logic for address operations.
type AddressService struct {
	addressRepo  repository.AddressRepository
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// NewAddressService creates a new address service.
func NewAddressService(
	addressRepo repository.AddressRepository,
	customerRepo repository.CustomerRepository,
	logger *slog.Logger,
) *AddressService {
	return &AddressService{
		addressRepo:  addressRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateAddressInput holds the parameters for creating a new address.
type CreateAddressInput struct {
	CustomerID string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
}

// UpdateAddressInput holds the parameters for partially updating an address.
// Nil fields are left unchanged.
type UpdateAddressInput struct {
	Street     *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
	IsDefault  *bool
}

// List returns a page of addresses.
func (s *AddressService) List(ctx context.Context, params pagination.Params) ([]domain.Address, error) {
	addresses, err := s.addressRepo.List(ctx, repository.ListFilter{Skip: params.Skip, Limit: params.Limit})
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// Get retrieves an address by ID.
func (s *AddressService) Get(ctx context.Context, id string) (*domain.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("address", id)
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return address, nil
}

// ListByCustomer returns all addresses belonging to the given customer. The
// customer must exist.
func (s *AddressService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Address, error) {
	if err := s.checkCustomerExists(ctx, customerID); err != nil {
		return nil, err
	}

	addresses, err := s.addressRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses by customer: %w", err)
	}
	return addresses, nil
}

// Create adds a new address for an existing customer. When flagged as the
// default, any previous default for the customer is demoted atomically.
func (s *AddressService) Create(ctx context.Context, input CreateAddressInput) (*domain.Address, error) {
	if err := s.checkCustomerExists(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	address := &domain.Address{
		ID:         uuid.New().String(),
		CustomerID: input.CustomerID,
		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		IsDefault:  input.IsDefault,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	s.logger.InfoContext(ctx, "address created",
		slog.String("customer_id", input.CustomerID),
		slog.String("address_id", address.ID),
	)

	return address, nil
}

// Update applies a partial update to an existing address. Promoting an
// address to default demotes any sibling default atomically.
func (s *AddressService) Update(ctx context.Context, id string, input UpdateAddressInput) (*domain.Address, error) {
	address, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Street != nil {
		if *input.Street == "" {
			return nil, apperrors.InvalidInput("street must not be empty")
		}
		address.Street = *input.Street
	}
	if input.City != nil {
		if *input.City == "" {
			return nil, apperrors.InvalidInput("city must not be empty")
		}
		address.City = *input.City
	}
	if input.State != nil {
		if *input.State == "" {
			return nil, apperrors.InvalidInput("state must not be empty")
		}
		address.State = *input.State
	}
	if input.PostalCode != nil {
		if *input.PostalCode == "" {
			return nil, apperrors.InvalidInput("postal code must not be empty")
		}
		address.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		if *input.Country == "" {
			return nil, apperrors.InvalidInput("country must not be empty")
		}
		address.Country = *input.Country
	}
	if input.IsDefault != nil {
		address.IsDefault = *input.IsDefault
	}

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	s.logger.InfoContext(ctx, "address updated",
		slog.String("address_id", id),
	)

	return address, nil
}

// Delete removes an address.
func (s *AddressService) Delete(ctx context.Context, id string) error {
	if err := s.addressRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("address", id)
		}
		return fmt.Errorf("delete address: %w", err)
	}

	s.logger.InfoContext(ctx, "address deleted",
		slog.String("address_id", id),
	)

	return nil
}

func (s *AddressService) checkCustomerExists(ctx context.Context, customerID string) error {
	_, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("customer", customerID)
		}
		return fmt.Errorf("check customer exists: %w", err)
	}
	return nil
}
