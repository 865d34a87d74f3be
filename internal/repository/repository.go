package repository

import (
	"context"

	"github.com/isaac-evs/catalog-service/internal/domain"
)

// ListFilter defines the offset pagination window for list operations.
// Results are ordered by insertion time.
type ListFilter struct {
	Skip  int
	Limit int
}

// ProductFilter extends ListFilter with the optional active-only restriction.
type ProductFilter struct {
	Skip       int
	Limit      int
	ActiveOnly bool
}

// CustomerRepository defines the interface for customer persistence operations.
type CustomerRepository interface {
	// List returns a page of customers in insertion order.
	List(ctx context.Context, filter ListFilter) ([]domain.Customer, error)

	// GetByID retrieves a customer by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)

	// GetByEmail retrieves a customer by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// Create inserts a new customer into the store.
	Create(ctx context.Context, customer *domain.Customer) error

	// Update modifies an existing customer in the store.
	Update(ctx context.Context, customer *domain.Customer) error

	// Delete removes a customer from the store by their identifier.
	Delete(ctx context.Context, id string) error
}

// AddressRepository defines the interface for address persistence operations.
type AddressRepository interface {
	// List returns a page of addresses in insertion order.
	List(ctx context.Context, filter ListFilter) ([]domain.Address, error)

	// GetByID retrieves an address by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Address, error)

	// ListByCustomerID returns all addresses for the given customer.
	ListByCustomerID(ctx context.Context, customerID string) ([]domain.Address, error)

	// Create inserts a new address. When the address is flagged as the
	// default, any previous default for the same customer is cleared in the
	// same transaction.
	Create(ctx context.Context, address *domain.Address) error

	// Update modifies an existing address. When the address is flagged as
	// the default, any other default for the same customer is cleared in the
	// same transaction.
	Update(ctx context.Context, address *domain.Address) error

	// Delete removes an address from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// List returns a page of products in insertion order, optionally
	// restricted to active products.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySKU retrieves a product by its unique SKU business key.
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// Update modifies an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its identifier.
	Delete(ctx context.Context, id string) error
}
