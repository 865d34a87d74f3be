package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/isaac-evs/catalog-service/internal/domain"
	"github.com/isaac-evs/catalog-service/internal/repository"
	"github.com/isaac-evs/catalog-service/pkg/database"
	apperrors "github.com/isaac-evs/catalog-service/pkg/errors"
)

// CustomerRepository implements repository.CustomerRepository using PostgreSQL.
type CustomerRepository struct {
	db database.DBTX
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(db database.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns a page of customers in insertion order.
func (r *CustomerRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, is_active, created_at, updated_at
		FROM customers
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, filter.Skip, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

// GetByID retrieves a customer by their ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, is_active, created_at, updated_at
		FROM customers
		WHERE id = $1`

	return r.scanCustomer(ctx, query, id)
}

// GetByEmail retrieves a customer by their email address.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, is_active, created_at, updated_at
		FROM customers
		WHERE email = $1`

	return r.scanCustomer(ctx, query, email)
}

// Create inserts a new customer into the database.
func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.IsActive,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("customer", "email", c.Email)
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

// Update modifies an existing customer in the database.
func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, is_active = $4, updated_at = $5
		WHERE id = $6`

	ct, err := r.db.Exec(ctx, query,
		c.Name,
		c.Email,
		c.Phone,
		c.IsActive,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("customer", "email", c.Email)
		}
		return fmt.Errorf("update customer: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("customer", c.ID)
	}

	return nil
}

// Delete removes a customer from the database by their ID. Addresses owned
// by the customer are removed by the foreign key cascade.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM customers WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("customer", id)
	}

	return nil
}

// scanCustomer is a helper that executes a query expected to return a single customer row.
func (r *CustomerRepository) scanCustomer(ctx context.Context, query string, args ...any) (*domain.Customer, error) {
	var c domain.Customer

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}

	return &c, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
