package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/isaac-evs/catalog-service/internal/domain"
	"github.com/isaac-evs/catalog-service/internal/repository"
	"github.com/isaac-evs/catalog-service/pkg/database"
	apperrors "github.com/isaac-evs/catalog-service/pkg/errors"
)

// AddressRepository implements repository.AddressRepository using PostgreSQL.
type AddressRepository struct {
	db database.DBTX
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(db database.DBTX) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, customer_id, street, city, state, postal_code, country, is_default, created_at, updated_at`

// List returns a page of addresses in insertion order.
func (r *AddressRepository) List(ctx context.Context, filter repository.ListFilter) ([]domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, filter.Skip, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	return collectAddresses(rows)
}

// GetByID retrieves an address by its ID.
func (r *AddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE id = $1`

	var a domain.Address
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.CustomerID,
		&a.Street,
		&a.City,
		&a.State,
		&a.PostalCode,
		&a.Country,
		&a.IsDefault,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan address: %w", err)
	}

	return &a, nil
}

// ListByCustomerID returns all addresses for the given customer, default first.
func (r *AddressRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE customer_id = $1
		ORDER BY is_default DESC, created_at, id`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses by customer: %w", err)
	}
	defer rows.Close()

	return collectAddresses(rows)
}

// Create inserts a new address into the database. When the address is the
// default, the insert and the demotion of any previous default run in a
// single transaction so the one-default invariant holds under concurrency.
func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) error {
	insert := `
		INSERT INTO addresses (id, customer_id, street, city, state, postal_code, country, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	args := []any{
		a.ID,
		a.CustomerID,
		a.Street,
		a.City,
		a.State,
		a.PostalCode,
		a.Country,
		a.IsDefault,
		a.CreatedAt,
		a.UpdatedAt,
	}

	if !a.IsDefault {
		if _, err := r.db.Exec(ctx, insert, args...); err != nil {
			return fmt.Errorf("insert address: %w", err)
		}
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`UPDATE addresses SET is_default = false, updated_at = $1 WHERE customer_id = $2 AND is_default = true`,
		time.Now().UTC(), a.CustomerID,
	); err != nil {
		return fmt.Errorf("unset default address: %w", err)
	}

	if _, err := tx.Exec(ctx, insert, args...); err != nil {
		return fmt.Errorf("insert address: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Update modifies an existing address in the database. Promoting an address
// to default demotes any sibling default in the same transaction.
func (r *AddressRepository) Update(ctx context.Context, a *domain.Address) error {
	a.UpdatedAt = time.Now().UTC()

	update := `
		UPDATE addresses
		SET street = $1, city = $2, state = $3, postal_code = $4, country = $5,
		    is_default = $6, updated_at = $7
		WHERE id = $8`

	args := []any{
		a.Street,
		a.City,
		a.State,
		a.PostalCode,
		a.Country,
		a.IsDefault,
		a.UpdatedAt,
		a.ID,
	}

	if !a.IsDefault {
		ct, err := r.db.Exec(ctx, update, args...)
		if err != nil {
			return fmt.Errorf("update address: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return apperrors.NotFound("address", a.ID)
		}
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`UPDATE addresses SET is_default = false, updated_at = $1 WHERE customer_id = $2 AND is_default = true AND id <> $3`,
		a.UpdatedAt, a.CustomerID, a.ID,
	); err != nil {
		return fmt.Errorf("unset default address: %w", err)
	}

	ct, err := tx.Exec(ctx, update, args...)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", a.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Delete removes an address from the database by its ID.
func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM addresses WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", id)
	}

	return nil
}

func collectAddresses(rows pgx.Rows) ([]domain.Address, error) {
	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.Street,
			&a.City,
			&a.State,
			&a.PostalCode,
			&a.Country,
			&a.IsDefault,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}

	return addresses, nil
}
