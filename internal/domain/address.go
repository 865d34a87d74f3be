package domain

import (
	"time"
)

// Address represents a shipping or billing address belonging to a customer.
// At most one address per customer may be flagged as the default.
type Address struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
