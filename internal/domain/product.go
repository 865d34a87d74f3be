package domain

import (
	"time"
)

// Product represents a sellable item in the catalog, identified both by a
// system-assigned ID and a unique SKU business key.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Price          float64   `json:"price"`
	SKU            string    `json:"sku"`
	InventoryCount int       `json:"inventory_count"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
