package entity

import "time"

// Product is a catalog item from the remote document store.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InStock reports whether at least quantity units are available.
func (p *Product) InStock(quantity int) bool {
	return p.StockQuantity >= quantity
}
