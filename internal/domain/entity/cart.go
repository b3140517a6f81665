package entity

import "time"

// CartItem is one line of a user's cart. Product name, price and image are
// snapshotted at add time so the cart renders without extra lookups.
type CartItem struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"image_url"`
	AddedAt   time.Time `json:"added_at"`
}

// Subtotal returns the line total.
func (i *CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartTotal sums the line totals of items.
func CartTotal(items []*CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}

	return total
}
