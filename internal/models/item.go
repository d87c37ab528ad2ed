package models

// Item is one inventory record as served by GET /api/inventory.
// LastUpdated is an opaque display string and is never parsed.
type Item struct {
	ID          int     `json:"id"`
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	LastUpdated string  `json:"last_updated"`
}

// OutOfStock reports whether the item has no units left.
func (it Item) OutOfStock() bool {
	return it.Stock == 0
}
