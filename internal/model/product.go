package model

// Product is the read-only view of a product owned by the remote product
// service. Only the fields needed to price and render orders are kept.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
