package catalog

import "math"

// Product represents an item in the product catalog.
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Stock   float64 `json:"stock"`
	Barcode string  `json:"barcode,omitempty"`
	Expiry  string  `json:"expiry,omitempty"`
}

// toNum coerces negative or non-finite values to 0.
func toNum(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
