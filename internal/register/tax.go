package register

import "math"

// TaxRate is the sales tax rate (19% IVA, Chile).
const TaxRate = 0.19

// taxFromSubtotal computes the tax on a subtotal, rounded half-up to a whole
// unit (CLP has no cents).
func taxFromSubtotal(subtotal float64) float64 {
	return math.Round(subtotal * TaxRate)
}
