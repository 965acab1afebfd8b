// Package pricing holds the pure money math for configured products.
// All values are whole pesos as non-negative integers; there is no
// fractional currency anywhere in these paths.
package pricing

import "github.com/pediloya/storefront-backend/internal/cart"

// UnitAddition sums the price additions of every chosen item across all
// selected options.
func UnitAddition(selections []cart.SelectedOption) int {
	var total int
	for _, selection := range selections {
		for _, item := range selection.Items {
			total += item.PriceAddition
		}
	}
	return total
}

// UnitPrice is the price of a single configured unit.
func UnitPrice(basePrice int, selections []cart.SelectedOption) int {
	return basePrice + UnitAddition(selections)
}

// LineTotal is the line's unit price multiplied by its quantity.
func LineTotal(line cart.Line) int {
	return UnitPrice(line.BasePrice, line.Selections) * line.Quantity
}

// Subtotal sums the line totals of every cart line.
func Subtotal(lines []cart.Line) int {
	var total int
	for _, line := range lines {
		total += LineTotal(line)
	}
	return total
}
