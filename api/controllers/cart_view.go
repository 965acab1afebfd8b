package controllers

import (
	"github.com/pediloya/storefront-backend/internal/cart"
	"github.com/pediloya/storefront-backend/internal/pricing"
)

// CartLineView is one cart row enriched with computed prices. The
// signature is the url-safe handle used to address the line.
type CartLineView struct {
	Signature   string                `json:"signature"`
	ProductID   string                `json:"product_id"`
	ProductName string                `json:"product_name"`
	ImageURL    string                `json:"image_url,omitempty"`
	BasePrice   int                   `json:"base_price"`
	Quantity    int                   `json:"quantity"`
	Selections  []cart.SelectedOption `json:"selections,omitempty"`
	UnitPrice   int                   `json:"unit_price"`
	LineTotal   int                   `json:"line_total"`
}

// CartView is the full cart as the storefront renders it.
type CartView struct {
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"item_count"`
	Subtotal  int            `json:"subtotal"`
}

func newCartView(c *cart.Cart) CartView {
	lines := c.Lines()
	view := CartView{
		Lines:     make([]CartLineView, 0, len(lines)),
		ItemCount: c.ItemCount(),
		Subtotal:  pricing.Subtotal(lines),
	}
	for _, line := range lines {
		view.Lines = append(view.Lines, CartLineView{
			Signature:   line.Signature().Encode(),
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			ImageURL:    line.ImageURL,
			BasePrice:   line.BasePrice,
			Quantity:    line.Quantity,
			Selections:  line.Selections,
			UnitPrice:   pricing.UnitPrice(line.BasePrice, line.Selections),
			LineTotal:   pricing.LineTotal(line),
		})
	}
	return view
}
