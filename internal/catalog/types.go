package catalog

import (
	"fmt"

	"github.com/pediloya/storefront-backend/pkg/enums"
)

// OptionItem is one concrete choice inside a product option. Immutable
// catalog data owned by the upstream menu API.
type OptionItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceAddition int    `json:"price_addition"`
	Available     bool   `json:"available"`
}

// ProductOption is a configurable dimension of a product (size,
// toppings). When Multiple is false MaxSelections is ignored and the
// implicit limit is 1; when Multiple is true and MaxSelections is nil
// the selection count is unbounded.
type ProductOption struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Required      bool         `json:"required"`
	Multiple      bool         `json:"multiple"`
	MaxSelections *int         `json:"max_selections,omitempty"`
	Items         []OptionItem `json:"items"`
}

// Kind returns the closed cardinality variant for the option.
func (o ProductOption) Kind() enums.OptionKind {
	return enums.OptionKindOf(o.Required, o.Multiple)
}

// Item returns the item with the given id. A missing id means the
// caller holds a selection that references catalog data that does not
// exist, which is a programming error, so it panics.
func (o ProductOption) Item(itemID string) OptionItem {
	item, ok := o.FindItem(itemID)
	if !ok {
		panic(fmt.Sprintf("catalog: option %q has no item %q", o.ID, itemID))
	}
	return item
}

// FindItem returns the item with the given id if present.
func (o ProductOption) FindItem(itemID string) (OptionItem, bool) {
	for _, item := range o.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return OptionItem{}, false
}

// Product is immutable catalog data for one orderable item.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BasePrice int             `json:"base_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Options   []ProductOption `json:"options,omitempty"`
}

// Option returns the option with the given id, panicking on a miss for
// the same reason as ProductOption.Item.
func (p Product) Option(optionID string) ProductOption {
	option, ok := p.FindOption(optionID)
	if !ok {
		panic(fmt.Sprintf("catalog: product %q has no option %q", p.ID, optionID))
	}
	return option
}

// FindOption returns the option with the given id if present.
func (p Product) FindOption(optionID string) (ProductOption, bool) {
	for _, option := range p.Options {
		if option.ID == optionID {
			return option, true
		}
	}
	return ProductOption{}, false
}

// Category groups products for display.
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// CommerceInfo carries the per-tenant constraints the checkout gates
// read.
type CommerceInfo struct {
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	IsOpen          bool   `json:"is_open"`
	MinOrderValue   int    `json:"min_order_value"`
	DeliveryFee     int    `json:"delivery_fee"`
	AcceptsDelivery bool   `json:"accepts_delivery"`
	AcceptsPickup   bool   `json:"accepts_pickup"`
}

// Menu is the full read model fetched from the upstream catalog.
type Menu struct {
	Commerce   CommerceInfo `json:"commerce"`
	Categories []Category   `json:"categories"`
}

// Product scans all categories for the product with the given id.
func (m Menu) Product(productID string) (Product, bool) {
	for _, category := range m.Categories {
		for _, product := range category.Products {
			if product.ID == productID {
				return product, true
			}
		}
	}
	return Product{}, false
}
