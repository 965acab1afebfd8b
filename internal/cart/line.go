package cart

// ChosenItem is one picked option item, captured with the price
// addition that was in effect when it was chosen.
type ChosenItem struct {
	ItemID        string `json:"item_id"`
	PriceAddition int    `json:"price_addition"`
}

// SelectedOption records the chosen items for a single product option.
// Options with zero chosen items are never present.
type SelectedOption struct {
	OptionID string       `json:"option_id"`
	Items    []ChosenItem `json:"items"`
}

// Line is one row in the cart: a specific product configuration and its
// quantity. The product fields are a snapshot taken at add time so the
// cart stays renderable if the catalog changes underneath it.
type Line struct {
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name"`
	ImageURL    string           `json:"image_url,omitempty"`
	BasePrice   int              `json:"base_price"`
	Quantity    int              `json:"quantity"`
	Selections  []SelectedOption `json:"selections,omitempty"`

	signature Signature
}

// Signature returns the line's canonical configuration identity.
func (l Line) Signature() Signature {
	return l.signature
}
