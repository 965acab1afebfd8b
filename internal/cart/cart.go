package cart

import (
	"github.com/pediloya/storefront-backend/internal/catalog"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
)

// InvalidQuantityDetail is attached to quantity-rule violations.
type InvalidQuantityDetail struct {
	Quantity int `json:"quantity"`
}

// Cart owns an ordered list of lines and the merge-vs-append decision.
// It is not safe for concurrent use; the owner serializes access.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges the configured product into an existing line when the
// configuration identity matches, otherwise appends a new line in
// insertion order. Selections are expected to have passed the selection
// session's validation already; the only rule enforced here is that the
// quantity is positive.
func (c *Cart) Add(product catalog.Product, quantity int, selections []SelectedOption) (Signature, error) {
	if quantity <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").WithDetails(InvalidQuantityDetail{Quantity: quantity})
	}

	signature := ComputeSignature(product.ID, selections)
	for i := range c.lines {
		if c.lines[i].signature == signature {
			c.lines[i].Quantity += quantity
			return signature, nil
		}
	}

	c.lines = append(c.lines, Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		ImageURL:    product.ImageURL,
		BasePrice:   product.BasePrice,
		Quantity:    quantity,
		Selections:  cloneSelections(selections),
		signature:   signature,
	})
	return signature, nil
}

// UpdateQuantity replaces a line's quantity in place; zero or negative
// removes the line entirely. Returns false when no line carries the
// signature.
func (c *Cart) UpdateQuantity(signature Signature, quantity int) bool {
	for i := range c.lines {
		if c.lines[i].signature != signature {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

// Remove deletes the line with the given signature. Removing a line
// that no longer exists is a no-op.
func (c *Cart) Remove(signature Signature) {
	c.UpdateQuantity(signature, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// ItemCount is the sum of quantities across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the line list in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	for i := range out {
		out[i].Selections = cloneSelections(out[i].Selections)
	}
	return out
}

func cloneSelections(selections []SelectedOption) []SelectedOption {
	if selections == nil {
		return nil
	}
	out := make([]SelectedOption, len(selections))
	for i, selection := range selections {
		items := make([]ChosenItem, len(selection.Items))
		copy(items, selection.Items)
		out[i] = SelectedOption{OptionID: selection.OptionID, Items: items}
	}
	return out
}
