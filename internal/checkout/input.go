package checkout

import (
	"regexp"
	"strings"

	"github.com/pediloya/storefront-backend/pkg/enums"
)

// phonePattern is deliberately loose. Numbers arrive hand-typed with
// country codes, spaces and dashes in every imaginable arrangement.
var phonePattern = regexp.MustCompile(`^\+?[0-9(][0-9\s().-]{5,19}$`)

// Customer identifies who placed the order.
type Customer struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// Address is the drop-off location for delivery orders.
type Address struct {
	Street    string `json:"street"`
	Number    string `json:"number"`
	Apartment string `json:"apartment,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Pickup describes when and where the customer collects the order.
type Pickup struct {
	Store string `json:"store"`
	Date  string `json:"date"`
	Slot  string `json:"slot"`
}

// Input is everything the customer supplies at checkout besides the cart
// itself.
type Input struct {
	DeliveryMethod enums.DeliveryMethod `json:"delivery_method" validate:"required"`
	PaymentMethod  enums.PaymentMethod  `json:"payment_method" validate:"required"`
	Customer       Customer             `json:"customer"`
	Address        *Address             `json:"address,omitempty"`
	Pickup         *Pickup              `json:"pickup,omitempty"`
}

// Normalize trims whitespace from the free-text fields so validation and
// the submitted order see the same values.
func (in *Input) Normalize() {
	in.Customer.Name = strings.TrimSpace(in.Customer.Name)
	in.Customer.Phone = strings.TrimSpace(in.Customer.Phone)
	if in.Address != nil {
		in.Address.Street = strings.TrimSpace(in.Address.Street)
		in.Address.Number = strings.TrimSpace(in.Address.Number)
		in.Address.Apartment = strings.TrimSpace(in.Address.Apartment)
		in.Address.Notes = strings.TrimSpace(in.Address.Notes)
	}
	if in.Pickup != nil {
		in.Pickup.Store = strings.TrimSpace(in.Pickup.Store)
		in.Pickup.Date = strings.TrimSpace(in.Pickup.Date)
		in.Pickup.Slot = strings.TrimSpace(in.Pickup.Slot)
	}
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
