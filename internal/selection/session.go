package selection

import (
	"fmt"
	"sort"

	"github.com/pediloya/storefront-backend/internal/cart"
	"github.com/pediloya/storefront-backend/internal/catalog"
	"github.com/pediloya/storefront-backend/pkg/enums"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
)

// MaxSelectionsDetail is attached when a toggle would exceed an
// option's selection limit.
type MaxSelectionsDetail struct {
	OptionID string `json:"option_id"`
	Max      int    `json:"max"`
}

// MissingOptionDetail identifies a required option with no chosen item.
type MissingOptionDetail struct {
	OptionID   string `json:"option_id"`
	OptionName string `json:"option_name,omitempty"`
}

// Session tracks the in-progress configuration of a single product.
// It owns the cardinality rules: every mutation either fully applies or
// leaves the state untouched. A session is bound to one product and is
// discarded without side effects if the configuration is abandoned.
type Session struct {
	product catalog.Product
	chosen  map[string][]string
	ready   bool
}

// NewSession opens a configuration session for the product.
func NewSession(product catalog.Product) *Session {
	return &Session{
		product: product,
		chosen:  make(map[string][]string),
		ready:   true,
	}
}

func (s *Session) mustBeInitialized() {
	if s == nil || !s.ready {
		panic("selection: session used before initialization")
	}
}

// Toggle flips the chosen state of one item. Single-select options have
// radio semantics with toggle-off: picking a new item replaces the old
// one, picking the current item clears it (also for required options,
// matching the storefront's permissive behavior). Multiple-select
// options add and remove items, rejecting an add that would exceed
// MaxSelections without mutating anything.
//
// Unknown option or item ids mean the caller's selection disagrees with
// the catalog, which is a programming error and panics.
func (s *Session) Toggle(optionID, itemID string) error {
	s.mustBeInitialized()

	option := s.product.Option(optionID)
	item := option.Item(itemID)
	if !item.Available {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %q is not available", item.Name))
	}

	current := s.chosen[optionID]

	switch option.Kind() {
	case enums.OptionKindOptionalSingle, enums.OptionKindRequiredSingle:
		if len(current) == 1 && current[0] == itemID {
			delete(s.chosen, optionID)
		} else {
			s.chosen[optionID] = []string{itemID}
		}
		return nil

	case enums.OptionKindOptionalMultiple, enums.OptionKindRequiredMultiple:
		for i, chosenID := range current {
			if chosenID == itemID {
				remaining := append(append([]string{}, current[:i]...), current[i+1:]...)
				if len(remaining) == 0 {
					delete(s.chosen, optionID)
				} else {
					s.chosen[optionID] = remaining
				}
				return nil
			}
		}
		if option.MaxSelections != nil && len(current) >= *option.MaxSelections {
			return pkgerrors.New(pkgerrors.CodeValidation, "maximum selections reached for option").WithDetails(MaxSelectionsDetail{
				OptionID: optionID,
				Max:      *option.MaxSelections,
			})
		}
		s.chosen[optionID] = append(current, itemID)
		return nil

	default:
		panic(fmt.Sprintf("selection: unhandled option kind %q", option.Kind()))
	}
}

// Count returns how many items are currently chosen for the option.
func (s *Session) Count(optionID string) int {
	s.mustBeInitialized()
	return len(s.chosen[optionID])
}

// Validate reports every required option that still has zero chosen
// items. It must pass before the configuration is committed to a cart.
func (s *Session) Validate() error {
	s.mustBeInitialized()

	var missing []MissingOptionDetail
	for _, option := range s.product.Options {
		if option.Required && len(s.chosen[option.ID]) == 0 {
			missing = append(missing, MissingOptionDetail{OptionID: option.ID, OptionName: option.Name})
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%d required option(s) missing a selection", len(missing))).WithDetails(map[string]any{
		"missing_options": missing,
	})
}

// Selected projects the session to the persisted cart shape, omitting
// options with zero chosen items. Options follow the product's
// declaration order; items are sorted by id for determinism.
func (s *Session) Selected() []cart.SelectedOption {
	s.mustBeInitialized()

	var out []cart.SelectedOption
	for _, option := range s.product.Options {
		chosenIDs := s.chosen[option.ID]
		if len(chosenIDs) == 0 {
			continue
		}
		sorted := append([]string{}, chosenIDs...)
		sort.Strings(sorted)

		items := make([]cart.ChosenItem, 0, len(sorted))
		for _, itemID := range sorted {
			item := option.Item(itemID)
			items = append(items, cart.ChosenItem{ItemID: item.ID, PriceAddition: item.PriceAddition})
		}
		out = append(out, cart.SelectedOption{OptionID: option.ID, Items: items})
	}
	return out
}

// Reset discards every choice, returning the session to a fresh state
// for the same product.
func (s *Session) Reset() {
	s.mustBeInitialized()
	s.chosen = make(map[string][]string)
}
