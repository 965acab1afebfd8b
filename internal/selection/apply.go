package selection

import (
	"fmt"

	"github.com/pediloya/storefront-backend/internal/catalog"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
)

// SelectedOptionInput is the client-submitted shape of one option's
// choices.
type SelectedOptionInput struct {
	OptionID string   `json:"option_id" validate:"required"`
	ItemIDs  []string `json:"item_ids" validate:"required,min=1"`
}

// ApplySelections rebuilds a session from a submitted selection payload
// by replaying Toggle, so API input passes through exactly the same
// cardinality rules as interactive configuration. Unlike Toggle, ids
// that don't exist in the catalog are treated as bad input, not as a
// programming error.
func ApplySelections(product catalog.Product, inputs []SelectedOptionInput) (*Session, error) {
	session := NewSession(product)

	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		if _, dup := seen[input.OptionID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("option %q appears more than once", input.OptionID))
		}
		seen[input.OptionID] = struct{}{}

		option, ok := product.FindOption(input.OptionID)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown option %q", input.OptionID))
		}

		if !option.Multiple && len(input.ItemIDs) > 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("option %q accepts a single choice", input.OptionID))
		}

		applied := make(map[string]struct{}, len(input.ItemIDs))
		for _, itemID := range input.ItemIDs {
			if _, dup := applied[itemID]; dup {
				continue
			}
			applied[itemID] = struct{}{}

			if _, ok := option.FindItem(itemID); !ok {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown item %q for option %q", itemID, input.OptionID))
			}
			if err := session.Toggle(option.ID, itemID); err != nil {
				return nil, err
			}
		}
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}
	return session, nil
}
