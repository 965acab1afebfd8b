package catalog

import (
	"testing"

	"github.com/pediloya/storefront-backend/pkg/enums"
)

func sampleProduct() Product {
	max := 3
	return Product{
		ID:        "prod-1",
		Name:      "Hamburguesa completa",
		BasePrice: 10000,
		Options: []ProductOption{
			{
				ID:       "opt-size",
				Name:     "Tamaño",
				Required: true,
				Items: []OptionItem{
					{ID: "item-s", Name: "Simple", PriceAddition: 0, Available: true},
					{ID: "item-d", Name: "Doble", PriceAddition: 1500, Available: true},
				},
			},
			{
				ID:            "opt-extras",
				Name:          "Extras",
				Multiple:      true,
				MaxSelections: &max,
				Items: []OptionItem{
					{ID: "item-cheese", Name: "Queso", PriceAddition: 500, Available: true},
					{ID: "item-bacon", Name: "Panceta", PriceAddition: 800, Available: true},
					{ID: "item-egg", Name: "Huevo", PriceAddition: 400, Available: true},
					{ID: "item-onion", Name: "Cebolla", PriceAddition: 200, Available: true},
				},
			},
		},
	}
}

func TestOptionKindDerivation(t *testing.T) {
	t.Parallel()

	product := sampleProduct()
	if kind := product.Option("opt-size").Kind(); kind != enums.OptionKindRequiredSingle {
		t.Fatalf("expected required-single, got %s", kind)
	}
	if kind := product.Option("opt-extras").Kind(); kind != enums.OptionKindOptionalMultiple {
		t.Fatalf("expected optional-multiple, got %s", kind)
	}
}

func TestLookupPanicsOnUnknownIDs(t *testing.T) {
	t.Parallel()

	product := sampleProduct()

	assertPanics(t, "unknown option", func() {
		product.Option("opt-missing")
	})
	assertPanics(t, "unknown item", func() {
		product.Option("opt-size").Item("item-missing")
	})
}

func TestMenuProductLookup(t *testing.T) {
	t.Parallel()

	menu := Menu{
		Categories: []Category{
			{ID: "cat-1", Name: "Hamburguesas", Products: []Product{sampleProduct()}},
		},
	}

	if _, ok := menu.Product("prod-1"); !ok {
		t.Fatalf("expected product to be found")
	}
	if _, ok := menu.Product("prod-2"); ok {
		t.Fatalf("expected miss for unknown product")
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}
