package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pediloya/storefront-backend/api/middleware"
	cartsvc "github.com/pediloya/storefront-backend/internal/cart"
	"github.com/pediloya/storefront-backend/internal/catalog"
)

type stubCartService struct {
	current *cartsvc.Cart
	err     error

	lastProduct  catalog.Product
	lastQuantity int
	lastSig      cartsvc.Signature
	cleared      bool
}

func (s *stubCartService) Get(ctx context.Context, tenantID, sessionID string) (*cartsvc.Cart, error) {
	return s.current, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, tenantID, sessionID string, product catalog.Product, quantity int, selections []cartsvc.SelectedOption) (*cartsvc.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastProduct = product
	s.lastQuantity = quantity
	if _, err := s.current.Add(product, quantity, selections); err != nil {
		return nil, err
	}
	return s.current, nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, tenantID, sessionID string, signature cartsvc.Signature, quantity int) (*cartsvc.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastSig = signature
	s.current.UpdateQuantity(signature, quantity)
	return s.current, nil
}

func (s *stubCartService) RemoveLine(ctx context.Context, tenantID, sessionID string, signature cartsvc.Signature) (*cartsvc.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastSig = signature
	s.current.Remove(signature)
	return s.current, nil
}

func (s *stubCartService) Clear(ctx context.Context, tenantID, sessionID string) error {
	s.cleared = true
	return s.err
}

type stubCatalogService struct {
	menu *catalog.Menu
	err  error
}

func (s *stubCatalogService) Menu(ctx context.Context, tenantID string) (*catalog.Menu, error) {
	return s.menu, s.err
}

func storefrontMenu() *catalog.Menu {
	return &catalog.Menu{
		Commerce: catalog.CommerceInfo{Name: "La Esquina", IsOpen: true, AcceptsDelivery: true},
		Categories: []catalog.Category{{
			ID:   "cat-pizzas",
			Name: "Pizzas",
			Products: []catalog.Product{{
				ID:        "prod-pizza",
				Name:      "Pizza",
				BasePrice: 8000,
				Options: []catalog.ProductOption{{
					ID:       "opt-size",
					Name:     "Tamaño",
					Required: true,
					Items: []catalog.OptionItem{
						{ID: "item-chica", Name: "Chica", Available: true},
						{ID: "item-grande", Name: "Grande", PriceAddition: 2000, Available: true},
					},
				}},
			}},
		}},
	}
}

func sessionRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithTenantID(req.Context(), "la-esquina")
	ctx = middleware.WithCartSession(ctx, "sess-1")
	return req.WithContext(ctx)
}

func withSignatureParam(req *http.Request, signature string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("signature", signature)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeCartView(t *testing.T, resp *httptest.ResponseRecorder) CartView {
	t.Helper()
	var envelope struct {
		Data CartView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartAddItemSuccess(t *testing.T) {
	svc := &stubCartService{current: &cartsvc.Cart{}}
	handler := CartAddItem(svc, &stubCatalogService{menu: storefrontMenu()}, nil)

	body := `{"product_id":"prod-pizza","quantity":2,"selections":[{"option_id":"opt-size","item_ids":["item-grande"]}]}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	view := decodeCartView(t, resp)
	if len(view.Lines) != 1 {
		t.Fatalf("expected one line, got %+v", view.Lines)
	}
	line := view.Lines[0]
	if line.UnitPrice != 10000 || line.LineTotal != 20000 {
		t.Fatalf("unexpected pricing unit=%d total=%d", line.UnitPrice, line.LineTotal)
	}
	if view.Subtotal != 20000 || view.ItemCount != 2 {
		t.Fatalf("unexpected aggregates subtotal=%d count=%d", view.Subtotal, view.ItemCount)
	}
	if line.Signature == "" {
		t.Fatalf("expected encoded signature on line")
	}
}

func TestCartAddItemMissingRequiredOption(t *testing.T) {
	svc := &stubCartService{current: &cartsvc.Cart{}}
	handler := CartAddItem(svc, &stubCatalogService{menu: storefrontMenu()}, nil)

	body := `{"product_id":"prod-pizza","quantity":1}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	svc := &stubCartService{current: &cartsvc.Cart{}}
	handler := CartAddItem(svc, &stubCatalogService{menu: storefrontMenu()}, nil)

	body := `{"product_id":"prod-missing","quantity":1}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartAddItemRejectsBadBody(t *testing.T) {
	svc := &stubCartService{current: &cartsvc.Cart{}}
	handler := CartAddItem(svc, &stubCatalogService{menu: storefrontMenu()}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"quantity":0}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateItemBySignature(t *testing.T) {
	seeded := &cartsvc.Cart{}
	product := storefrontMenu().Categories[0].Products[0]
	sig, err := seeded.Add(product, 1, nil)
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	svc := &stubCartService{current: seeded}
	handler := CartUpdateItem(svc, nil)

	req := sessionRequest(http.MethodPatch, "/api/v1/cart/items/"+sig.Encode(), `{"quantity":5}`)
	req = withSignatureParam(req, sig.Encode())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	view := decodeCartView(t, resp)
	if view.ItemCount != 5 {
		t.Fatalf("expected quantity update, got %+v", view)
	}
}

func TestCartUpdateItemBadSignature(t *testing.T) {
	svc := &stubCartService{current: &cartsvc.Cart{}}
	handler := CartUpdateItem(svc, nil)

	req := sessionRequest(http.MethodPatch, "/api/v1/cart/items/bad", `{"quantity":5}`)
	req = withSignatureParam(req, "not!base64url")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartRemoveItemIdempotent(t *testing.T) {
	seeded := &cartsvc.Cart{}
	product := storefrontMenu().Categories[0].Products[0]
	sig, err := seeded.Add(product, 1, nil)
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	svc := &stubCartService{current: seeded}
	handler := CartRemoveItem(svc, nil)

	for i := 0; i < 2; i++ {
		req := sessionRequest(http.MethodDelete, "/api/v1/cart/items/"+sig.Encode(), "")
		req = withSignatureParam(req, sig.Encode())
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200 got %d", i, resp.Code)
		}
		view := decodeCartView(t, resp)
		if len(view.Lines) != 0 {
			t.Fatalf("attempt %d: expected empty cart, got %+v", i, view.Lines)
		}
	}
}

func TestCartClear(t *testing.T) {
	svc := &stubCartService{current: &cartsvc.Cart{}}
	handler := CartClear(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodDelete, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.cleared {
		t.Fatalf("expected clear to reach the service")
	}
}

func TestCartFetchEmpty(t *testing.T) {
	svc := &stubCartService{current: &cartsvc.Cart{}}
	handler := CartFetch(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	view := decodeCartView(t, resp)
	if len(view.Lines) != 0 || view.Subtotal != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}
