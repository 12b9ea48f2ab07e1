package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/minhvodev/eatzy-gateway/api/middleware"
	cartsvc "github.com/minhvodev/eatzy-gateway/internal/cart"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
)

const testUser = "user-1"

type stubCartService struct {
	subCarts    []cartsvc.SubCart
	loadErr     bool
	updatedItem uuid.UUID
	updateDelta int
	deletedSubs []uuid.UUID
	deletedItem []uuid.UUID
}

func (s *stubCartService) LoadCart(ctx context.Context, userID string) (*cartsvc.Cart, error) {
	if s.loadErr {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend unavailable")
	}
	return &cartsvc.Cart{ID: uuid.New()}, nil
}

func (s *stubCartService) LoadSubCarts(ctx context.Context, userID string) ([]cartsvc.SubCart, error) {
	if s.loadErr {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend unavailable")
	}
	return s.subCarts, nil
}

func (s *stubCartService) UpdateItemQuantity(ctx context.Context, userID string, itemID uuid.UUID, delta int) ([]cartsvc.SubCart, error) {
	if s.loadErr {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend unavailable")
	}
	s.updatedItem = itemID
	s.updateDelta = delta
	return s.subCarts, nil
}

func (s *stubCartService) DeleteSelection(ctx context.Context, userID string, subCartIDs, itemIDs []uuid.UUID) ([]cartsvc.SubCart, error) {
	if s.loadErr {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "backend unavailable")
	}
	s.deletedSubs = subCartIDs
	s.deletedItem = itemIDs
	return s.subCarts, nil
}

func testTree() []cartsvc.SubCart {
	return []cartsvc.SubCart{
		{
			ID:             uuid.New(),
			RestaurantID:   uuid.New(),
			RestaurantName: "Pho 24",
			TotalPrice:     90000,
			Items: []cartsvc.SubCartItem{
				{ID: uuid.New(), Food: cartsvc.Food{Name: "Pho bo"}, Price: 45000, Quantity: 2},
			},
		},
		{
			ID:             uuid.New(),
			RestaurantID:   uuid.New(),
			RestaurantName: "Banh Mi Ba Le",
			TotalPrice:     30000,
			Items: []cartsvc.SubCartItem{
				{ID: uuid.New(), Food: cartsvc.Food{Name: "Banh mi"}, Price: 15000, Quantity: 2},
			},
		},
	}
}

// doRequest runs the handler with the test user injected, the way the
// identity middleware would.
func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(middleware.WithUserID(req.Context(), testUser))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
