package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type stubBackend struct {
	cart     *Cart
	subCarts []SubCart

	cartErr error

	quantityCalls []int
	deletedSubs   [][]uuid.UUID
	deletedItems  [][]uuid.UUID
	listCalls     int
}

func (s *stubBackend) GetCart(_ context.Context, _ string) (*Cart, error) {
	if s.cartErr != nil {
		return nil, s.cartErr
	}
	return s.cart, nil
}

func (s *stubBackend) ListSubCarts(_ context.Context, _ uuid.UUID) ([]SubCart, error) {
	s.listCalls++
	return s.subCarts, nil
}

func (s *stubBackend) UpdateItemQuantity(_ context.Context, _ uuid.UUID, delta int) error {
	s.quantityCalls = append(s.quantityCalls, delta)
	return nil
}

func (s *stubBackend) DeleteSubCarts(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
	s.deletedSubs = append(s.deletedSubs, ids)
	return nil
}

func (s *stubBackend) DeleteItems(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
	s.deletedItems = append(s.deletedItems, ids)
	return nil
}

func twoSubCartTree() (stub *stubBackend, subA, subB SubCart) {
	subA = SubCart{
		ID:             uuid.New(),
		RestaurantID:   uuid.New(),
		RestaurantName: "Pho 24",
		TotalPrice:     90000,
		Items: []SubCartItem{
			{ID: uuid.New(), Food: Food{Name: "Pho bo"}, Price: 45000, Quantity: 2},
		},
	}
	subB = SubCart{
		ID:             uuid.New(),
		RestaurantID:   uuid.New(),
		RestaurantName: "Banh Mi Ba Le",
		TotalPrice:     30000,
		Items: []SubCartItem{
			{ID: uuid.New(), Food: Food{Name: "Banh mi"}, Price: 15000, Quantity: 1},
			{ID: uuid.New(), Food: Food{Name: "Ca phe sua"}, Price: 15000, Quantity: 1},
		},
	}
	stub = &stubBackend{
		cart:     &Cart{ID: uuid.New()},
		subCarts: []SubCart{subA, subB},
	}
	return stub, subA, subB
}

func TestLoadSubCartsWithoutCartIsEmptyNotError(t *testing.T) {
	svc, err := NewService(&stubBackend{cart: nil}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	subCarts, err := svc.LoadSubCarts(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error for missing cart, got %v", err)
	}
	if len(subCarts) != 0 {
		t.Fatalf("expected empty tree, got %d sub carts", len(subCarts))
	}
}

func TestLoadSubCartsPropagatesBackendFailure(t *testing.T) {
	boom := errors.New("backend down")
	svc, _ := NewService(&stubBackend{cartErr: boom}, nil)

	if _, err := svc.LoadSubCarts(context.Background(), "user-1"); !errors.Is(err, boom) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestUpdateItemQuantityRejectsDecrementBelowOne(t *testing.T) {
	stub, _, subB := twoSubCartTree()
	svc, _ := NewService(stub, nil)

	// subB's first item has quantity 1; -1 would take it to 0.
	subCarts, err := svc.UpdateItemQuantity(context.Background(), "user-1", subB.Items[0].ID, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.quantityCalls) != 0 {
		t.Fatalf("backend should not be called for a rejected decrement")
	}
	if len(subCarts) != 2 {
		t.Fatalf("expected current tree back, got %d sub carts", len(subCarts))
	}
}

func TestUpdateItemQuantitySendsDeltaThenReloads(t *testing.T) {
	stub, subA, _ := twoSubCartTree()
	svc, _ := NewService(stub, nil)

	if _, err := svc.UpdateItemQuantity(context.Background(), "user-1", subA.Items[0].ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.quantityCalls) != 1 || stub.quantityCalls[0] != 1 {
		t.Fatalf("expected one +1 call, got %v", stub.quantityCalls)
	}
	// initial load + reload after mutation
	if stub.listCalls != 2 {
		t.Fatalf("expected mutate-then-refetch, got %d list calls", stub.listCalls)
	}
}

func TestUpdateItemQuantityUnknownItem(t *testing.T) {
	stub, _, _ := twoSubCartTree()
	svc, _ := NewService(stub, nil)

	if _, err := svc.UpdateItemQuantity(context.Background(), "user-1", uuid.New(), 1); err == nil {
		t.Fatalf("expected error for unknown item")
	}
}

func TestDeleteSelectionSkipsItemsInsideDeletedSubCarts(t *testing.T) {
	stub, subA, subB := twoSubCartTree()
	svc, _ := NewService(stub, nil)

	// Whole subA goes; subA's item is also individually listed and must be
	// filtered out, while subB's first item is deleted on its own.
	_, err := svc.DeleteSelection(context.Background(), "user-1",
		[]uuid.UUID{subA.ID},
		[]uuid.UUID{subA.Items[0].ID, subB.Items[0].ID},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stub.deletedSubs) != 1 || len(stub.deletedSubs[0]) != 1 || stub.deletedSubs[0][0] != subA.ID {
		t.Fatalf("unexpected sub cart deletes %v", stub.deletedSubs)
	}
	if len(stub.deletedItems) != 1 || len(stub.deletedItems[0]) != 1 || stub.deletedItems[0][0] != subB.Items[0].ID {
		t.Fatalf("unexpected item deletes %v", stub.deletedItems)
	}
}

func TestDeleteSelectionSkipsUnknownItems(t *testing.T) {
	stub, subA, _ := twoSubCartTree()
	svc, _ := NewService(stub, nil)

	_, err := svc.DeleteSelection(context.Background(), "user-1",
		nil,
		[]uuid.UUID{uuid.New(), subA.Items[0].ID},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.deletedSubs) != 0 {
		t.Fatalf("no sub cart deletes expected")
	}
	if len(stub.deletedItems) != 1 || len(stub.deletedItems[0]) != 1 {
		t.Fatalf("expected only the known item to be deleted, got %v", stub.deletedItems)
	}
}

func TestDeleteSelectionWithoutCart(t *testing.T) {
	svc, _ := NewService(&stubBackend{cart: nil}, nil)

	if _, err := svc.DeleteSelection(context.Background(), "user-1", nil, []uuid.UUID{uuid.New()}); err == nil {
		t.Fatalf("expected error when user has no cart")
	}
}
