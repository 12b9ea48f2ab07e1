package selection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/internal/cart"
)

func fixtureTree() (subCarts []cart.SubCart, a1, a2, b1 cart.SubCartItem) {
	a1 = cart.SubCartItem{ID: uuid.New(), Food: cart.Food{Name: "Pho bo"}, Price: 45000, Quantity: 2}
	a2 = cart.SubCartItem{ID: uuid.New(), Food: cart.Food{Name: "Goi cuon"}, Price: 30000, Quantity: 1}
	b1 = cart.SubCartItem{ID: uuid.New(), Food: cart.Food{Name: "Banh mi"}, Price: 15000, Quantity: 1}

	subCarts = []cart.SubCart{
		{ID: uuid.New(), RestaurantName: "Pho 24", TotalPrice: 120000, Items: []cart.SubCartItem{a1, a2}},
		{ID: uuid.New(), RestaurantName: "Banh Mi Ba Le", TotalPrice: 15000, Items: []cart.SubCartItem{b1}},
	}
	return subCarts, a1, a2, b1
}

// checkInvariant asserts: sub-cart selected iff all its items are selected.
func checkInvariant(t *testing.T, s State, subCarts []cart.SubCart) {
	t.Helper()
	for _, sc := range subCarts {
		all := len(sc.Items) > 0
		for _, item := range sc.Items {
			if !s.ItemSelected(item.ID) {
				all = false
				break
			}
		}
		if got := s.SubCartSelected(sc.ID); got != all {
			t.Fatalf("invariant broken for %s: selected=%v allItems=%v", sc.RestaurantName, got, all)
		}
	}
}

func TestToggleItemPromotesSubCartWhenLastItemSelected(t *testing.T) {
	subCarts, a1, a2, _ := fixtureTree()

	s := NewState()
	s = ToggleItem(s, subCarts, a1.ID)
	checkInvariant(t, s, subCarts)
	if s.SubCartSelected(subCarts[0].ID) {
		t.Fatalf("sub cart must not be selected with one of two items")
	}

	s = ToggleItem(s, subCarts, a2.ID)
	checkInvariant(t, s, subCarts)
	if !s.SubCartSelected(subCarts[0].ID) {
		t.Fatalf("sub cart must auto-promote when all items selected")
	}
}

func TestToggleItemDemotesSubCartWhenItemDeselected(t *testing.T) {
	subCarts, a1, a2, _ := fixtureTree()

	s := NewState()
	s = ToggleItem(s, subCarts, a1.ID)
	s = ToggleItem(s, subCarts, a2.ID)
	s = ToggleItem(s, subCarts, a1.ID)

	checkInvariant(t, s, subCarts)
	if s.SubCartSelected(subCarts[0].ID) {
		t.Fatalf("sub cart must demote when an item drops out")
	}
	if !s.ItemSelected(a2.ID) {
		t.Fatalf("sibling item selection must survive")
	}
}

func TestToggleItemTwiceIsIdentity(t *testing.T) {
	subCarts, a1, _, b1 := fixtureTree()

	s := NewState()
	s = ToggleItem(s, subCarts, b1.ID)

	before := s
	s = ToggleItem(s, subCarts, a1.ID)
	s = ToggleItem(s, subCarts, a1.ID)

	if s.ItemSelected(a1.ID) != before.ItemSelected(a1.ID) {
		t.Fatalf("double toggle changed item membership")
	}
	if s.SubCartSelected(subCarts[0].ID) != before.SubCartSelected(subCarts[0].ID) {
		t.Fatalf("double toggle changed sub cart membership")
	}
	checkInvariant(t, s, subCarts)
}

func TestToggleSubCartSelectsAndDeselectsAllItems(t *testing.T) {
	subCarts, a1, a2, b1 := fixtureTree()

	s := NewState()
	s = ToggleSubCart(s, subCarts, subCarts[0].ID)
	checkInvariant(t, s, subCarts)
	if !s.ItemSelected(a1.ID) || !s.ItemSelected(a2.ID) {
		t.Fatalf("toggling a sub cart must select its items")
	}
	if s.ItemSelected(b1.ID) {
		t.Fatalf("sibling sub cart items must be untouched")
	}

	s = ToggleSubCart(s, subCarts, subCarts[0].ID)
	checkInvariant(t, s, subCarts)
	if s.ItemSelected(a1.ID) || s.ItemSelected(a2.ID) {
		t.Fatalf("deselecting a sub cart must deselect its items")
	}
}

func TestToggleSubCartUnknownIDIsNoop(t *testing.T) {
	subCarts, _, _, _ := fixtureTree()

	s := ToggleSubCart(NewState(), subCarts, uuid.New())
	if !s.Empty() {
		t.Fatalf("unknown sub cart toggle must not select anything")
	}
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	subCarts, a1, _, _ := fixtureTree()

	original := NewState()
	_ = ToggleItem(original, subCarts, a1.ID)
	if original.ItemSelected(a1.ID) {
		t.Fatalf("ToggleItem mutated its input state")
	}
}

func TestNormalizePrunesDeletedItems(t *testing.T) {
	subCarts, a1, a2, b1 := fixtureTree()

	s := NewState()
	s = ToggleSubCart(s, subCarts, subCarts[0].ID)
	s = ToggleItem(s, subCarts, b1.ID)

	// Server-side, a2 was deleted; the reload returns a smaller tree.
	shrunk := []cart.SubCart{
		{ID: subCarts[0].ID, RestaurantName: "Pho 24", TotalPrice: 90000, Items: []cart.SubCartItem{a1}},
		subCarts[1],
	}
	s = Normalize(s, shrunk)

	checkInvariant(t, s, shrunk)
	if s.ItemSelected(a2.ID) {
		t.Fatalf("deleted item must be pruned")
	}
	if !s.ItemSelected(a1.ID) || !s.ItemSelected(b1.ID) {
		t.Fatalf("surviving selections must be kept")
	}
	if !s.SubCartSelected(subCarts[0].ID) {
		t.Fatalf("sub cart with all surviving items selected must stay selected")
	}
}

func TestPayloadKeepsSubCartTotals(t *testing.T) {
	subCarts, a1, _, _ := fixtureTree()

	s := NewState()
	s = ToggleItem(s, subCarts, a1.ID)

	views := Payload(s, subCarts)
	if len(views) != 1 {
		t.Fatalf("expected one view, got %d", len(views))
	}
	view := views[0]
	if len(view.Items) != 1 || view.Items[0].ID != a1.ID {
		t.Fatalf("view must contain only selected items, got %+v", view.Items)
	}
	// The sub-cart total is carried as-is, not recomputed from the subset.
	if view.TotalPrice != 120000 {
		t.Fatalf("expected sub cart total 120000, got %d", view.TotalPrice)
	}
}

func TestPayloadOmitsUnselectedSubCarts(t *testing.T) {
	subCarts, _, _, b1 := fixtureTree()

	s := ToggleItem(NewState(), subCarts, b1.ID)
	views := Payload(s, subCarts)
	if len(views) != 1 || views[0].ID != subCarts[1].ID {
		t.Fatalf("expected only the second sub cart, got %+v", views)
	}
}
