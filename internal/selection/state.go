package selection

import (
	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/internal/cart"
)

// State tracks which items and sub-carts are chosen for checkout. It is an
// explicit value passed through the checkout flow; operations return a new
// State and never mutate the receiver.
//
// Invariant, restored after every operation: a sub-cart id is selected iff
// all of that sub-cart's current items are selected.
type State struct {
	items    map[uuid.UUID]struct{}
	subCarts map[uuid.UUID]struct{}
}

// NewState returns an empty selection.
func NewState() State {
	return State{
		items:    map[uuid.UUID]struct{}{},
		subCarts: map[uuid.UUID]struct{}{},
	}
}

func (s State) clone() State {
	next := State{
		items:    make(map[uuid.UUID]struct{}, len(s.items)),
		subCarts: make(map[uuid.UUID]struct{}, len(s.subCarts)),
	}
	for id := range s.items {
		next.items[id] = struct{}{}
	}
	for id := range s.subCarts {
		next.subCarts[id] = struct{}{}
	}
	return next
}

// ItemSelected reports membership of the item id.
func (s State) ItemSelected(itemID uuid.UUID) bool {
	_, ok := s.items[itemID]
	return ok
}

// SubCartSelected reports membership of the sub-cart id.
func (s State) SubCartSelected(subCartID uuid.UUID) bool {
	_, ok := s.subCarts[subCartID]
	return ok
}

// ItemIDs returns the selected item ids in tree order.
func (s State) ItemIDs(subCarts []cart.SubCart) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.items))
	for _, sc := range subCarts {
		for _, item := range sc.Items {
			if s.ItemSelected(item.ID) {
				ids = append(ids, item.ID)
			}
		}
	}
	return ids
}

// SubCartIDs returns the selected sub-cart ids in tree order.
func (s State) SubCartIDs(subCarts []cart.SubCart) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.subCarts))
	for _, sc := range subCarts {
		if s.SubCartSelected(sc.ID) {
			ids = append(ids, sc.ID)
		}
	}
	return ids
}

// Empty reports whether nothing is selected.
func (s State) Empty() bool {
	return len(s.items) == 0
}

// ToggleItem flips the item's membership, then re-derives the full-selection
// status of every sub-cart. Every sub-cart is recomputed, not just the
// owner: only a full sweep keeps the invariant when the toggled item was the
// last unselected one in its sub-cart.
func ToggleItem(s State, subCarts []cart.SubCart, itemID uuid.UUID) State {
	next := s.clone()
	if _, ok := next.items[itemID]; ok {
		delete(next.items, itemID)
	} else {
		next.items[itemID] = struct{}{}
	}
	next.syncSubCarts(subCarts)
	return next
}

// ToggleSubCart selects or deselects the sub-cart together with all of its
// items.
func ToggleSubCart(s State, subCarts []cart.SubCart, subCartID uuid.UUID) State {
	next := s.clone()
	target, found := findSubCart(subCarts, subCartID)
	if !found {
		return next
	}

	if _, selected := next.subCarts[subCartID]; selected {
		delete(next.subCarts, subCartID)
		for _, item := range target.Items {
			delete(next.items, item.ID)
		}
		return next
	}

	next.subCarts[subCartID] = struct{}{}
	for _, item := range target.Items {
		next.items[item.ID] = struct{}{}
	}
	return next
}

// Normalize drops selections that no longer exist in the given tree and
// re-derives the sub-cart set. Called after every full reload, since items
// may have been deleted server-side.
func Normalize(s State, subCarts []cart.SubCart) State {
	next := NewState()
	known := map[uuid.UUID]struct{}{}
	for _, sc := range subCarts {
		for _, item := range sc.Items {
			known[item.ID] = struct{}{}
		}
	}
	for id := range s.items {
		if _, ok := known[id]; ok {
			next.items[id] = struct{}{}
		}
	}
	next.syncSubCarts(subCarts)
	return next
}

// syncSubCarts rebuilds the sub-cart set from the item set.
func (s State) syncSubCarts(subCarts []cart.SubCart) {
	for _, sc := range subCarts {
		if len(sc.Items) == 0 {
			delete(s.subCarts, sc.ID)
			continue
		}
		all := true
		for _, item := range sc.Items {
			if _, ok := s.items[item.ID]; !ok {
				all = false
				break
			}
		}
		if all {
			s.subCarts[sc.ID] = struct{}{}
		} else {
			delete(s.subCarts, sc.ID)
		}
	}
}

func findSubCart(subCarts []cart.SubCart, subCartID uuid.UUID) (cart.SubCart, bool) {
	for _, sc := range subCarts {
		if sc.ID == subCartID {
			return sc, true
		}
	}
	return cart.SubCart{}, false
}
