package selection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/internal/cart"
)

func TestStoreIsolatesUsers(t *testing.T) {
	item := cart.SubCartItem{ID: uuid.New()}
	subCarts := []cart.SubCart{{ID: uuid.New(), Items: []cart.SubCartItem{item}}}

	store := NewStore()
	store.Put("alice", ToggleItem(NewState(), subCarts, item.ID))

	if !store.Get("alice").ItemSelected(item.ID) {
		t.Fatalf("alice's selection lost")
	}
	if !store.Get("bob").Empty() {
		t.Fatalf("bob must start empty")
	}

	store.Clear("alice")
	if !store.Get("alice").Empty() {
		t.Fatalf("clear must drop the selection")
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	item := cart.SubCartItem{ID: uuid.New()}
	subCarts := []cart.SubCart{{ID: uuid.New(), Items: []cart.SubCartItem{item}}}

	store := NewStore()
	store.Put("alice", NewState())

	// Mutating the copy must not leak back into the store.
	leaked := ToggleItem(store.Get("alice"), subCarts, item.ID)
	_ = leaked
	if store.Get("alice").ItemSelected(item.ID) {
		t.Fatalf("store state must be insulated from caller copies")
	}
}
