package controllers

import (
	"github.com/google/uuid"

	cartsvc "github.com/minhvodev/eatzy-gateway/internal/cart"
	"github.com/minhvodev/eatzy-gateway/internal/selection"
)

// ItemView is a cart line flagged with its selection status.
type ItemView struct {
	cartsvc.SubCartItem
	Selected bool `json:"selected"`
}

// SubCartTreeView is the per-restaurant slice of the cart the client renders.
type SubCartTreeView struct {
	ID             uuid.UUID  `json:"id"`
	RestaurantID   uuid.UUID  `json:"restaurant"`
	RestaurantName string     `json:"restaurant_name"`
	TotalPrice     int64      `json:"total_price"`
	Selected       bool       `json:"selected"`
	Items          []ItemView `json:"sub_cart_items"`
}

// newTreeView merges the sub-cart tree with the session's selection flags.
func newTreeView(state selection.State, subCarts []cartsvc.SubCart) []SubCartTreeView {
	views := make([]SubCartTreeView, len(subCarts))
	for i, sc := range subCarts {
		items := make([]ItemView, len(sc.Items))
		for j, item := range sc.Items {
			items[j] = ItemView{SubCartItem: item, Selected: state.ItemSelected(item.ID)}
		}
		views[i] = SubCartTreeView{
			ID:             sc.ID,
			RestaurantID:   sc.RestaurantID,
			RestaurantName: sc.RestaurantName,
			TotalPrice:     sc.TotalPrice,
			Selected:       state.SubCartSelected(sc.ID),
			Items:          items,
		}
	}
	return views
}
