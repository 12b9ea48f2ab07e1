package selection

import (
	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/internal/cart"
)

// SubCartView is a sub-cart reduced to its selected items. TotalPrice is the
// sub-cart's own total, NOT recomputed from the filtered item subset; the
// backend bills the full sub-cart regardless of partial selection.
type SubCartView struct {
	ID             uuid.UUID          `json:"id"`
	RestaurantID   uuid.UUID          `json:"restaurant"`
	RestaurantName string             `json:"restaurant_name"`
	TotalPrice     int64              `json:"total_price"`
	Items          []cart.SubCartItem `json:"sub_cart_items"`
}

// Payload returns, in tree order, a view for every sub-cart that has at
// least one selected item.
func Payload(s State, subCarts []cart.SubCart) []SubCartView {
	views := make([]SubCartView, 0, len(subCarts))
	for _, sc := range subCarts {
		var picked []cart.SubCartItem
		for _, item := range sc.Items {
			if s.ItemSelected(item.ID) {
				picked = append(picked, item)
			}
		}
		if len(picked) == 0 {
			continue
		}
		views = append(views, SubCartView{
			ID:             sc.ID,
			RestaurantID:   sc.RestaurantID,
			RestaurantName: sc.RestaurantName,
			TotalPrice:     sc.TotalPrice,
			Items:          picked,
		})
	}
	return views
}
