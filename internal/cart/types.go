package cart

import "github.com/google/uuid"

// Food is the menu item snapshot carried by each cart line.
type Food struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
}

// SubCartItem is one (food, time-serve) line inside a restaurant's sub-cart.
// Price is snapshotted at add time; the backend never recomputes it.
type SubCartItem struct {
	ID       uuid.UUID `json:"id"`
	Food     Food      `json:"food"`
	Price    int64     `json:"price"`
	Quantity int       `json:"quantity"`
}

// SubCart is the slice of a user's cart belonging to one restaurant.
type SubCart struct {
	ID             uuid.UUID     `json:"id"`
	RestaurantID   uuid.UUID     `json:"restaurant"`
	RestaurantName string        `json:"restaurant_name"`
	TotalPrice     int64         `json:"total_price"`
	Items          []SubCartItem `json:"sub_cart_items"`
}

// ItemByID returns the item with the given id, if present.
func (s SubCart) ItemByID(itemID uuid.UUID) (SubCartItem, bool) {
	for _, item := range s.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return SubCartItem{}, false
}

// Cart is the per-user cart head. The backend creates it lazily on the first
// item add; the gateway only ever reads it.
type Cart struct {
	ID uuid.UUID `json:"id"`
}
