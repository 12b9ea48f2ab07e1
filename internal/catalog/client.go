package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/pkg/backend"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/types"
)

// Restaurant is the delivery profile the gateway needs for shipping quotes:
// the pickup coordinate and the restaurant's own per-kilometer rate.
type Restaurant struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Address          types.LatLng `json:"address"`
	ShippingFeePerKm int64        `json:"shipping_fee_per_km"`
}

// Client reads restaurant records from the core backend.
type Client struct {
	backend *backend.Client
}

// NewClient wraps the shared backend caller.
func NewClient(b *backend.Client) (*Client, error) {
	if b == nil {
		return nil, fmt.Errorf("backend client required")
	}
	return &Client{backend: b}, nil
}

// GetRestaurant fetches one restaurant by id. A missing restaurant is an
// error here, unlike a missing cart: every sub-cart references one.
func (c *Client) GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*Restaurant, error) {
	var restaurant Restaurant
	path := fmt.Sprintf("/api/v1/restaurants/%s", restaurantID)
	if err := c.backend.GetJSON(ctx, path, &restaurant); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found").
				WithDetails(map[string]any{"restaurant_id": restaurantID.String()})
		}
		return nil, err
	}
	return &restaurant, nil
}
