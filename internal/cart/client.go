package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/pkg/backend"
)

// Client exposes the cart endpoints of the core backend.
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

// GetCart fetches the user's cart head. A backend 404 means the user simply
// has no cart yet and is reported as (nil, nil).
func (c *Client) GetCart(ctx context.Context, userID string) (*Cart, error) {
	var cart Cart
	err := c.backend.GetJSON(ctx, "/api/v1/cart", &cart, backend.AsUser(userID))
	if errors.Is(err, backend.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListSubCarts fetches the full sub-cart tree for the cart.
func (c *Client) ListSubCarts(ctx context.Context, cartID uuid.UUID) ([]SubCart, error) {
	var subCarts []SubCart
	path := fmt.Sprintf("/api/v1/carts/%s/sub-carts", cartID)
	if err := c.backend.GetJSON(ctx, path, &subCarts); err != nil {
		return nil, err
	}
	return subCarts, nil
}

type quantityPatch struct {
	SubCartItemID uuid.UUID `json:"sub_cart_item_id"`
	QuantityDelta int       `json:"quantity_delta"`
}

// UpdateItemQuantity applies a quantity delta to one sub-cart item.
func (c *Client) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, delta int) error {
	path := fmt.Sprintf("/api/v1/sub-cart-items/%s", itemID)
	body := quantityPatch{SubCartItemID: itemID, QuantityDelta: delta}
	return c.backend.PatchJSON(ctx, path, body, nil)
}

type bulkDeleteRequest struct {
	CartID uuid.UUID   `json:"cart_id"`
	IDs    []uuid.UUID `json:"ids"`
}

// DeleteSubCarts bulk-removes whole sub-carts from the cart.
func (c *Client) DeleteSubCarts(ctx context.Context, cartID uuid.UUID, ids []uuid.UUID) error {
	path := fmt.Sprintf("/api/v1/carts/%s/sub-carts/delete-multiple", cartID)
	return c.backend.PostJSON(ctx, path, bulkDeleteRequest{CartID: cartID, IDs: ids}, nil)
}

// DeleteItems bulk-removes individual sub-cart items.
func (c *Client) DeleteItems(ctx context.Context, cartID uuid.UUID, ids []uuid.UUID) error {
	path := fmt.Sprintf("/api/v1/carts/%s/items/delete-multiple", cartID)
	return c.backend.PostJSON(ctx, path, bulkDeleteRequest{CartID: cartID, IDs: ids}, nil)
}
