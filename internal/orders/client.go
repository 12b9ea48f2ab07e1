package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/pkg/backend"
)

// PaymentMethod selects how the whole checkout is paid. One checkout uses a
// single method across all of its orders.
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentMomo PaymentMethod = "MOMO"
)

// Valid reports whether the method is one the gateway accepts.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentMomo
}

// CreateOrderRequest is the per-sub-cart order submission. TotalPrice is the
// sub-cart's full total plus its shipping fee, independent of how many items
// inside the sub-cart were individually selected.
type CreateOrderRequest struct {
	SubCartID     uuid.UUID     `json:"sub_cart_id"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	ShipFee       int64         `json:"ship_fee"`
	TotalPrice    int64         `json:"total_price"`
	ShipAddressID uuid.UUID     `json:"ship_address_id"`
}

type createOrderResponse struct {
	OrderID uuid.UUID `json:"order_id"`
}

// Client submits orders to the core backend.
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

// CreateOrder converts one sub-cart into an order and returns the new order
// id. The backend consumes the sub-cart as a side effect.
func (c *Client) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (uuid.UUID, error) {
	var resp createOrderResponse
	if err := c.backend.PostJSON(ctx, "/api/v1/orders", req, &resp, backend.AsUser(userID)); err != nil {
		return uuid.Nil, err
	}
	return resp.OrderID, nil
}
