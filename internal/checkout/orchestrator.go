package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/minhvodev/eatzy-gateway/internal/address"
	"github.com/minhvodev/eatzy-gateway/internal/cart"
	"github.com/minhvodev/eatzy-gateway/internal/orders"
	"github.com/minhvodev/eatzy-gateway/internal/selection"
	"github.com/minhvodev/eatzy-gateway/internal/shipping"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
	"github.com/minhvodev/eatzy-gateway/pkg/metrics"
	"github.com/minhvodev/eatzy-gateway/pkg/momo"
	"github.com/minhvodev/eatzy-gateway/pkg/types"
)

type cartLoader interface {
	LoadSubCarts(ctx context.Context, userID string) ([]cart.SubCart, error)
}

type selectionStore interface {
	Get(userID string) selection.State
	Put(userID string, s selection.State)
	Clear(userID string)
}

type feeQuoter interface {
	Quote(ctx context.Context, destination types.LatLng, subCarts []cart.SubCart) []shipping.AnnotatedSubCart
}

type addressReader interface {
	GetAddress(ctx context.Context, userID string, addressID uuid.UUID) (*address.Address, error)
}

type labelResolver interface {
	ReverseLabel(ctx context.Context, point types.LatLng) string
}

type orderCreator interface {
	CreateOrder(ctx context.Context, userID string, req orders.CreateOrderRequest) (uuid.UUID, error)
}

type wallet interface {
	CreateSession(ctx context.Context, amount int64, orderID string) (*momo.Session, error)
}

// Orchestrator drives the checkout flow: precondition checks, per-sub-cart
// shipping quotes, the sequential order loop, and for wallet payments one
// session for the whole checkout.
type Orchestrator struct {
	carts      cartLoader
	selections selectionStore
	quoter     feeQuoter
	addresses  addressReader
	labels     labelResolver
	orders     orderCreator
	wallet     wallet
	metrics    *metrics.CheckoutMetrics
	logg       *logger.Logger
}

// NewOrchestrator wires the checkout dependencies.
func NewOrchestrator(
	carts cartLoader,
	selections selectionStore,
	quoter feeQuoter,
	addresses addressReader,
	labels labelResolver,
	orderClient orderCreator,
	walletClient wallet,
	m *metrics.CheckoutMetrics,
	logg *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		carts:      carts,
		selections: selections,
		quoter:     quoter,
		addresses:  addresses,
		labels:     labels,
		orders:     orderClient,
		wallet:     walletClient,
		metrics:    m,
		logg:       logg,
	}
}

// QuotedSubCart is one selected sub-cart priced for delivery. Items lists
// only the selected lines; TotalPrice and the bill stay at the full sub-cart
// total regardless of partial selection.
type QuotedSubCart struct {
	ID             uuid.UUID          `json:"id"`
	RestaurantID   uuid.UUID          `json:"restaurant"`
	RestaurantName string             `json:"restaurant_name"`
	TotalPrice     int64              `json:"total_price"`
	Items          []cart.SubCartItem `json:"sub_cart_items"`
	ShippingFee    int64              `json:"shipping_fee"`
	DistanceKm     string             `json:"distance_km"`
}

// Bill is what the order for this sub-cart will charge.
func (q QuotedSubCart) Bill() int64 {
	return q.TotalPrice + q.ShippingFee
}

// Quote is the priced checkout preview for the current selection.
type Quote struct {
	AddressID    uuid.UUID       `json:"address_id"`
	AddressLabel string          `json:"address_label"`
	SubCarts     []QuotedSubCart `json:"sub_carts"`
	Total        int64           `json:"total"`
}

// Quote prices the user's current selection for delivery to the given
// address. The selection is normalized against a fresh tree first, so
// server-side deletions since the last sync never produce phantom orders.
func (o *Orchestrator) Quote(ctx context.Context, userID string, addressID uuid.UUID) (*Quote, error) {
	if addressID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}

	addr, err := o.addresses.GetAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	quoted, err := o.quoteSelection(ctx, userID, addr.Location)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, q := range quoted {
		total += q.Bill()
	}

	label := addr.Label
	if label == "" && o.labels != nil {
		label = o.labels.ReverseLabel(ctx, addr.Location)
	}

	return &Quote{
		AddressID:    addr.ID,
		AddressLabel: label,
		SubCarts:     quoted,
		Total:        total,
	}, nil
}

func (o *Orchestrator) quoteSelection(ctx context.Context, userID string, destination types.LatLng) ([]QuotedSubCart, error) {
	subCarts, err := o.carts.LoadSubCarts(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := selection.Normalize(o.selections.Get(userID), subCarts)
	o.selections.Put(userID, state)

	views := selection.Payload(state, subCarts)
	if len(views) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing selected for checkout")
	}

	annotated := o.quoter.Quote(ctx, destination, viewsToSubCarts(views))

	quoted := make([]QuotedSubCart, len(annotated))
	for i, a := range annotated {
		quoted[i] = QuotedSubCart{
			ID:             a.ID,
			RestaurantID:   a.RestaurantID,
			RestaurantName: a.RestaurantName,
			TotalPrice:     a.TotalPrice,
			Items:          a.Items,
			ShippingFee:    a.ShippingFee,
			DistanceKm:     a.DistanceKm,
		}
	}
	return quoted, nil
}

// viewsToSubCarts rebuilds the sub-cart shape the fee calculator consumes.
// The views carry the full sub-cart totals already, so nothing is lost.
func viewsToSubCarts(views []selection.SubCartView) []cart.SubCart {
	subCarts := make([]cart.SubCart, len(views))
	for i, v := range views {
		subCarts[i] = cart.SubCart{
			ID:             v.ID,
			RestaurantID:   v.RestaurantID,
			RestaurantName: v.RestaurantName,
			TotalPrice:     v.TotalPrice,
			Items:          v.Items,
		}
	}
	return subCarts
}

// Input is a checkout submission.
type Input struct {
	AddressID     uuid.UUID            `json:"address_id" validate:"required"`
	PaymentMethod orders.PaymentMethod `json:"payment_method" validate:"required"`
}

// CreatedOrder records one order the loop persisted.
type CreatedOrder struct {
	OrderID    uuid.UUID `json:"order_id"`
	SubCartID  uuid.UUID `json:"sub_cart_id"`
	TotalPrice int64     `json:"total_price"`
}

// Result is the checkout outcome. On a partial failure Orders holds what was
// persisted before the failing step and Skipped the sub-carts never
// attempted; the accompanying error carries the causes.
type Result struct {
	Orders  []CreatedOrder `json:"orders"`
	Skipped []uuid.UUID    `json:"skipped_sub_carts,omitempty"`
	PayURL  string         `json:"pay_url,omitempty"`
}

// Checkout converts every selected sub-cart into an order, one at a time in
// tree order. The loop is not transactional: a failure at step N leaves
// orders 1..N-1 standing and never attempts N+1 onward. For wallet payments
// exactly one session is opened after the loop, for the cart-wide total,
// keyed by the last created order.
func (o *Orchestrator) Checkout(ctx context.Context, userID string, input Input) (*Result, error) {
	if !input.PaymentMethod.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method").
			WithDetails(map[string]any{"payment_method": string(input.PaymentMethod)})
	}
	if input.AddressID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}

	addr, err := o.addresses.GetAddress(ctx, userID, input.AddressID)
	if err != nil {
		return nil, err
	}

	quoted, err := o.quoteSelection(ctx, userID, addr.Location)
	if err != nil {
		return nil, err
	}

	result := &Result{Orders: make([]CreatedOrder, 0, len(quoted))}
	method := string(input.PaymentMethod)

	for i, q := range quoted {
		req := orders.CreateOrderRequest{
			SubCartID:     q.ID,
			PaymentMethod: input.PaymentMethod,
			ShipFee:       q.ShippingFee,
			TotalPrice:    q.Bill(),
			ShipAddressID: addr.ID,
		}
		orderID, err := o.orders.CreateOrder(ctx, userID, req)
		if err != nil {
			o.metrics.IncOrderFailure(method)
			for _, rest := range quoted[i:] {
				result.Skipped = append(result.Skipped, rest.ID)
			}
			cause := fmt.Errorf("sub-cart %s: %w", q.ID, err)
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, cause, "checkout stopped after order failure").
				WithDetails(map[string]any{
					"orders_created":    len(result.Orders),
					"sub_carts_skipped": len(result.Skipped),
				})
		}
		o.metrics.IncOrderCreated(method)
		result.Orders = append(result.Orders, CreatedOrder{
			OrderID:    orderID,
			SubCartID:  q.ID,
			TotalPrice: req.TotalPrice,
		})
	}

	// Every selected sub-cart is now consumed server-side.
	o.selections.Clear(userID)

	if input.PaymentMethod != orders.PaymentMomo {
		return result, nil
	}

	var amount int64
	for _, created := range result.Orders {
		amount += created.TotalPrice
	}
	lastOrder := result.Orders[len(result.Orders)-1]

	session, err := o.wallet.CreateSession(ctx, amount, lastOrder.OrderID.String())
	if err != nil {
		o.metrics.IncPaymentSession("failed")
		return result, err
	}
	if session.PayURL == "" {
		o.metrics.IncPaymentSession("missing_pay_url")
		// The orders exist; only the payment hand-off is broken.
		return result, pkgerrors.New(pkgerrors.CodePayment, "payment session returned no pay url")
	}
	o.metrics.IncPaymentSession("ok")
	result.PayURL = session.PayURL
	return result, nil
}
