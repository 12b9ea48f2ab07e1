package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
)

type backendAPI interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	ListSubCarts(ctx context.Context, cartID uuid.UUID) ([]SubCart, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, delta int) error
	DeleteSubCarts(ctx context.Context, cartID uuid.UUID, ids []uuid.UUID) error
	DeleteItems(ctx context.Context, cartID uuid.UUID, ids []uuid.UUID) error
}

// Service owns read/mutate access to the cart hierarchy. Every mutation goes
// through the backend and is followed by a full reload: the server is the
// source of truth, the gateway never updates its view speculatively.
type Service interface {
	LoadCart(ctx context.Context, userID string) (*Cart, error)
	LoadSubCarts(ctx context.Context, userID string) ([]SubCart, error)
	UpdateItemQuantity(ctx context.Context, userID string, itemID uuid.UUID, delta int) ([]SubCart, error)
	DeleteSelection(ctx context.Context, userID string, subCartIDs, itemIDs []uuid.UUID) ([]SubCart, error)
}

type service struct {
	api  backendAPI
	logg *logger.Logger
}

// NewService builds the cart access layer.
func NewService(api backendAPI, logg *logger.Logger) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("cart backend api required")
	}
	return &service{api: api, logg: logg}, nil
}

func (s *service) LoadCart(ctx context.Context, userID string) (*Cart, error) {
	return s.api.GetCart(ctx, userID)
}

// LoadSubCarts returns the current tree, replacing any previous view. A user
// without a cart gets an empty tree, not an error.
func (s *service) LoadSubCarts(ctx context.Context, userID string) ([]SubCart, error) {
	cart, err := s.api.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return []SubCart{}, nil
	}
	subCarts, err := s.api.ListSubCarts(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if subCarts == nil {
		subCarts = []SubCart{}
	}
	return subCarts, nil
}

// UpdateItemQuantity applies the delta and returns the reloaded tree. A
// decrement that would take the quantity below 1 is silently dropped and the
// current tree is returned unchanged.
func (s *service) UpdateItemQuantity(ctx context.Context, userID string, itemID uuid.UUID, delta int) ([]SubCart, error) {
	subCarts, err := s.LoadSubCarts(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, found := findItem(subCarts, itemID)
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sub cart item not found")
	}
	if item.Quantity+delta < 1 {
		if s.logg != nil {
			s.logg.Info(s.logg.WithField(ctx, "item_id", itemID.String()), "quantity decrement below 1 ignored")
		}
		return subCarts, nil
	}

	if err := s.api.UpdateItemQuantity(ctx, itemID, delta); err != nil {
		return nil, err
	}
	return s.LoadSubCarts(ctx, userID)
}

// DeleteSelection removes whole sub-carts first, then any individually
// selected items whose parent sub-cart survived, so no delete is issued for
// an item whose parent was already removed. Returns the reloaded tree.
func (s *service) DeleteSelection(ctx context.Context, userID string, subCartIDs, itemIDs []uuid.UUID) ([]SubCart, error) {
	cart, err := s.api.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user has no cart")
	}

	subCarts, err := s.api.ListSubCarts(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	deletedParents := make(map[uuid.UUID]struct{}, len(subCartIDs))
	for _, id := range subCartIDs {
		deletedParents[id] = struct{}{}
	}

	parentOf := make(map[uuid.UUID]uuid.UUID)
	for _, sc := range subCarts {
		for _, item := range sc.Items {
			parentOf[item.ID] = sc.ID
		}
	}

	residualItems := make([]uuid.UUID, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		parent, known := parentOf[itemID]
		if !known {
			continue // already gone server-side
		}
		if _, gone := deletedParents[parent]; gone {
			continue
		}
		residualItems = append(residualItems, itemID)
	}

	if len(subCartIDs) > 0 {
		if err := s.api.DeleteSubCarts(ctx, cart.ID, subCartIDs); err != nil {
			return nil, err
		}
	}
	if len(residualItems) > 0 {
		if err := s.api.DeleteItems(ctx, cart.ID, residualItems); err != nil {
			return nil, err
		}
	}

	return s.LoadSubCarts(ctx, userID)
}

func findItem(subCarts []SubCart, itemID uuid.UUID) (SubCartItem, bool) {
	for _, sc := range subCarts {
		if item, ok := sc.ItemByID(itemID); ok {
			return item, true
		}
	}
	return SubCartItem{}, false
}
