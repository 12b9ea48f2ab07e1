package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/minhvodev/eatzy-gateway/api/middleware"
	"github.com/minhvodev/eatzy-gateway/api/responses"
	"github.com/minhvodev/eatzy-gateway/api/validators"
	cartsvc "github.com/minhvodev/eatzy-gateway/internal/cart"
	"github.com/minhvodev/eatzy-gateway/internal/selection"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
)

type toggleItemRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
}

type toggleSubCartRequest struct {
	SubCartID uuid.UUID `json:"sub_cart_id" validate:"required"`
}

// SelectionToggleItem flips one item in the session's selection and returns
// the updated tree. Sub-cart flags are re-derived, never trusted from the
// client.
func SelectionToggleItem(svc cartsvc.Service, store *selection.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload toggleItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		subCarts, err := svc.LoadSubCarts(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, found := findItem(subCarts, payload.ItemID); !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "sub cart item not found"))
			return
		}

		state := selection.Normalize(store.Get(userID), subCarts)
		state = selection.ToggleItem(state, subCarts, payload.ItemID)
		store.Put(userID, state)

		responses.WriteSuccess(w, newTreeView(state, subCarts))
	}
}

// SelectionToggleSubCart selects or deselects a whole sub-cart with its
// items.
func SelectionToggleSubCart(svc cartsvc.Service, store *selection.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload toggleSubCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		subCarts, err := svc.LoadSubCarts(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !hasSubCart(subCarts, payload.SubCartID) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "sub cart not found"))
			return
		}

		state := selection.Normalize(store.Get(userID), subCarts)
		state = selection.ToggleSubCart(state, subCarts, payload.SubCartID)
		store.Put(userID, state)

		responses.WriteSuccess(w, newTreeView(state, subCarts))
	}
}

// SelectionFetch returns the current selection as sub-cart views holding
// only the selected items.
func SelectionFetch(svc cartsvc.Service, store *selection.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		subCarts, err := svc.LoadSubCarts(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := selection.Normalize(store.Get(userID), subCarts)
		store.Put(userID, state)

		responses.WriteSuccess(w, selection.Payload(state, subCarts))
	}
}

// SelectionDelete removes everything currently selected: whole sub-carts
// first, then items whose parent sub-cart survived. Returns the reloaded
// tree.
func SelectionDelete(svc cartsvc.Service, store *selection.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		subCarts, err := svc.LoadSubCarts(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := selection.Normalize(store.Get(userID), subCarts)
		if state.Empty() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing selected to delete"))
			return
		}

		reloaded, err := svc.DeleteSelection(r.Context(), userID, state.SubCartIDs(subCarts), state.ItemIDs(subCarts))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state = selection.Normalize(state, reloaded)
		store.Put(userID, state)

		responses.WriteSuccess(w, newTreeView(state, reloaded))
	}
}

func findItem(subCarts []cartsvc.SubCart, itemID uuid.UUID) (cartsvc.SubCartItem, bool) {
	for _, sc := range subCarts {
		if item, ok := sc.ItemByID(itemID); ok {
			return item, true
		}
	}
	return cartsvc.SubCartItem{}, false
}

func hasSubCart(subCarts []cartsvc.SubCart, subCartID uuid.UUID) bool {
	for _, sc := range subCarts {
		if sc.ID == subCartID {
			return true
		}
	}
	return false
}
