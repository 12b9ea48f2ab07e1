package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/minhvodev/eatzy-gateway/api/middleware"
	"github.com/minhvodev/eatzy-gateway/api/responses"
	"github.com/minhvodev/eatzy-gateway/api/validators"
	cartsvc "github.com/minhvodev/eatzy-gateway/internal/cart"
	"github.com/minhvodev/eatzy-gateway/internal/selection"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
)

// CartFetch returns the user's sub-cart tree merged with the session's
// selection flags. A user without a cart gets an empty tree.
func CartFetch(svc cartsvc.Service, store *selection.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		subCarts, err := svc.LoadSubCarts(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := selection.Normalize(store.Get(userID), subCarts)
		store.Put(userID, state)

		responses.WriteSuccess(w, newTreeView(state, subCarts))
	}
}

type quantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CartItemQuantity applies a quantity delta to one line and returns the
// reloaded tree. A decrement that would drop the quantity below 1 leaves the
// tree untouched.
func CartItemQuantity(svc cartsvc.Service, store *selection.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		var payload quantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		subCarts, err := svc.UpdateItemQuantity(r.Context(), userID, itemID, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := selection.Normalize(store.Get(userID), subCarts)
		store.Put(userID, state)

		responses.WriteSuccess(w, newTreeView(state, subCarts))
	}
}
