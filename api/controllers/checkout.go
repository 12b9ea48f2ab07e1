package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/minhvodev/eatzy-gateway/api/middleware"
	"github.com/minhvodev/eatzy-gateway/api/responses"
	"github.com/minhvodev/eatzy-gateway/api/validators"
	checkoutsvc "github.com/minhvodev/eatzy-gateway/internal/checkout"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
)

type quoteRequest struct {
	AddressID uuid.UUID `json:"address_id" validate:"required"`
}

// CheckoutQuote prices the current selection for delivery to the given
// address without creating anything.
func CheckoutQuote(orch *checkoutsvc.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if orch == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		quote, err := orch.Quote(r.Context(), userID, payload.AddressID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// Checkout converts the selection into orders. A partial failure still
// reports the counts of persisted and skipped orders in the error details.
func Checkout(orch *checkoutsvc.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if orch == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutsvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		result, err := orch.Checkout(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
