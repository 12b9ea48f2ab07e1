package middleware

import (
	"net/http"
	"strings"

	"github.com/minhvodev/eatzy-gateway/api/responses"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
)

const userIDHeader = "X-User-Id"

// Identity extracts the acting user from the X-User-Id header. Session auth
// terminates at the edge; by the time a request reaches the gateway the
// header is the trusted identity, and a request without it is malformed.
func Identity(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(userIDHeader))
			if userID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "missing user identity"))
				return
			}

			ctx := WithUserID(r.Context(), userID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
