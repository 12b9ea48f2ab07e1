package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minhvodev/eatzy-gateway/api/controllers"
	"github.com/minhvodev/eatzy-gateway/api/middleware"
	cartsvc "github.com/minhvodev/eatzy-gateway/internal/cart"
	checkoutsvc "github.com/minhvodev/eatzy-gateway/internal/checkout"
	"github.com/minhvodev/eatzy-gateway/internal/selection"
	"github.com/minhvodev/eatzy-gateway/pkg/backend"
	"github.com/minhvodev/eatzy-gateway/pkg/config"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
	"github.com/minhvodev/eatzy-gateway/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	backendClient *backend.Client,
	redisClient *redis.Client,
	cartService cartsvc.Service,
	selectionStore *selection.Store,
	checkoutOrch *checkoutsvc.Orchestrator,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.CORS(),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, backendClient, redisClient))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(logg))
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, logg))
		}

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, selectionStore, logg))
			r.Patch("/items/{itemID}", controllers.CartItemQuantity(cartService, selectionStore, logg))

			r.Route("/selection", func(r chi.Router) {
				r.Get("/", controllers.SelectionFetch(cartService, selectionStore, logg))
				r.Post("/item", controllers.SelectionToggleItem(cartService, selectionStore, logg))
				r.Post("/sub-cart", controllers.SelectionToggleSubCart(cartService, selectionStore, logg))
				r.Post("/delete", controllers.SelectionDelete(cartService, selectionStore, logg))
			})
		})

		r.Post("/checkout/quote", controllers.CheckoutQuote(checkoutOrch, logg))
		r.Post("/checkout", controllers.Checkout(checkoutOrch, logg))
	})

	return r
}
