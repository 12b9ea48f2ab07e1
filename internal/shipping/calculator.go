package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/minhvodev/eatzy-gateway/internal/cart"
	"github.com/minhvodev/eatzy-gateway/internal/catalog"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
	"github.com/minhvodev/eatzy-gateway/pkg/maps"
	"github.com/minhvodev/eatzy-gateway/pkg/metrics"
	"github.com/minhvodev/eatzy-gateway/pkg/redis"
	"github.com/minhvodev/eatzy-gateway/pkg/types"
)

// Road distances between a restaurant and a delivery point do not move;
// the short TTL only bounds staleness against provider data updates.
const routeCacheTTL = 10 * time.Minute

type restaurantLoader interface {
	GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*catalog.Restaurant, error)
}

type routeFinder interface {
	Route(ctx context.Context, origin, destination types.LatLng) (*maps.RouteSummary, error)
}

// routeCache is the slice of the redis client the calculator uses.
type routeCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	RouteKey(origin, destination string) string
}

// AnnotatedSubCart is a sub-cart decorated with its delivery quote.
// DistanceKm is the quantized distance as text, or "unknown" when routing
// failed for this sub-cart.
type AnnotatedSubCart struct {
	cart.SubCart
	ShippingFee int64  `json:"shipping_fee"`
	DistanceKm  string `json:"distance_km"`
}

// Calculator quotes shipping per sub-cart against a single delivery point.
type Calculator struct {
	restaurants restaurantLoader
	routes      routeFinder
	cache       routeCache
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
}

// NewCalculator wires the catalog, routing, and route-cache dependencies.
// A nil cache disables route caching.
func NewCalculator(restaurants restaurantLoader, routes routeFinder, cache routeCache, m *metrics.CheckoutMetrics, logg *logger.Logger) *Calculator {
	return &Calculator{restaurants: restaurants, routes: routes, cache: cache, metrics: m, logg: logg}
}

// Quote annotates every sub-cart with a shipping fee for delivery to the
// given point. Sub-carts are quoted concurrently and independently: a
// restaurant lookup or routing failure zeroes that sub-cart's fee and marks
// its distance unknown without touching its siblings. The per-sub-cart
// causes are combined into a single degradation warning.
func (c *Calculator) Quote(ctx context.Context, destination types.LatLng, subCarts []cart.SubCart) []AnnotatedSubCart {
	started := time.Now()
	annotated := make([]AnnotatedSubCart, len(subCarts))
	causes := make([]error, len(subCarts))

	var wg sync.WaitGroup
	for i, sc := range subCarts {
		wg.Add(1)
		go func(i int, sc cart.SubCart) {
			defer wg.Done()
			annotated[i], causes[i] = c.quoteOne(ctx, destination, sc)
		}(i, sc)
	}
	wg.Wait()

	outcome := "ok"
	for _, a := range annotated {
		if a.DistanceKm == DistanceUnknown {
			outcome = "partial"
			break
		}
	}
	c.metrics.ObserveQuoteDuration(outcome, time.Since(started))

	if combined := multierr.Combine(causes...); combined != nil && c.logg != nil {
		ctx = c.logg.WithField(ctx, "error", combined.Error())
		c.logg.Warn(ctx, "shipping quote degraded for some sub-carts")
	}
	return annotated
}

// quoteOne prices one sub-cart. A returned error means the quote fell back
// to the unknown sentinel; the caller aggregates the causes. A provider
// response with no route is data, not an error.
func (c *Calculator) quoteOne(ctx context.Context, destination types.LatLng, sc cart.SubCart) (AnnotatedSubCart, error) {
	unknown := AnnotatedSubCart{SubCart: sc, ShippingFee: 0, DistanceKm: DistanceUnknown}

	restaurant, err := c.restaurants.GetRestaurant(ctx, sc.RestaurantID)
	if err != nil {
		return unknown, fmt.Errorf("restaurant lookup for sub-cart %s: %w", sc.ID, err)
	}

	summary, err := c.route(ctx, restaurant.Address, destination)
	if err != nil {
		return unknown, fmt.Errorf("routing for sub-cart %s: %w", sc.ID, err)
	}
	if summary == nil {
		return unknown, nil
	}

	km := QuantizeKm(summary.DistanceMeters)
	return AnnotatedSubCart{
		SubCart:     sc,
		ShippingFee: Fee(km, restaurant.ShippingFeePerKm),
		DistanceKm:  km.StringFixed(1),
	}, nil
}

// route resolves the road distance, serving repeat origin/destination pairs
// from the cache. Cache trouble degrades to a provider call; only found
// routes are cached.
func (c *Calculator) route(ctx context.Context, origin, destination types.LatLng) (*maps.RouteSummary, error) {
	if c.cache == nil {
		return c.routes.Route(ctx, origin, destination)
	}

	key := c.cache.RouteKey(origin.String(), destination.String())
	if cached, err := c.cache.Get(ctx, key); err == nil {
		var summary maps.RouteSummary
		if unmarshalErr := json.Unmarshal([]byte(cached), &summary); unmarshalErr == nil {
			return &summary, nil
		}
	} else if !errors.Is(err, redis.Nil) && c.logg != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "route cache read failed, falling back to provider")
	}

	summary, err := c.routes.Route(ctx, origin, destination)
	if err != nil || summary == nil {
		return summary, err
	}

	if payload, marshalErr := json.Marshal(summary); marshalErr == nil {
		if setErr := c.cache.Set(ctx, key, payload, routeCacheTTL); setErr != nil && c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", setErr.Error()), "route cache write failed")
		}
	}
	return summary, nil
}
