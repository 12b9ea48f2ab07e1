package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records the gateway's checkout-path counters.
type CheckoutMetrics struct {
	quoteDuration   *prometheus.HistogramVec
	ordersCreated   *prometheus.CounterVec
	orderFailures   *prometheus.CounterVec
	paymentSessions *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shipping_quote_duration_seconds",
		Help:    "Duration of shipping fee quotes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_created",
		Help: "Orders created per payment method.",
	}, []string{"payment_method"})
	orderFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_order_failures",
		Help: "Order creation failures per payment method.",
	}, []string{"payment_method"})
	paymentSessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_payment_sessions",
		Help: "Wallet payment sessions per outcome.",
	}, []string{"outcome"})
	reg.MustRegister(quoteDuration, ordersCreated, orderFailures, paymentSessions)
	return &CheckoutMetrics{
		quoteDuration:   quoteDuration,
		ordersCreated:   ordersCreated,
		orderFailures:   orderFailures,
		paymentSessions: paymentSessions,
	}
}

// ObserveQuoteDuration records how long a fee quote took.
func (c *CheckoutMetrics) ObserveQuoteDuration(outcome string, duration time.Duration) {
	if c == nil || c.quoteDuration == nil {
		return
	}
	c.quoteDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncOrderCreated increments the created-orders counter.
func (c *CheckoutMetrics) IncOrderCreated(method string) {
	if c == nil || c.ordersCreated == nil {
		return
	}
	c.ordersCreated.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncOrderFailure increments the failed-orders counter.
func (c *CheckoutMetrics) IncOrderFailure(method string) {
	if c == nil || c.orderFailures == nil {
		return
	}
	c.orderFailures.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncPaymentSession increments the wallet session counter for the outcome.
func (c *CheckoutMetrics) IncPaymentSession(outcome string) {
	if c == nil || c.paymentSessions == nil {
		return
	}
	c.paymentSessions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
