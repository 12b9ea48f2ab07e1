package shipping

import "github.com/shopspring/decimal"

// DistanceUnknown is rendered when no route could be computed for a
// sub-cart. The fee is zero in that case; the restaurant absorbs the trip.
const DistanceUnknown = "unknown"

const freeDeliveryKm = 1

var metersPerKm = decimal.NewFromInt(1000)

// QuantizeKm converts a routed distance in meters to kilometers rounded to
// one decimal, half away from zero. All downstream fee math runs on the
// quantized value, never the raw meters: 940 m quantizes to 0.9 km and rides
// free, 960 m quantizes to 1.0 km and is billed.
func QuantizeKm(distanceMeters int64) decimal.Decimal {
	return decimal.NewFromInt(distanceMeters).Div(metersPerKm).Round(1)
}

// Fee prices the quantized distance at the restaurant's per-kilometer rate.
// Distances under one kilometer ship free. The result is whole VND.
func Fee(distanceKm decimal.Decimal, ratePerKm int64) int64 {
	if distanceKm.LessThan(decimal.NewFromInt(freeDeliveryKm)) {
		return 0
	}
	return distanceKm.Mul(decimal.NewFromInt(ratePerKm)).Round(0).IntPart()
}
