package types

import "fmt"

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports whether the pair still holds the zero value. The platform
// serves no restaurants at null island, so the zero pair doubles as "unset".
func (p LatLng) IsZero() bool {
	return p.Latitude == 0 && p.Longitude == 0
}

// String renders "lat,lng" the way the mapping provider expects it.
func (p LatLng) String() string {
	return fmt.Sprintf("%f,%f", p.Latitude, p.Longitude)
}
