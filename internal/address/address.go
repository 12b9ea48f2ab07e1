package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/pkg/backend"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/logger"
	"github.com/minhvodev/eatzy-gateway/pkg/types"
)

// UnknownLabel is shown when reverse geocoding cannot name a coordinate.
const UnknownLabel = "unknown"

// Address is a delivery address owned by the user's profile. The gateway
// only reads addresses; creation and editing live in the core backend.
type Address struct {
	ID       uuid.UUID    `json:"id"`
	Label    string       `json:"label"`
	Location types.LatLng `json:"location"`
}

// Client reads addresses from the core backend.
type Client struct {
	backend *backend.Client
}

// NewClient wraps the shared backend caller.
func NewClient(b *backend.Client) (*Client, error) {
	if b == nil {
		return nil, fmt.Errorf("backend client required")
	}
	return &Client{backend: b}, nil
}

// GetAddress fetches one of the user's addresses by id.
func (c *Client) GetAddress(ctx context.Context, userID string, addressID uuid.UUID) (*Address, error) {
	var addr Address
	path := fmt.Sprintf("/api/v1/addresses/%s", addressID)
	if err := c.backend.GetJSON(ctx, path, &addr, backend.AsUser(userID)); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found").
				WithDetails(map[string]any{"address_id": addressID.String()})
		}
		return nil, err
	}
	return &addr, nil
}

type geocoder interface {
	ReverseGeocode(ctx context.Context, point types.LatLng) (string, error)
}

// Resolver turns coordinates into human-readable labels, degrading to
// "unknown" rather than failing the caller.
type Resolver struct {
	geocoder geocoder
	logg     *logger.Logger
}

// NewResolver wires the mapping provider.
func NewResolver(g geocoder, logg *logger.Logger) *Resolver {
	return &Resolver{geocoder: g, logg: logg}
}

// ReverseLabel names the coordinate. Geocoding trouble is logged and
// swallowed; the caller always gets a usable label.
func (r *Resolver) ReverseLabel(ctx context.Context, point types.LatLng) string {
	if r.geocoder == nil || point.IsZero() {
		return UnknownLabel
	}
	label, err := r.geocoder.ReverseGeocode(ctx, point)
	if err != nil {
		if r.logg != nil {
			r.logg.Warn(r.logg.WithField(ctx, "error", err.Error()), "reverse geocode failed")
		}
		return UnknownLabel
	}
	if label == "" {
		return UnknownLabel
	}
	return label
}
