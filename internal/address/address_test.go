package address

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/minhvodev/eatzy-gateway/pkg/backend"
	"github.com/minhvodev/eatzy-gateway/pkg/config"
	pkgerrors "github.com/minhvodev/eatzy-gateway/pkg/errors"
	"github.com/minhvodev/eatzy-gateway/pkg/types"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newAddressClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	b, err := backend.New(config.BackendConfig{BaseURL: "http://backend.test"}, backend.WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("backend client: %v", err)
	}
	client, err := NewClient(b)
	if err != nil {
		t.Fatalf("address client: %v", err)
	}
	return client
}

func TestGetAddressDecodes(t *testing.T) {
	addressID := uuid.New()
	respBody := `{"id":"` + addressID.String() + `","label":"Home","location":{"latitude":10.77,"longitude":106.69}}`

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		wantPath := fmt.Sprintf("/api/v1/addresses/%s", addressID)
		if req.URL.Path != wantPath {
			t.Fatalf("unexpected path %q", req.URL.Path)
		}
		if got := req.Header.Get("X-User-Id"); got != "user-1" {
			t.Fatalf("expected user header, got %q", got)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client := newAddressClient(t, rt)

	addr, err := client.GetAddress(context.Background(), "user-1", addressID)
	if err != nil {
		t.Fatalf("get address: %v", err)
	}
	if addr.Label != "Home" || addr.Location.Longitude != 106.69 {
		t.Fatalf("unexpected address %+v", addr)
	}
}

func TestGetAddressMissingIsNotFound(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Header:     http.Header{},
		}, nil
	})

	client := newAddressClient(t, rt)

	_, err := client.GetAddress(context.Background(), "user-1", uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

type stubGeocoder struct {
	label string
	err   error
}

func (s *stubGeocoder) ReverseGeocode(ctx context.Context, point types.LatLng) (string, error) {
	return s.label, s.err
}

func TestReverseLabel(t *testing.T) {
	point := types.LatLng{Latitude: 10.77, Longitude: 106.69}

	r := NewResolver(&stubGeocoder{label: "123 Le Loi, Q1"}, nil)
	if got := r.ReverseLabel(context.Background(), point); got != "123 Le Loi, Q1" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestReverseLabelDegradesToUnknown(t *testing.T) {
	point := types.LatLng{Latitude: 10.77, Longitude: 106.69}

	cases := []struct {
		name     string
		resolver *Resolver
		point    types.LatLng
	}{
		{"geocode error", NewResolver(&stubGeocoder{err: errors.New("quota exceeded")}, nil), point},
		{"empty label", NewResolver(&stubGeocoder{}, nil), point},
		{"nil geocoder", NewResolver(nil, nil), point},
		{"zero point", NewResolver(&stubGeocoder{label: "x"}, nil), types.LatLng{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.resolver.ReverseLabel(context.Background(), tc.point); got != UnknownLabel {
				t.Fatalf("expected %q, got %q", UnknownLabel, got)
			}
		})
	}
}
