package domain

import "fmt"

// Layer identifies one of the fixed hotel-data facets searched per request.
type Layer string

const (
	LayerBooking   Layer = "booking"
	LayerFinancial Layer = "financial"
	LayerGuest     Layer = "guest"
	LayerStaff     Layer = "staff"
	LayerPolicies  Layer = "policies"
)

// Layers returns all layers in their canonical search order.
func Layers() []Layer {
	return []Layer{LayerBooking, LayerFinancial, LayerGuest, LayerStaff, LayerPolicies}
}

// ParseLayer converts a transport-level layer name into a Layer.
func ParseLayer(s string) (Layer, error) {
	switch Layer(s) {
	case LayerBooking, LayerFinancial, LayerGuest, LayerStaff, LayerPolicies:
		return Layer(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLayer, s)
}

func (l Layer) String() string { return string(l) }
