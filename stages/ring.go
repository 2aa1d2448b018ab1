package stages

import (
	"fmt"
	"math"
)

// RingSelector resolves a press on the reef control to a coral level. The
// control is a hub surrounded by concentric rings; only the distance from the
// center matters.
type RingSelector struct {
	// Thresholds are the outer radii of ring 0 (the hub) through ring 3, in
	// increasing order.
	Thresholds [4]float64
}

// DefaultRingSelector sizes the rings for a control of the given width, in
// the same proportions as the on-screen hexagons.
func DefaultRingSelector(width float64) RingSelector {
	hex := width / 12
	return RingSelector{Thresholds: [4]float64{0.4 * hex, 1.8 * hex, 3.0 * hex, 4.2 * hex}}
}

func (s RingSelector) Validate() error {
	prev := 0.0
	for i, t := range s.Thresholds {
		if !(t > prev) {
			return fmt.Errorf("ring %d threshold %v must be greater than %v", i, t, prev)
		}
		prev = t
	}
	return nil
}

// Ring returns the ring index (0 = hub) for a press at (dx, dy) from the
// center, or false when the press lands outside the outermost ring.
func (s RingSelector) Ring(dx, dy float64) (int, bool) {
	r := math.Hypot(dx, dy)
	for i, t := range s.Thresholds {
		if r < t {
			return i, true
		}
	}
	return 0, false
}

// Resolve maps a press to a coral level target: ring 0 is L1, ring 3 is L4.
func (s RingSelector) Resolve(dx, dy float64) (Target, error) {
	ring, ok := s.Ring(dx, dy)
	if !ok {
		return 0, ErrNoTarget
	}
	return CoralL1 + Target(ring), nil
}
