package swarm

import "math"

// boundaryFunc reconciles one coordinate with its box bounds right after
// a position update and before fitness evaluation. It returns the new
// position and velocity for that dimension.
type boundaryFunc func(pos, vel, lo, hi float64) (float64, float64)

// clampBounds truncates to the violated bound and kills the velocity so
// the particle does not keep pushing into the wall.
func clampBounds(pos, vel, lo, hi float64) (float64, float64) {
	if pos < lo {
		return lo, 0
	}
	if pos > hi {
		return hi, 0
	}
	return pos, vel
}

// periodicBounds wraps the overshoot around to the opposite side of the
// box, modulo the range. Velocity is zeroed on contact, matching clamp.
func periodicBounds(pos, vel, lo, hi float64) (float64, float64) {
	span := hi - lo
	if pos < lo {
		return hi - math.Mod(lo-pos, span), 0
	}
	if pos > hi {
		return lo + math.Mod(pos-hi, span), 0
	}
	return pos, vel
}
