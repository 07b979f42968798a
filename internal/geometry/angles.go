package geometry

import "math"

// NormalizeAngle wraps an angle in radians into (-π, π].
func NormalizeAngle(angle float64) float64 {
	r := math.Mod(angle, 2*math.Pi)
	if r > math.Pi {
		return r - 2*math.Pi
	}
	if r <= -math.Pi {
		return r + 2*math.Pi
	}
	return r
}

func ToRadians(deg float64) float64 { return deg * math.Pi / 180 }
func ToDegrees(rad float64) float64 { return rad * 180 / math.Pi }
