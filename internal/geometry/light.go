package geometry

// distSqFloor keeps the inverse-square law finite when the robot sits on
// top of the source. The success threshold terminates a run long before
// this matters in practice.
const distSqFloor = 1e-9

// Intensity returns the noise-free light intensity at pos for a point
// source at src, following the inverse-square law.
func Intensity(pos, src Vec, scaling float64) float64 {
	d := pos.Sub(src)
	d2 := d.Dot(d)
	if d2 < distSqFloor {
		d2 = distSqFloor
	}
	return scaling / d2
}
