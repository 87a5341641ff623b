package geometry

import "math"

// Circle is a static circular obstacle.
type Circle struct {
	Center Vec
	R      float64
}

// Beam indices, in the fixed sensor order.
const (
	BeamLeft = iota
	BeamFront
	BeamRight
	BeamBack

	BeamCount = 4
)

var beamOffsets = [BeamCount]float64{-math.Pi / 2, 0, math.Pi / 2, math.Pi}

// BeamAngle returns the world angle of beam i for the given robot heading,
// normalized into [0, 2π).
func BeamAngle(heading float64, i int) float64 {
	return NormalizeAngle(heading + beamOffsets[i])
}

// BeamOffset returns the fixed mounting angle of beam i relative to the
// robot heading.
func BeamOffset(i int) float64 {
	return beamOffsets[i]
}

// Rangefinder simulates the four fixed beams from origin at the given
// heading. Each reading is the distance to the nearest obstacle the beam
// crosses, falling back to the arena wall when no obstacle is in the way.
// The origin is assumed to lie strictly inside the arena and outside all
// obstacles; the caller validates this at setup.
func Rangefinder(origin Vec, heading float64, obstacles []Circle, width, height float64) [BeamCount]float64 {
	var dists [BeamCount]float64
	for i := range dists {
		phi := BeamAngle(heading, i)
		if d, ok := nearestHit(origin, phi, obstacles); ok {
			dists[i] = d
			continue
		}
		dists[i] = wallDistance(origin, phi, width, height)
	}
	return dists
}

func nearestHit(origin Vec, phi float64, obstacles []Circle) (float64, bool) {
	best := math.Inf(1)
	hit := false
	for _, c := range obstacles {
		if d, ok := beamCircle(origin, phi, c); ok && d < best {
			best = d
			hit = true
		}
	}
	return best, hit
}

// beamCircle returns the distance from origin to the first crossing of the
// beam at angle phi with circle c, or false when the beam misses it.
func beamCircle(origin Vec, phi float64, c Circle) (float64, bool) {
	// Obstacles behind the sensor along the beam do not occlude it.
	if Heading(phi).Dot(c.Center.Sub(origin)) <= 0 {
		return 0, false
	}

	if phi == math.Pi/2 || phi == 3*math.Pi/2 {
		// Vertical beam: tan(phi) is undefined, use the line x = origin.X.
		dx := origin.X - c.Center.X
		disc := c.R*c.R - dx*dx
		if disc < 0 {
			return 0, false
		}
		dy := math.Sqrt(disc)
		d1 := math.Abs(c.Center.Y - dy - origin.Y)
		d2 := math.Abs(c.Center.Y + dy - origin.Y)
		return math.Min(d1, d2), true
	}

	// Substitute the beam line y = x·tan(phi) + k into the circle equation,
	// giving a quadratic in the x coordinate of the crossing points.
	t := math.Tan(phi)
	k := origin.Y - origin.X*t
	a := 1 + t*t
	b := 2 * (t*k - c.Center.X - c.Center.Y*t)
	cc := k*(k-2*c.Center.Y) + c.Center.X*c.Center.X + c.Center.Y*c.Center.Y - c.R*c.R
	disc := b*b - 4*a*cc
	switch {
	case disc < 0:
		return 0, false
	case disc == 0:
		// Tangent: a single grazing point.
		x := -b / (2 * a)
		return origin.Dist(Vec{X: x, Y: x*t + k}), true
	default:
		// Secant: keep the first surface crossing.
		r := math.Sqrt(disc)
		x1 := (-b + r) / (2 * a)
		x2 := (-b - r) / (2 * a)
		d1 := origin.Dist(Vec{X: x1, Y: x1*t + k})
		d2 := origin.Dist(Vec{X: x2, Y: x2*t + k})
		return math.Min(d1, d2), true
	}
}

// wallDistance resolves where the beam leaves the arena. The wall the
// beam angle faces is tried first; if the crossing lands outside that
// wall's span the beam exits through the top or bottom instead.
func wallDistance(origin Vec, phi float64, width, height float64) float64 {
	switch phi {
	case math.Pi / 2: // straight down
		return height - origin.Y
	case 3 * math.Pi / 2: // straight up
		return origin.Y
	}

	t := math.Tan(phi)
	k := origin.Y - origin.X*t
	var hit Vec
	if phi < math.Pi/2 || phi > 3*math.Pi/2 {
		hit = Vec{X: width, Y: width*t + k}
	} else {
		hit = Vec{X: 0, Y: k}
	}
	if hit.Y > height {
		hit = Vec{X: origin.X + (height-origin.Y)/t, Y: height}
	} else if hit.Y < 0 {
		hit = Vec{X: origin.X - origin.Y/t, Y: 0}
	}
	return origin.Dist(hit)
}
