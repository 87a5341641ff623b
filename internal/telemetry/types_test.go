package telemetry

import (
	"math"
	"testing"

	"lightseek-sim/internal/geometry"
)

func TestMinIndexTieBreak(t *testing.T) {
	// Equal left and front minima must resolve to the left beam.
	f := SensorFrame{Distances: [4]float64{12, 12, 80, 80}}
	if got := f.MinIndex(); got != geometry.BeamLeft {
		t.Errorf("MinIndex=%d, want %d (left)", got, geometry.BeamLeft)
	}

	f = SensorFrame{Distances: [4]float64{50, 30, 30, 90}}
	if got := f.MinIndex(); got != geometry.BeamFront {
		t.Errorf("MinIndex=%d, want %d (front)", got, geometry.BeamFront)
	}
}

func TestSensorFrameEndpoint(t *testing.T) {
	f := SensorFrame{
		Origin:    geometry.Vec{X: 100, Y: 200},
		Heading:   0,
		Distances: [4]float64{10, 20, 30, 40},
	}
	// Front beam at heading 0 extends along +x.
	p := f.Endpoint(geometry.BeamFront)
	if math.Abs(p.X-120) > 1e-9 || math.Abs(p.Y-200) > 1e-9 {
		t.Errorf("front endpoint=(%f,%f), want (120,200)", p.X, p.Y)
	}
	// Left beam at heading 0 points straight up (y shrinks).
	p = f.Endpoint(geometry.BeamLeft)
	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-190) > 1e-9 {
		t.Errorf("left endpoint=(%f,%f), want (100,190)", p.X, p.Y)
	}
}

func TestPoseFootprint(t *testing.T) {
	p := &Pose{X: 100, Y: 100, Phi: 0, HalfLength: 15, HalfBreadth: 6}

	if tip := p.Tip(); math.Abs(tip.X-115) > 1e-9 || math.Abs(tip.Y-100) > 1e-9 {
		t.Errorf("tip=(%f,%f), want (115,100)", tip.X, tip.Y)
	}
	if r := p.Rear(); math.Abs(r.X-85) > 1e-9 || math.Abs(r.Y-100) > 1e-9 {
		t.Errorf("rear=(%f,%f), want (85,100)", r.X, r.Y)
	}
	if rl := p.RearLeft(); math.Abs(rl.X-85) > 1e-9 || math.Abs(rl.Y-106) > 1e-9 {
		t.Errorf("rear-left=(%f,%f), want (85,106)", rl.X, rl.Y)
	}
	if rr := p.RearRight(); math.Abs(rr.X-85) > 1e-9 || math.Abs(rr.Y-94) > 1e-9 {
		t.Errorf("rear-right=(%f,%f), want (85,94)", rr.X, rr.Y)
	}
}
