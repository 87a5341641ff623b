package sensor

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"lightseek-sim/internal/config"
	"lightseek-sim/internal/geometry"
	"lightseek-sim/internal/telemetry"
)

func testConfig() *config.SimulationConfig {
	return &config.SimulationConfig{
		Arena: config.Arena{Width: 700, Height: 700},
		Light: config.Light{X: 350, Y: 350, IntensityScaling: 1e5},
	}
}

func TestSuiteRead_EmptyArena(t *testing.T) {
	cfg := testConfig()
	s := NewSuite(cfg, nil, rand.NewSource(1))

	// Heading along +x from the arena center line.
	p := &telemetry.Pose{X: 100, Y: 350, Phi: 0, HalfLength: 15, HalfBreadth: 6}
	frame := s.Read(p)

	if frame.Origin.X != 100 || frame.Origin.Y != 350 {
		t.Fatalf("beam origin = %+v, want robot center (100,350)", frame.Origin)
	}
	want := [4]float64{350, 600, 350, 100}
	for i, d := range frame.Distances {
		if math.Abs(d-want[i]) > 1e-9 {
			t.Errorf("beam %d = %v, want %v", i, d, want[i])
		}
	}
	wantI := 1e5 / (250.0 * 250.0)
	if math.Abs(frame.Intensity-wantI) > 1e-9 {
		t.Errorf("intensity = %v, want %v", frame.Intensity, wantI)
	}
}

func TestSuiteRead_ObstacleInFront(t *testing.T) {
	cfg := testConfig()
	obs := []geometry.Circle{{Center: geometry.Vec{X: 415, Y: 350}, R: 50}}
	s := NewSuite(cfg, obs, rand.NewSource(1))

	p := &telemetry.Pose{X: 100, Y: 350, Phi: 0, HalfLength: 15, HalfBreadth: 6}
	frame := s.Read(p)

	// Robot center at x=100, obstacle surface at x=365.
	if math.Abs(frame.Distances[geometry.BeamFront]-265) > 1e-9 {
		t.Errorf("front beam = %v, want 265", frame.Distances[geometry.BeamFront])
	}
}

func TestSuiteRead_NoiseDeterministicAndZeroMean(t *testing.T) {
	cfg := testConfig()
	cfg.Light.NoiseStdDev = 5

	p := &telemetry.Pose{X: 100, Y: 350, Phi: 0, HalfLength: 15, HalfBreadth: 6}

	a := NewSuite(cfg, nil, rand.NewSource(42)).Read(p)
	b := NewSuite(cfg, nil, rand.NewSource(42)).Read(p)
	if a.Intensity != b.Intensity {
		t.Errorf("same seed produced different readings: %v vs %v", a.Intensity, b.Intensity)
	}

	clean := 1e5 / (250.0 * 250.0)
	s := NewSuite(cfg, nil, rand.NewSource(42))
	var sum float64
	const n = 2000
	for i := 0; i < n; i++ {
		sum += s.Read(p).Intensity - clean
	}
	if mean := sum / n; math.Abs(mean) > 1 {
		t.Errorf("noise mean = %v, expected near zero", mean)
	}
}
