// Package sensor bundles the rangefinder and light sensor into a suite
// read once per tick.
package sensor

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"lightseek-sim/internal/config"
	"lightseek-sim/internal/geometry"
	"lightseek-sim/internal/telemetry"
)

// Suite reads all onboard sensors against a fixed arena. Obstacles and the
// light source do not move after construction.
type Suite struct {
	arenaW    float64
	arenaH    float64
	obstacles []geometry.Circle
	light     geometry.Vec
	scaling   float64

	noise distuv.Normal
	noisy bool
}

// NewSuite builds a sensor suite for the given world. The source seeds the
// light sensor's measurement noise; it may be shared with other consumers.
func NewSuite(cfg *config.SimulationConfig, obstacles []geometry.Circle, src rand.Source) *Suite {
	s := &Suite{
		arenaW:    cfg.Arena.Width,
		arenaH:    cfg.Arena.Height,
		obstacles: obstacles,
		light:     geometry.Vec{X: cfg.Light.X, Y: cfg.Light.Y},
		scaling:   cfg.Light.IntensityScaling,
	}
	if cfg.Light.NoiseStdDev > 0 {
		s.noise = distuv.Normal{Mu: 0, Sigma: cfg.Light.NoiseStdDev, Src: src}
		s.noisy = true
	}
	return s
}

// Read samples all four beams and the light sensor at the robot's current
// pose. Both are mounted at the robot center, beams in sensor order left,
// front, right, back.
func (s *Suite) Read(p *telemetry.Pose) telemetry.SensorFrame {
	origin := p.Position()
	frame := telemetry.SensorFrame{
		Origin:    origin,
		Heading:   p.Phi,
		Distances: geometry.Rangefinder(origin, p.Phi, s.obstacles, s.arenaW, s.arenaH),
		Intensity: geometry.Intensity(origin, s.light, s.scaling),
	}
	if s.noisy {
		frame.Intensity += s.noise.Rand()
	}
	return frame
}

// Light returns the fixed light source position.
func (s *Suite) Light() geometry.Vec {
	return s.light
}
