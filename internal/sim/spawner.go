package sim

import (
	"golang.org/x/exp/rand"

	"github.com/google/uuid"

	"lightseek-sim/internal/config"
	"lightseek-sim/internal/geometry"
)

// Obstacle is a spawned arena obstacle with a stable identity for writers.
type Obstacle struct {
	ID string
	geometry.Circle
}

// SpawnObstacles builds the arena obstacle set. Fixed obstacles from the
// config take precedence; otherwise Count obstacles are placed at random,
// fully inside the arena and clear of the robot start position.
func SpawnObstacles(cfg *config.SimulationConfig, rng *rand.Rand) []Obstacle {
	if len(cfg.Obstacles.Fixed) > 0 {
		obstacles := make([]Obstacle, 0, len(cfg.Obstacles.Fixed))
		for _, f := range cfg.Obstacles.Fixed {
			obstacles = append(obstacles, Obstacle{
				ID:     uuid.New().String(),
				Circle: geometry.Circle{Center: geometry.Vec{X: f.X, Y: f.Y}, R: f.Radius},
			})
		}
		return obstacles
	}

	start := geometry.Vec{X: cfg.Robot.X, Y: cfg.Robot.Y}
	obstacles := make([]Obstacle, 0, cfg.Obstacles.Count)
	for len(obstacles) < cfg.Obstacles.Count {
		r := cfg.Obstacles.MinRadius + rng.Float64()*(cfg.Obstacles.MaxRadius-cfg.Obstacles.MinRadius)
		c := geometry.Circle{
			Center: geometry.Vec{
				X: r + rng.Float64()*(cfg.Arena.Width-2*r),
				Y: r + rng.Float64()*(cfg.Arena.Height-2*r),
			},
			R: r,
		}
		// Re-roll placements that swallow the robot start.
		if start.Dist(c.Center) <= c.R {
			continue
		}
		obstacles = append(obstacles, Obstacle{ID: uuid.New().String(), Circle: c})
	}
	return obstacles
}

// circles strips obstacle identities for the rangefinder.
func circles(obstacles []Obstacle) []geometry.Circle {
	cs := make([]geometry.Circle, len(obstacles))
	for i, o := range obstacles {
		cs[i] = o.Circle
	}
	return cs
}
