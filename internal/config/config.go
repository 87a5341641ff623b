// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Arena defines the bounded rectangular world.
type Arena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Robot defines the robot's start pose, body, and motion defaults.
type Robot struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Phi         float64 `yaml:"phi"`
	HalfLength  float64 `yaml:"half_length"`
	HalfBreadth float64 `yaml:"half_breadth"`
	Speed       float64 `yaml:"speed"`
	TurnRate    float64 `yaml:"turn_rate"`
}

// Light defines the stationary source and the intensity model.
type Light struct {
	X                float64 `yaml:"x"`
	Y                float64 `yaml:"y"`
	IntensityScaling float64 `yaml:"intensity_scaling"`
	NoiseStdDev      float64 `yaml:"noise_std_dev"`
	SuccessThreshold float64 `yaml:"success_threshold"`
}

// FixedObstacle pins one obstacle instead of random placement.
type FixedObstacle struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// Obstacles defines the obstacle field: either a random count within a
// radius range, or an explicit fixed list.
type Obstacles struct {
	Count     int             `yaml:"count"`
	MinRadius float64         `yaml:"min_radius"`
	MaxRadius float64         `yaml:"max_radius"`
	Fixed     []FixedObstacle `yaml:"fixed,omitempty"`
}

// Behavior holds the controller tunables. The durations are in the same
// abstract time units the integrator uses; they are deliberately plain
// numbers with no derived physical meaning.
type Behavior struct {
	ProximityThreshold  float64 `yaml:"proximity_threshold"`
	TumbleAngleScale    float64 `yaml:"tumble_angle_scale"`
	AvoidStepDuration   float64 `yaml:"avoid_step_duration"`
	AvoidTurnDuration   float64 `yaml:"avoid_turn_duration"`
	ForwardStepDuration float64 `yaml:"forward_step_duration"`
}

// SimulationConfig is the root configuration for a run.
type SimulationConfig struct {
	Arena     Arena     `yaml:"arena"`
	Robot     Robot     `yaml:"robot"`
	Light     Light     `yaml:"light"`
	Obstacles Obstacles `yaml:"obstacles"`
	Behavior  Behavior  `yaml:"behavior"`
	Seed      int64     `yaml:"seed"`
}

// Load loads YAML config, validates it against a CUE schema, then applies
// the semantic checks the schema cannot express.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the simulation cannot run with. It runs
// once at setup; nothing re-validates per tick.
func (c *SimulationConfig) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena dimensions must be positive, got %gx%g", c.Arena.Width, c.Arena.Height)
	}
	if c.Robot.HalfLength <= 0 || c.Robot.HalfBreadth <= 0 {
		return fmt.Errorf("robot body dimensions must be positive")
	}
	if c.Robot.Speed <= 0 || c.Robot.TurnRate <= 0 {
		return fmt.Errorf("robot speed and turn rate must be positive")
	}
	if c.Robot.X <= 0 || c.Robot.X >= c.Arena.Width || c.Robot.Y <= 0 || c.Robot.Y >= c.Arena.Height {
		return fmt.Errorf("robot start (%g,%g) must lie strictly inside the arena", c.Robot.X, c.Robot.Y)
	}
	if c.Light.IntensityScaling <= 0 {
		return fmt.Errorf("light intensity scaling must be positive")
	}
	if c.Light.NoiseStdDev < 0 {
		return fmt.Errorf("light noise standard deviation must not be negative")
	}
	if c.Light.SuccessThreshold <= 0 {
		return fmt.Errorf("success threshold must be positive")
	}
	if c.Behavior.ProximityThreshold <= 0 {
		return fmt.Errorf("proximity threshold must be positive")
	}
	if c.Behavior.TumbleAngleScale <= 0 || c.Behavior.AvoidStepDuration <= 0 ||
		c.Behavior.AvoidTurnDuration <= 0 || c.Behavior.ForwardStepDuration <= 0 {
		return fmt.Errorf("behavior durations must be positive")
	}
	if c.Obstacles.Count < 0 {
		return fmt.Errorf("obstacle count must not be negative")
	}
	if c.Obstacles.Count > 0 && len(c.Obstacles.Fixed) == 0 {
		if c.Obstacles.MinRadius <= 0 || c.Obstacles.MaxRadius < c.Obstacles.MinRadius {
			return fmt.Errorf("obstacle radius range [%g,%g] is invalid", c.Obstacles.MinRadius, c.Obstacles.MaxRadius)
		}
	}
	for _, o := range c.Obstacles.Fixed {
		if o.Radius <= 0 {
			return fmt.Errorf("fixed obstacle at (%g,%g) has non-positive radius", o.X, o.Y)
		}
		if math.Hypot(c.Robot.X-o.X, c.Robot.Y-o.Y) <= o.Radius {
			return fmt.Errorf("robot start (%g,%g) is inside the obstacle at (%g,%g)", c.Robot.X, c.Robot.Y, o.X, o.Y)
		}
	}
	return nil
}
