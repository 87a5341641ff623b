// Simulator orchestrating the robot, its sensors, and per-tick telemetry.
package sim

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/google/uuid"

	"lightseek-sim/internal/behavior"
	"lightseek-sim/internal/config"
	"lightseek-sim/internal/geometry"
	"lightseek-sim/internal/sensor"
	"lightseek-sim/internal/telemetry"
)

// PoseWriter is an interface to support different output writers.
type PoseWriter interface {
	Write(telemetry.PoseRow) error
}

// Snapshot captures the full simulation state for the admin API.
type Snapshot struct {
	RunID      string            `json:"run_id"`
	Tick       int64             `json:"tick"`
	State      string            `json:"state"`
	Paused     bool              `json:"paused"`
	Terminated bool              `json:"terminated"`
	Row        telemetry.PoseRow `json:"row"`
	Obstacles  []SnapshotCircle  `json:"obstacles"`
	Light      SnapshotPoint     `json:"light"`
}

// SnapshotCircle is an obstacle entry in a snapshot.
type SnapshotCircle struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// SnapshotPoint is a fixed point of interest in a snapshot.
type SnapshotPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Simulator runs the single-robot light-seeking loop.
type Simulator struct {
	runID      string
	cfg        *config.SimulationConfig
	pose       telemetry.Pose
	obstacles  []Obstacle
	suite      *sensor.Suite
	controller *behavior.Controller

	writer       PoseWriter
	tickInterval time.Duration
	maxTicks     int64

	tickCount  int64
	state      string
	lastRow    telemetry.PoseRow
	terminated bool
	paused     bool

	rng *rand.Rand
	now func() time.Time
	mu  sync.Mutex
}

// NewSimulator wires the world from config. All randomness (obstacle
// placement, sensor noise, tumbles) derives from the given seed.
func NewSimulator(cfg *config.SimulationConfig, writer PoseWriter, tickInterval time.Duration, maxTicks int64, seed int64) *Simulator {
	src := rand.NewSource(uint64(seed))
	rng := rand.New(src)
	obstacles := SpawnObstacles(cfg, rng)

	s := &Simulator{
		runID:        uuid.New().String(),
		cfg:          cfg,
		obstacles:    obstacles,
		suite:        sensor.NewSuite(cfg, circles(obstacles), src),
		controller:   behavior.New(cfg, src),
		writer:       writer,
		tickInterval: tickInterval,
		maxTicks:     maxTicks,
		state:        telemetry.StateSeeking,
		rng:          rng,
		now:          time.Now,
	}
	s.pose = telemetry.Pose{
		X:           cfg.Robot.X,
		Y:           cfg.Robot.Y,
		Phi:         geometry.NormalizeAngle(cfg.Robot.Phi),
		HalfLength:  cfg.Robot.HalfLength,
		HalfBreadth: cfg.Robot.HalfBreadth,
		// Zero gradient baseline: the first reading always registers as
		// rising, so an unobstructed first tick is a run.
		Intensity: 0,
	}
	return s
}

// RunID returns the unique identifier of this simulation run.
func (s *Simulator) RunID() string {
	return s.runID
}

// Pose returns a copy of the current robot pose.
func (s *Simulator) Pose() telemetry.Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose
}

// Obstacles returns the spawned obstacle set. The set is fixed after
// construction, so the slice is shared, not copied.
func (s *Simulator) Obstacles() []Obstacle {
	return s.obstacles
}

// Light returns the light source position.
func (s *Simulator) Light() geometry.Vec {
	return s.suite.Light()
}

// Ticks returns the number of completed ticks.
func (s *Simulator) Ticks() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickCount
}

// State returns the current behavior state.
func (s *Simulator) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Terminated reports whether the robot has reached the light source.
func (s *Simulator) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

// TogglePause flips the pause state and returns the new value. A paused
// simulator keeps ticking but does not advance the world.
func (s *Simulator) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// Paused reports whether the simulation is paused.
func (s *Simulator) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Snapshot returns the full current state for the admin API.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		RunID:      s.runID,
		Tick:       s.tickCount,
		State:      s.state,
		Paused:     s.paused,
		Terminated: s.terminated,
		Row:        s.lastRow,
		Light:      SnapshotPoint{X: s.cfg.Light.X, Y: s.cfg.Light.Y},
	}
	for _, o := range s.obstacles {
		snap.Obstacles = append(snap.Obstacles, SnapshotCircle{
			ID: o.ID, X: o.Center.X, Y: o.Center.Y, Radius: o.R,
		})
	}
	return snap
}
