// Core value types shared by the sensor suite, behavior controller, and writers.
package telemetry

import (
	"math"
	"time"

	"lightseek-sim/internal/geometry"
)

// Behavior state constants.
const (
	StateSeeking  = "seeking"
	StateTumbling = "tumbling"
	StateAvoiding = "avoiding"
	StateStopped  = "stopped"
)

// Pose holds the runtime state of the simulated robot. It is owned by the
// simulator and mutated only by the kinematic integrator.
type Pose struct {
	X   float64
	Y   float64
	Phi float64 // heading in radians, always in [0, 2π)

	// Fixed body dimensions; the triangular footprint is derived from them.
	HalfLength  float64
	HalfBreadth float64

	Intensity     float64 // light reading taken this tick
	LastIntensity float64 // light reading from the previous tick
}

// Position returns the robot center as a vector.
func (p *Pose) Position() geometry.Vec {
	return geometry.Vec{X: p.X, Y: p.Y}
}

// Tip returns the nose of the triangular footprint.
func (p *Pose) Tip() geometry.Vec {
	return p.Position().Add(geometry.Heading(p.Phi).Scale(p.HalfLength))
}

// Rear returns the midpoint of the footprint's base.
func (p *Pose) Rear() geometry.Vec {
	return p.Position().Sub(geometry.Heading(p.Phi).Scale(p.HalfLength))
}

// RearLeft returns the left base corner of the footprint.
func (p *Pose) RearLeft() geometry.Vec {
	rear := p.Rear()
	return geometry.Vec{
		X: rear.X - p.HalfBreadth*math.Sin(p.Phi),
		Y: rear.Y + p.HalfBreadth*math.Cos(p.Phi),
	}
}

// RearRight returns the right base corner of the footprint.
func (p *Pose) RearRight() geometry.Vec {
	rear := p.Rear()
	return geometry.Vec{
		X: rear.X + p.HalfBreadth*math.Sin(p.Phi),
		Y: rear.Y - p.HalfBreadth*math.Cos(p.Phi),
	}
}

// SensorFrame is the snapshot of all sensor readings at one tick.
type SensorFrame struct {
	Origin    geometry.Vec
	Heading   float64
	Distances [geometry.BeamCount]float64 // left, front, right, back
	Intensity float64
}

// Min returns the smallest beam distance.
func (f SensorFrame) Min() float64 {
	return f.Distances[f.MinIndex()]
}

// MinIndex returns the beam reporting the smallest distance. Ties resolve
// to the earlier beam in sensor order (left, front, right, back).
func (f SensorFrame) MinIndex() int {
	idx := 0
	for i := 1; i < geometry.BeamCount; i++ {
		if f.Distances[i] < f.Distances[idx] {
			idx = i
		}
	}
	return idx
}

// Endpoint returns the point where beam i terminates, for renderers.
func (f SensorFrame) Endpoint(i int) geometry.Vec {
	angle := geometry.BeamAngle(f.Heading, i)
	return f.Origin.Add(geometry.Heading(angle).Scale(f.Distances[i]))
}

// MotionCommand describes intended motion over a time slice. The behaviors
// never combine the two modes: linear commands carry Omega 0 and turning
// commands carry Speed 0. The zero value is the stop command.
type MotionCommand struct {
	Speed float64 // linear speed, ≥ 0
	DirX  float64 // world-frame unit direction
	DirY  float64
	Omega float64 // signed angular rate
}

// CommandStep pairs a motion command with how long to hold it. One tick's
// decision is an ordered sequence of steps applied before the next sensor
// read.
type CommandStep struct {
	Command  MotionCommand
	Duration float64
}

// Endpoint is a beam terminus in arena coordinates.
type Endpoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PoseRow represents one per-tick record handed to writers.
type PoseRow struct {
	RunID     string                       `json:"run_id"`
	Tick      int64                        `json:"tick"`
	X         float64                      `json:"x"`
	Y         float64                      `json:"y"`
	Phi       float64                      `json:"phi"`
	Intensity float64                      `json:"intensity"`
	State     string                       `json:"state"`
	DistLeft  float64                      `json:"dist_left"`
	DistFront float64                      `json:"dist_front"`
	DistRight float64                      `json:"dist_right"`
	DistBack  float64                      `json:"dist_back"`
	Beams     [geometry.BeamCount]Endpoint `json:"beams"`
	Timestamp time.Time                    `json:"ts"`
}
