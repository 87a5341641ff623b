// Package behavior implements the run-and-tumble controller: a small state
// machine that turns one sensor frame into the motion steps for the next tick.
package behavior

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"lightseek-sim/internal/config"
	"lightseek-sim/internal/geometry"
	"lightseek-sim/internal/telemetry"
)

// Controller decides motion from sensor frames. Obstacle avoidance always
// takes priority over light seeking.
type Controller struct {
	threshold float64
	speed     float64
	turnRate  float64

	stepDuration float64 // plain forward step
	avoidStep    float64 // sidestep / back-off legs
	avoidTurn    float64 // turn leg of an avoid sequence

	rng    *rand.Rand
	tumble distuv.Uniform
}

// New builds a controller from the behavior tunables. The source drives the
// tumble coin flip and duration draw.
func New(cfg *config.SimulationConfig, src rand.Source) *Controller {
	return &Controller{
		threshold:    cfg.Behavior.ProximityThreshold,
		speed:        cfg.Robot.Speed,
		turnRate:     cfg.Robot.TurnRate,
		stepDuration: cfg.Behavior.ForwardStepDuration,
		avoidStep:    cfg.Behavior.AvoidStepDuration,
		avoidTurn:    cfg.Behavior.AvoidTurnDuration,
		rng:          rand.New(src),
		tumble:       distuv.Uniform{Min: 0, Max: cfg.Behavior.TumbleAngleScale, Src: src},
	}
}

// Decide maps one sensor frame to a behavior state and the ordered command
// steps to execute before the next frame. lastIntensity is the reading from
// the previous tick, used for the gradient check.
func (c *Controller) Decide(frame telemetry.SensorFrame, lastIntensity float64) (string, []telemetry.CommandStep) {
	if frame.Min() <= c.threshold {
		return telemetry.StateAvoiding, c.avoid(frame)
	}
	if frame.Intensity > lastIntensity {
		// Getting brighter, keep running.
		return telemetry.StateSeeking, []telemetry.CommandStep{c.forward(frame.Heading, c.stepDuration)}
	}
	return telemetry.StateTumbling, c.tumbleSteps(frame.Heading)
}

// Stop returns the terminal step sequence: a single zero command.
func (c *Controller) Stop() (string, []telemetry.CommandStep) {
	return telemetry.StateStopped, []telemetry.CommandStep{{Duration: c.stepDuration}}
}

// avoid builds the escape sequence for the nearest beam. Ties between beams
// resolve to the earlier one in sensor order.
func (c *Controller) avoid(frame telemetry.SensorFrame) []telemetry.CommandStep {
	phi := frame.Heading
	switch frame.MinIndex() {
	case geometry.BeamLeft:
		// Slide away to the right, then turn right and move on.
		return c.escape(phi, phi+geometry.BeamOffset(geometry.BeamRight), c.turnRate)
	case geometry.BeamFront:
		// Back straight off, then turn right and move on.
		return c.escape(phi, phi+geometry.BeamOffset(geometry.BeamBack), c.turnRate)
	case geometry.BeamRight:
		// Slide away to the left, then turn left and move on.
		return c.escape(phi, phi+geometry.BeamOffset(geometry.BeamLeft), -c.turnRate)
	default:
		// Obstacle behind: driving forward already clears it.
		return []telemetry.CommandStep{c.forward(phi, c.stepDuration)}
	}
}

// escape translates along escapeDir, turns at omega, then drives forward
// along the post-turn heading.
func (c *Controller) escape(phi, escapeDir, omega float64) []telemetry.CommandStep {
	turned := geometry.NormalizeAngle(phi + omega*c.avoidTurn)
	return []telemetry.CommandStep{
		c.slide(escapeDir, c.avoidStep),
		c.turn(omega, c.avoidTurn),
		c.forward(turned, c.stepDuration),
	}
}

// tumbleSteps rotates in a random direction for a random duration, then
// drives forward along the new heading.
func (c *Controller) tumbleSteps(phi float64) []telemetry.CommandStep {
	omega := c.turnRate
	if c.rng.Intn(2) == 0 {
		omega = -omega
	}
	duration := c.tumble.Rand()
	turned := geometry.NormalizeAngle(phi + omega*duration)
	return []telemetry.CommandStep{
		c.turn(omega, duration),
		c.forward(turned, c.stepDuration),
	}
}

func (c *Controller) forward(heading, duration float64) telemetry.CommandStep {
	return c.slide(heading, duration)
}

func (c *Controller) slide(dir, duration float64) telemetry.CommandStep {
	u := geometry.Heading(dir)
	return telemetry.CommandStep{
		Command:  telemetry.MotionCommand{Speed: c.speed, DirX: u.X, DirY: u.Y},
		Duration: duration,
	}
}

func (c *Controller) turn(omega, duration float64) telemetry.CommandStep {
	return telemetry.CommandStep{
		Command:  telemetry.MotionCommand{Omega: omega},
		Duration: duration,
	}
}
