package sim

import (
	"lightseek-sim/internal/geometry"
	"lightseek-sim/internal/telemetry"
)

// Apply advances the pose by holding cmd for dt time units. Translation and
// rotation never mix in one command, but applying both is harmless.
func Apply(p *telemetry.Pose, cmd telemetry.MotionCommand, dt float64) {
	p.X += cmd.Speed * cmd.DirX * dt
	p.Y += cmd.Speed * cmd.DirY * dt
	if cmd.Omega != 0 {
		p.Phi = geometry.NormalizeAngle(p.Phi + cmd.Omega*dt)
	}
}
